package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/vpetrenko/todo-service/internal/auth"
	"github.com/vpetrenko/todo-service/internal/config"
	"github.com/vpetrenko/todo-service/internal/digest"
	"github.com/vpetrenko/todo-service/internal/handler"
	"github.com/vpetrenko/todo-service/internal/repository"
	"github.com/vpetrenko/todo-service/internal/service"
	"github.com/vpetrenko/todo-service/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	hasher := auth.NewHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	guard := auth.NewGuard(repo, cfg.VerifySubject, logger)

	var mailer *email.Sender
	if cfg.MailEnabled() {
		mailer = email.NewSender(cfg, logger)
	}

	var svcMailer service.Mailer
	if mailer != nil {
		svcMailer = mailer
	}
	svc := service.NewService(repo, hasher, tokens, guard, svcMailer, logger, cfg)
	h := handler.NewHandler(svc, logger)

	// Setup router
	r := handler.NewRouter(h, tokens, logger)

	// Scheduled reminder digest, only when mail is configured
	if mailer != nil {
		sched, err := digest.NewScheduler(cfg.DigestCron, repo, mailer, logger)
		if err != nil {
			logger.Fatalf("Failed to set up digest scheduler: %v", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}
