package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Config holds application configuration. It is loaded once at startup and
// passed to constructors; nothing mutates it afterwards.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	DBConn   string `env:"DB_CONN" envDefault:"host=localhost port=5432 user=todo password=todo dbname=todo sslmode=disable"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	JWTSecret     string        `env:"JWT_SECRET" envDefault:"secret"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"15m"`
	BcryptCost    int           `env:"BCRYPT_COST" envDefault:"10"`
	VerifySubject bool          `env:"AUTH_VERIFY_SUBJECT" envDefault:"false"`

	// 0 keeps descriptions unbounded. Title is capped at 200 but description
	// historically was not; this knob lets a deployment close that gap.
	DescriptionMaxLen int `env:"TASK_DESCRIPTION_MAX_LEN" envDefault:"0"`

	DigestCron string `env:"DIGEST_CRON" envDefault:"0 8 * * *"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SenderEmail  string `env:"SENDER_EMAIL"`
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}

	return cfg, nil
}

// MailEnabled reports whether SMTP settings are complete enough to send mail.
func (c *Config) MailEnabled() bool {
	return c.SMTPHost != "" && c.SenderEmail != ""
}
