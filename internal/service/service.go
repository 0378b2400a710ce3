package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vpetrenko/todo-service/internal/auth"
	"github.com/vpetrenko/todo-service/internal/config"
	"github.com/vpetrenko/todo-service/internal/models"
	"github.com/vpetrenko/todo-service/internal/sanitize"
)

// The login flow asks for a longer lifetime than the service default.
const loginTokenTTL = 30 * time.Minute

// Store is the persistence adapter the service depends on.
type Store interface {
	CreateUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateTask(ctx context.Context, task *models.Task) error
	FindTaskByID(ctx context.Context, id uuid.UUID) (*models.Task, error)
	ListTasksByUser(ctx context.Context, userID uuid.UUID, filter string) ([]models.Task, error)
	UpdateTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

// Mailer sends account mail. It may be nil when SMTP is not configured.
type Mailer interface {
	SendWelcome(to string) error
}

// Service handles business logic
type Service struct {
	store  Store
	hasher *auth.Hasher
	tokens *auth.TokenService
	guard  *auth.Guard
	mailer Mailer
	log    *logrus.Logger
	config *config.Config
}

// NewService initializes a new service
func NewService(store Store, hasher *auth.Hasher, tokens *auth.TokenService, guard *auth.Guard, mailer Mailer, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		guard:  guard,
		mailer: mailer,
		log:    log,
		config: cfg,
	}
}

// Register creates a new user with a hashed password
func (s *Service) Register(ctx context.Context, creds models.Credentials) (*models.User, error) {
	if creds.Email == "" {
		return nil, models.NewValidationError("email", "Email is required")
	}
	if creds.Password == "" {
		return nil, models.NewValidationError("password", "Password is required")
	}

	hashed, err := s.hasher.Hash(creds.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        creds.Email,
		PasswordHash: hashed,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if s.mailer != nil {
		go func(to string) {
			if err := s.mailer.SendWelcome(to); err != nil {
				s.log.Warnf("Failed to send welcome email to %s: %v", to, err)
			}
		}(user.Email)
	}

	s.log.Infof("User registered: %s", user.Email)
	return user, nil
}

// Login authenticates a user and returns a bearer token
func (s *Service) Login(ctx context.Context, creds models.Credentials) (string, *models.User, error) {
	user, err := s.store.FindUserByEmail(ctx, creds.Email)
	if errors.Is(err, models.ErrNotFound) {
		return "", nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Verify(creds.Password, user.PasswordHash) {
		return "", nil, models.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID.String(), user.Email, loginTokenTTL)
	if err != nil {
		return "", nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.log.Infof("User logged in: %s", user.Email)
	return token, user, nil
}

// ListTasks returns the path user's tasks, optionally filtered by
// completion status.
func (s *Service) ListTasks(ctx context.Context, claims *auth.Claims, pathUserID, filter string) ([]models.Task, error) {
	userID, err := parseUserID(pathUserID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, claims, pathUserID); err != nil {
		return nil, err
	}
	return s.store.ListTasksByUser(ctx, userID, filter)
}

// CreateTask builds a task bound to the authenticated subject's id. The
// owner always comes from the verified identity, never the request body.
func (s *Service) CreateTask(ctx context.Context, claims *auth.Claims, pathUserID string, in models.TaskCreate) (*models.Task, error) {
	userID, err := parseUserID(pathUserID)
	if err != nil {
		return nil, err
	}
	if err := s.guard.Authorize(ctx, claims, pathUserID); err != nil {
		return nil, err
	}

	title, err := sanitize.Title(in.Title)
	if err != nil {
		return nil, err
	}
	description, err := sanitize.Description(in.Description, s.config.DescriptionMaxLen)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Completed:   in.Completed,
		UserID:      userID,
	}
	if err := s.store.CreateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.Infof("Created task %s for user %s", task.ID, userID)
	return task, nil
}

// GetTask returns a single owned task
func (s *Service) GetTask(ctx context.Context, claims *auth.Claims, pathUserID, taskID string) (*models.Task, error) {
	return s.loadOwnedTask(ctx, claims, pathUserID, taskID)
}

// UpdateTask applies the supplied fields to an owned task. Absent fields
// are left untouched.
func (s *Service) UpdateTask(ctx context.Context, claims *auth.Claims, pathUserID, taskID string, in models.TaskUpdate) (*models.Task, error) {
	task, err := s.loadOwnedTask(ctx, claims, pathUserID, taskID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title, err := sanitize.Title(*in.Title)
		if err != nil {
			return nil, err
		}
		task.Title = title
	}
	if in.Description != nil {
		description, err := sanitize.Description(in.Description, s.config.DescriptionMaxLen)
		if err != nil {
			return nil, err
		}
		task.Description = description
	}
	if in.Completed != nil {
		task.Completed = *in.Completed
	}

	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.Infof("Updated task %s for user %s", task.ID, pathUserID)
	return task, nil
}

// DeleteTask permanently removes an owned task
func (s *Service) DeleteTask(ctx context.Context, claims *auth.Claims, pathUserID, taskID string) error {
	task, err := s.loadOwnedTask(ctx, claims, pathUserID, taskID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteTask(ctx, task.ID); err != nil {
		return err
	}

	s.log.Infof("Deleted task %s for user %s", task.ID, pathUserID)
	return nil
}

// ToggleTask flips the completed flag of an owned task
func (s *Service) ToggleTask(ctx context.Context, claims *auth.Claims, pathUserID, taskID string) (*models.Task, error) {
	task, err := s.loadOwnedTask(ctx, claims, pathUserID, taskID)
	if err != nil {
		return nil, err
	}

	task.Completed = !task.Completed
	if err := s.store.UpdateTask(ctx, task); err != nil {
		return nil, err
	}

	s.log.Infof("Toggled completion for task %s of user %s", task.ID, pathUserID)
	return task, nil
}

// loadOwnedTask runs the full per-resource authorization chain: path ids
// first (400), then the subject binding (401/403), then existence (404),
// then ownership (403).
func (s *Service) loadOwnedTask(ctx context.Context, claims *auth.Claims, pathUserID, taskID string) (*models.Task, error) {
	if _, err := parseUserID(pathUserID); err != nil {
		return nil, err
	}
	id, err := uuid.Parse(taskID)
	if err != nil {
		return nil, models.NewValidationError("task_id", "Invalid task ID")
	}
	if err := s.guard.Authorize(ctx, claims, pathUserID); err != nil {
		return nil, err
	}

	task, err := s.store.FindTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.guard.AuthorizeTask(pathUserID, task); err != nil {
		return nil, err
	}
	return task, nil
}

func parseUserID(pathUserID string) (uuid.UUID, error) {
	id, err := uuid.Parse(pathUserID)
	if err != nil {
		return uuid.Nil, models.NewValidationError("user_id", "Invalid user ID")
	}
	return id, nil
}
