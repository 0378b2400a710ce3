package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vpetrenko/todo-service/internal/models"
)

// UserFinder is the slice of the persistence layer the guard needs for the
// optional subject existence re-check.
type UserFinder interface {
	FindUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Guard enforces that the token subject, the path-supplied user id, and a
// resource's owner all agree before any task operation proceeds. The path
// id is attacker-controlled, so it is never trusted without the token
// binding, and the resource owner is compared separately on top of that.
type Guard struct {
	users         UserFinder
	verifySubject bool
	log           *logrus.Logger
}

// NewGuard initializes an authorization guard. When verifySubject is true
// the guard additionally checks that the token subject still exists; by
// default the stateless claims are the only authority source.
func NewGuard(users UserFinder, verifySubject bool, log *logrus.Logger) *Guard {
	return &Guard{users: users, verifySubject: verifySubject, log: log}
}

// Authorize binds the token subject to the path user id. Missing subject
// means a malformed token (401); a mismatch means a valid token used
// against someone else's namespace (403).
func (g *Guard) Authorize(ctx context.Context, claims *Claims, pathUserID string) error {
	if claims == nil || claims.Subject == "" {
		return models.ErrUnauthenticated
	}

	if claims.Subject != pathUserID {
		g.log.WithFields(logrus.Fields{
			"subject":      claims.Subject,
			"path_user_id": pathUserID,
		}).Warn("Unauthorized access attempt: token subject does not match path user")
		return models.ErrForbidden
	}

	if g.verifySubject {
		subjectID, err := uuid.Parse(claims.Subject)
		if err != nil {
			return models.ErrUnauthenticated
		}
		if _, err := g.users.FindUserByID(ctx, subjectID); err != nil {
			if errors.Is(err, models.ErrNotFound) {
				return models.ErrUnauthenticated
			}
			return fmt.Errorf("failed to verify token subject: %w", err)
		}
	}

	return nil
}

// AuthorizeTask re-checks ownership of a loaded resource. This runs only
// after Authorize has bound the subject to the path id, so a non-owner can
// never learn whether a guessed task id exists.
func (g *Guard) AuthorizeTask(pathUserID string, task *models.Task) error {
	if task.UserID.String() != pathUserID {
		g.log.WithFields(logrus.Fields{
			"path_user_id": pathUserID,
			"task_id":      task.ID,
			"owner_id":     task.UserID,
		}).Warn("Unauthorized access attempt: task belongs to another user")
		return models.ErrForbidden
	}
	return nil
}
