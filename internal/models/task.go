package models

import (
	"time"

	"github.com/google/uuid"
)

// Task represents a single todo item owned by one user
type Task struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskCreate is the create-task request body
type TaskCreate struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// TaskUpdate carries partial updates. A nil field means "leave unchanged",
// so presence is explicit and no reflection is involved.
type TaskUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// Task list filter values recognized by ListTasks; any other value means "all".
const (
	FilterCompleted  = "completed"
	FilterIncomplete = "incomplete"
)
