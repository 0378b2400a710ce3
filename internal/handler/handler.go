package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/vpetrenko/todo-service/internal/export"
	"github.com/vpetrenko/todo-service/internal/middleware"
	"github.com/vpetrenko/todo-service/internal/models"
	"github.com/vpetrenko/todo-service/internal/service"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

// Register handles user registration
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := h.svc.Register(r.Context(), creds)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"message": "User created successfully",
		"user_id": user.ID,
	})
}

// Login handles user authentication
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	token, user, err := h.svc.Login(r.Context(), creds)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]any{
		"access_token": token,
		"token_type":   "bearer",
		"user_id":      user.ID,
		"email":        user.Email,
	})
}

// Logout is a no-op: tokens are stateless and die at expiry, so there is
// no server-side session to invalidate.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// ListTasks returns the user's tasks, honoring the optional status_filter
// query parameter.
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]
	filter := r.URL.Query().Get("status_filter")

	tasks, err := h.svc.ListTasks(r.Context(), middleware.ClaimsFromContext(r.Context()), userID, filter)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, tasks)
}

// CreateTask creates a task owned by the authenticated user
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	var in models.TaskCreate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.svc.CreateTask(r.Context(), middleware.ClaimsFromContext(r.Context()), userID, in)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, task)
}

// GetTask returns a single task
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	task, err := h.svc.GetTask(r.Context(), middleware.ClaimsFromContext(r.Context()), vars["user_id"], vars["task_id"])
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, task)
}

// UpdateTask applies a partial update to a task
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var in models.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	task, err := h.svc.UpdateTask(r.Context(), middleware.ClaimsFromContext(r.Context()), vars["user_id"], vars["task_id"], in)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, task)
}

// DeleteTask permanently removes a task
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	err := h.svc.DeleteTask(r.Context(), middleware.ClaimsFromContext(r.Context()), vars["user_id"], vars["task_id"])
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// ToggleTask flips a task's completion status
func (h *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	task, err := h.svc.ToggleTask(r.Context(), middleware.ClaimsFromContext(r.Context()), vars["user_id"], vars["task_id"])
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, task)
}

// ExportTasks writes the user's tasks as an XML document
func (h *Handler) ExportTasks(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["user_id"]

	tasks, err := h.svc.ListTasks(r.Context(), middleware.ClaimsFromContext(r.Context()), userID, "")
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	doc := export.TasksDocument(userID, tasks)
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	if _, err := doc.WriteTo(w); err != nil {
		h.log.Errorf("Failed to write task export: %v", err)
	}
}

// Health reports liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// Root greets API consumers
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "Welcome to the Todo API"})
}

// respondServiceError translates the error taxonomy into HTTP statuses.
// Anything unrecognized is an internal fault: logged in full, reduced to a
// generic message for the caller.
func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *models.ValidationError
	switch {
	case errors.As(err, &validationErr):
		h.respondError(w, http.StatusBadRequest, validationErr.Message)
	case errors.Is(err, models.ErrEmailTaken):
		h.respondError(w, http.StatusBadRequest, "Email already registered")
	case errors.Is(err, models.ErrInvalidCredentials):
		h.respondError(w, http.StatusUnauthorized, "Incorrect email or password")
	case errors.Is(err, models.ErrUnauthenticated):
		w.Header().Set("WWW-Authenticate", "Bearer")
		h.respondError(w, http.StatusUnauthorized, "Could not validate credentials")
	case errors.Is(err, models.ErrForbidden):
		h.respondError(w, http.StatusForbidden, "Not authorized to access this resource")
	case errors.Is(err, models.ErrNotFound):
		h.respondError(w, http.StatusNotFound, "Task not found")
	default:
		h.log.Errorf("Unhandled error: %v", err)
		h.respondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *Handler) respondError(w http.ResponseWriter, status int, detail string) {
	h.respondJSON(w, status, map[string]string{"detail": detail})
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.log.Errorf("Failed to encode response: %v", err)
	}
}
