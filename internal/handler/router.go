package handler

import (
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/vpetrenko/todo-service/internal/auth"
	"github.com/vpetrenko/todo-service/internal/middleware"
)

// NewRouter wires all routes. Task routes live under a per-user namespace
// behind the bearer-token middleware; auth routes stay public.
func NewRouter(h *Handler, tokens *auth.TokenService, log *logrus.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))

	r.HandleFunc("/", h.Root).Methods("GET")
	r.HandleFunc("/health", h.Health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/register", h.Register).Methods("POST")
	api.HandleFunc("/auth/login", h.Login).Methods("POST")
	api.HandleFunc("/auth/logout", h.Logout).Methods("POST")

	tasks := api.PathPrefix("/{user_id}/tasks").Subrouter()
	tasks.Use(middleware.Auth(tokens, log))
	tasks.HandleFunc("/", h.ListTasks).Methods("GET")
	tasks.HandleFunc("/", h.CreateTask).Methods("POST")
	tasks.HandleFunc("/export", h.ExportTasks).Methods("GET")
	tasks.HandleFunc("/{task_id}", h.GetTask).Methods("GET")
	tasks.HandleFunc("/{task_id}", h.UpdateTask).Methods("PUT")
	tasks.HandleFunc("/{task_id}", h.DeleteTask).Methods("DELETE")
	tasks.HandleFunc("/{task_id}/complete", h.ToggleTask).Methods("PATCH")

	return r
}
