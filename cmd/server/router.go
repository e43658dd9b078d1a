package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/tasktrack-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasktrack-api/internal/api/middleware"
	"github.com/phrazzld/tasktrack-api/internal/api/shared"
	"github.com/phrazzld/tasktrack-api/internal/redact"
)

const corsMaxAgeSeconds = 300

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Location", shared.TraceIDHeader},
		AllowCredentials: false,
		MaxAge:           corsMaxAgeSeconds,
	}))

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	projectHandler := api.NewProjectHandler(app.projectService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	commentHandler := api.NewCommentHandler(app.commentService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public, throttled per client IP)
		r.Group(func(r chi.Router) {
			r.Use(app.authLimiter.Limit)
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/refresh", authHandler.RefreshToken)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", projectHandler.ListProjects)
				r.Post("/", projectHandler.CreateProject)
				r.Get("/{id}", projectHandler.GetProject)
				r.Put("/{id}", projectHandler.UpdateProject)
				r.Delete("/{id}", projectHandler.DeleteProject)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.ListTasks)
				r.Post("/", taskHandler.CreateTask)
				r.Get("/{id}", taskHandler.GetTask)
				r.Put("/{id}", taskHandler.UpdateTask)
				r.Patch("/{id}/status", taskHandler.UpdateTaskStatus)
				r.Patch("/{id}/assign", taskHandler.AssignTask)
				r.Delete("/{id}", taskHandler.DeleteTask)
			})

			r.Route("/comments", func(r chi.Router) {
				r.Post("/", commentHandler.CreateComment)
				r.Get("/task/{taskId}", commentHandler.ListTaskComments)
				r.Get("/{id}", commentHandler.GetComment)
				r.Put("/{id}", commentHandler.UpdateComment)
				r.Delete("/{id}", commentHandler.DeleteComment)
			})
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", redact.ErrorAttr(err))
		}
	})

	return r
}
