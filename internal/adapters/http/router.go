// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/handlers"
)

const corsMaxAgeSeconds = 300

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given. When allowedOrigins is
// non-empty, CORS handling runs after the given middleware so preflight
// requests are still traced and logged.
func NewRouter(
	todoHandler *handlers.TodoHandler,
	healthHandler *handlers.HealthHandler,
	allowedOrigins []string,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	if len(allowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{
				http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
			},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID", "X-Correlation-ID"},
			ExposedHeaders: []string{"X-Request-ID", "X-Correlation-ID"},
			MaxAge:         corsMaxAgeSeconds,
		}))
	}

	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// PUT carries the id in the body, so it is registered on the collection.
	r.Get("/todos", todoHandler.ListTodos)
	r.Post("/todos", todoHandler.CreateTodo)
	r.Put("/todos", todoHandler.UpdateTodo)
	r.Get("/todos/{id}", todoHandler.GetTodo)
	r.Delete("/todos/{id}", todoHandler.DeleteTodo)

	return r
}
