package handlers

import (
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/todo-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/todo-service/internal/platform/logging"
	"github.com/jsamuelsen11/todo-service/internal/ports"
)

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	registry ports.HealthRegistry
}

// NewHealthHandler creates a HealthHandler backed by registry.
func NewHealthHandler(registry ports.HealthRegistry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

// Liveness handles GET /health/live. The process is alive if it can answer.
func (h *HealthHandler) Liveness(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-store")
	dto.WriteJSON(w, r, http.StatusOK, dto.HealthResponse{Status: dto.HealthOK})
}

// Readiness handles GET /health/ready: 200 when every registered check
// passes, 503 otherwise. Failing checks are logged at warn.
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	results := h.registry.CheckAll(ctx)

	resp := dto.HealthResponse{
		Status: dto.HealthReady,
		Checks: make(map[string]string, len(results)),
	}
	for name, err := range results {
		if err == nil {
			resp.Checks[name] = dto.HealthOK
			continue
		}
		resp.Checks[name] = err.Error()
		resp.Status = dto.HealthNotReady
		logging.FromContext(ctx).WarnContext(ctx, "readiness check failed",
			slog.String("check", name),
			logging.Err(err),
		)
	}

	code := http.StatusOK
	if resp.Status == dto.HealthNotReady {
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-store")
	dto.WriteJSON(w, r, code, resp)
}
