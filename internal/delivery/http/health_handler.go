package http

import (
	"context"
	"net/http"

	"github.com/frontandrew/parkingcontrol/internal/pkg/logger"
)

// HealthChecker проверяет доступность зависимости (реализуется database.HealthChecker)
type HealthChecker interface {
	Check(ctx context.Context) error
}

// HealthHandler отвечает на /health
type HealthHandler struct {
	checker HealthChecker
	logger  logger.Logger
}

// NewHealthHandler создает handler проверки здоровья
func NewHealthHandler(checker HealthChecker, logger logger.Logger) *HealthHandler {
	return &HealthHandler{checker: checker, logger: logger}
}

// Health возвращает 200, если БД доступна, иначе 503
// GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.checker.Check(r.Context()); err != nil {
		h.logger.Warn("Health check failed", map[string]interface{}{
			"error": err.Error(),
		})
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{
			"status": "unhealthy",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
