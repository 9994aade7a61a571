package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/payment-ledger/internal/infrastructure/adapter/api/dto"
)

// Pinger is a dependency the health check probes
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports whether the database and the cache answer
type HealthHandler struct {
	checks map[string]Pinger
}

// NewHealthHandler creates a health handler probing each named dependency. Nil pingers are skipped.
func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	active := make(map[string]Pinger, len(checks))
	for name, p := range checks {
		if p != nil {
			active[name] = p
		}
	}
	return &HealthHandler{checks: active}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	report := make(map[string]string, len(h.checks))
	healthy := true

	for name, p := range h.checks {
		if err := p.Ping(c.Request.Context()); err != nil {
			report[name] = "down: " + err.Error()
			healthy = false
			continue
		}
		report[name] = "up"
	}

	if !healthy {
		c.JSON(http.StatusServiceUnavailable, dto.Response{Status: dto.StatusError, Message: "unhealthy", Data: report})
		return
	}
	c.JSON(http.StatusOK, dto.NewResponse("healthy", report))
}
