package handler

import (
	"github.com/gofiber/fiber/v2"
)

const Version = "0.1.0"

type HealthHandler struct {
	backend string
}

func NewHealthHandler(backend string) *HealthHandler {
	return &HealthHandler{backend: backend}
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Backend string `json:"backend,omitempty"`
}

// Health reports liveness of the local surface only; the backend is probed
// through POST /v1/health-check.
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Version: Version,
		Backend: h.backend,
	})
}
