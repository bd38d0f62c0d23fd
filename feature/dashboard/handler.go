package dashboard

import (
	"voter-registry/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the dashboard.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the dashboard routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/dashboard")
	group.Get("/stats", h.HandleStats)
}

// HandleStats returns the aggregate registry counts.
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	stats, err := h.service.GetStats(c.Context())
	if err != nil {
		l.Error("Dashboard stats failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(stats)
}
