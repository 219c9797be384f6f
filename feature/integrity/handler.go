package integrity

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"duelbot/core/logger"
)

// Handler handles HTTP requests for integrity reports.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Get("/integrity/report", h.HandleReport)
}

// HandleReport returns the integrity report.
// @Summary Integrity report
// @Description Reconciles deck card references against the catalog and artwork mirror.
// @Tags integrity
// @Produce json
// @Success 200 {object} Report "Report"
// @Failure 500 {object} map[string]string "Report failed"
// @Router /integrity/report [get]
func (h *Handler) HandleReport(c *fiber.Ctx) error {
	report, err := h.service.Report(c.Context())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Integrity report failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(report)
}
