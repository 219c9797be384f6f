package artwork

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"duelbot/core/logger"
)

// Handler handles HTTP requests for card artwork.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the artwork routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/artwork")
	group.Get("/:name", h.HandleGetArtwork)
	group.Delete("/:name", h.HandleRemoveArtwork)
}

// HandleGetArtwork serves a card's artwork, mirroring it on first access.
// @Summary Get card artwork
// @Description Serves the card's artwork image, downloading and mirroring it on first access.
// @Tags artwork
// @Produce image/webp
// @Param name path string true "Card name (fuzzy matched)"
// @Success 200 {file} binary "Artwork image"
// @Failure 404 {object} map[string]string "Artwork not found"
// @Router /artwork/{name} [get]
func (h *Handler) HandleGetArtwork(c *fiber.Ctx) error {
	data, resolvedName, err := h.service.Get(c.Context(), c.Params("name"))
	if err != nil {
		logger.WithRayID(h.logger, c).Warn("Artwork unavailable",
			zap.String("card", c.Params("name")),
			zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	c.Set("X-Card-Name", resolvedName)
	c.Set(fiber.HeaderContentType, "image/webp")
	return c.Send(data)
}

// HandleRemoveArtwork drops a mirrored artwork object.
// @Summary Remove mirrored artwork
// @Description Deletes the mirrored artwork so the next request re-downloads it.
// @Tags artwork
// @Produce json
// @Param name path string true "Card name"
// @Success 200 {object} map[string]string "Removed"
// @Router /artwork/{name} [delete]
func (h *Handler) HandleRemoveArtwork(c *fiber.Ctx) error {
	name := c.Params("name")
	if err := h.service.Remove(c.Context(), name); err != nil {
		logger.WithRayID(h.logger, c).Error("Artwork removal failed",
			zap.String("card", name),
			zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"removed": name})
}
