package catalog

import (
	"duelbot/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for the card catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/cards")
	group.Get("/suggest", h.HandleSuggest)
	group.Get("/resolve", h.HandleResolve)
	group.Post("/refresh", h.HandleRefresh)
	group.Get("/:name", h.HandleGetCard)
}

// HandleSuggest returns scored name suggestions for a query.
// @Summary Suggest card names
// @Description Returns catalog names matching a free-text query, best first.
// @Tags catalog
// @Produce json
// @Param q query string true "Free-text card name query"
// @Param limit query int false "Maximum number of suggestions" default(5)
// @Success 200 {object} map[string][]string "Suggestions"
// @Router /cards/suggest [get]
func (h *Handler) HandleSuggest(c *fiber.Ctx) error {
	query := c.Query("q")
	limit := c.QueryInt("limit", DefaultSuggestions)

	suggestions := h.service.Suggestions(c.Context(), query, limit)
	if suggestions == nil {
		suggestions = []string{}
	}
	return c.JSON(fiber.Map{"suggestions": suggestions})
}

// HandleResolve resolves a query to a single card or a disambiguation list.
// @Summary Resolve a card query
// @Description Resolves free text to one card; returns suggestions when ambiguous.
// @Tags catalog
// @Produce json
// @Param q query string true "Free-text card name query"
// @Param limit query int false "Maximum number of suggestions" default(5)
// @Success 200 {object} Resolution "Resolution"
// @Router /cards/resolve [get]
func (h *Handler) HandleResolve(c *fiber.Ctx) error {
	query := c.Query("q")
	limit := c.QueryInt("limit", DefaultSuggestions)
	return c.JSON(h.service.Resolve(c.Context(), query, limit))
}

// HandleGetCard returns one card with its decoded attributes.
// @Summary Get card detail
// @Description Looks a card up by name (case-insensitive) and returns its attributes.
// @Tags catalog
// @Produce json
// @Param name path string true "Card name"
// @Success 200 {object} map[string]interface{} "Card detail"
// @Failure 404 {object} map[string]string "Card not found"
// @Router /cards/{name} [get]
func (h *Handler) HandleGetCard(c *fiber.Ctx) error {
	name := c.Params("name")
	l := logger.WithRayID(h.service.logger, c)

	card, ok := h.service.Get(c.Context(), name)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "card not found",
		})
	}

	attrs, err := card.Attributes()
	if err != nil {
		l.Error("Stored card payload failed to decode", zap.String("card", card.Name), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"name":         card.Name,
		"attributes":   attrs,
		"artwork":      attrs.ArtworkURLs(),
		"last_updated": card.LastUpdated,
	})
}

// HandleRefresh forces a catalog freshness check.
// @Summary Refresh the card catalog
// @Description Triggers a staleness check and, if stale, a full feed refresh.
// @Tags catalog
// @Produce json
// @Success 200 {object} map[string]interface{} "Catalog size"
// @Failure 502 {object} map[string]string "Catalog unavailable"
// @Router /cards/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.Refresh(c.Context()); err != nil {
		l.Error("Catalog refresh failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"cards": h.service.Cache().Len()})
}
