package deck

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"duelbot/core/logger"
)

// Handler handles HTTP requests for stored decks.
type Handler struct {
	service  *Service
	importer *Importer
	logger   *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, importer *Importer, logger *zap.Logger) *Handler {
	return &Handler{service: service, importer: importer, logger: logger}
}

// RegisterRoutes registers the deck routes. Static paths go first so they
// are not swallowed by the /:id parameter.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/decks")
	group.Get("/", h.HandleList)
	group.Get("/stats", h.HandleStats)
	group.Get("/popular", h.HandlePopularCards)
	group.Get("/usage/:name", h.HandleCardUsage)
	group.Get("/with/:name", h.HandleDecksWithCard)
	group.Post("/import", h.HandleImport)
	group.Delete("/cleanup", h.HandleCleanup)
	group.Get("/:id", h.HandleGetDeck)
}

// HandleList returns the most recently updated decks.
// @Summary List decks
// @Description Returns the most recently updated decks.
// @Tags decks
// @Produce json
// @Param limit query int false "Maximum number of decks" default(20)
// @Success 200 {object} map[string]interface{} "Decks"
// @Router /decks [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	decks, err := h.service.List(c.Context(), limit)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Deck listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"decks": decks})
}

// HandleGetDeck returns one deck with its card list.
// @Summary Get deck detail
// @Description Returns a deck and its card associations.
// @Tags decks
// @Produce json
// @Param id path int true "Deck id"
// @Success 200 {object} map[string]interface{} "Deck"
// @Failure 404 {object} map[string]string "Deck not found"
// @Router /decks/{id} [get]
func (h *Handler) HandleGetDeck(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid deck id",
		})
	}

	deck, err := h.service.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "deck not found",
			})
		}
		logger.WithRayID(h.logger, c).Error("Deck lookup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"deck": deck, "cards": deck.Cards})
}

// HandleDecksWithCard returns the decks playing a card.
// @Summary Decks playing a card
// @Description Returns decks containing the exact card name, newest first.
// @Tags decks
// @Produce json
// @Param name path string true "Exact card name"
// @Success 200 {object} map[string]interface{} "Decks"
// @Router /decks/with/{name} [get]
func (h *Handler) HandleDecksWithCard(c *fiber.Ctx) error {
	name := c.Params("name")
	decks, err := h.service.DecksWithCard(c.Context(), name)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Deck usage query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if decks == nil {
		decks = []DeckSummary{}
	}
	return c.JSON(fiber.Map{"card": name, "decks": decks})
}

// HandleCardUsage returns aggregate usage for one card.
// @Summary Card usage statistics
// @Description Aggregates how the named card is played across stored decks.
// @Tags decks
// @Produce json
// @Param name path string true "Exact card name"
// @Success 200 {object} CardUsage "Usage"
// @Router /decks/usage/{name} [get]
func (h *Handler) HandleCardUsage(c *fiber.Ctx) error {
	usage, err := h.service.CardUsage(c.Context(), c.Params("name"))
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Card usage query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(usage)
}

// HandlePopularCards returns the most played cards.
// @Summary Most played cards
// @Description Returns the cards appearing in the most decks.
// @Tags decks
// @Produce json
// @Param limit query int false "Maximum number of cards" default(10)
// @Success 200 {object} map[string]interface{} "Cards"
// @Router /decks/popular [get]
func (h *Handler) HandlePopularCards(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 10)
	cards, err := h.service.MostUsedCards(c.Context(), limit)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Popular cards query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if cards == nil {
		cards = []CardUsage{}
	}
	return c.JSON(fiber.Map{"cards": cards})
}

// HandleStats returns aggregate statistics over the deck store.
// @Summary Deck store statistics
// @Description Returns totals and averages over all stored decks.
// @Tags decks
// @Produce json
// @Success 200 {object} DeckStats "Statistics"
// @Router /decks/stats [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.service.DeckStats(c.Context())
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Deck stats query failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(stats)
}

// HandleImport triggers a bulk import from the remote deck listing.
// @Summary Import decks
// @Description Fetches the remote deck listing and imports up to limit decks.
// @Tags decks
// @Produce json
// @Param limit query int false "Maximum number of decks to import" default(20)
// @Success 200 {object} map[string]int "Import count"
// @Router /decks/import [post]
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", DefaultImportLimit)
	imported := h.importer.ImportDeckTypes(c.Context(), limit)
	return c.JSON(fiber.Map{"imported": imported})
}

// HandleCleanup removes decks that have not been updated recently.
// @Summary Clean up stale decks
// @Description Deletes decks not updated within the given number of days.
// @Tags decks
// @Produce json
// @Param days query int false "Staleness threshold in days" default(30)
// @Success 200 {object} map[string]int64 "Removed count"
// @Router /decks/cleanup [delete]
func (h *Handler) HandleCleanup(c *fiber.Ctx) error {
	days := c.QueryInt("days", DefaultCleanupDays)
	removed, err := h.service.CleanupOldDecks(c.Context(), days)
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Deck cleanup failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	return c.JSON(fiber.Map{"removed": removed})
}
