package meta

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"duelbot/core/logger"
)

// Handler handles HTTP requests for game-meta pages.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the meta routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/meta")
	group.Get("/banlist", h.HandleBanlist)
	group.Get("/banlist/:name", h.HandleBanlistStatus)
	group.Get("/packs", h.HandlePacks)
	group.Get("/packs/latest", h.HandleLatestPack)
	group.Get("/packs/new", h.HandleNewPacks)
	group.Get("/packs/selection", h.HandleSelectionPacks)
	group.Get("/tierlist", h.HandleTierList)
}

func (h *Handler) fail(c *fiber.Ctx, what string, err error) error {
	logger.WithRayID(h.logger, c).Error(what, zap.Error(err))
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// HandleBanlist returns the forbidden/limited list.
// @Summary Forbidden/limited list
// @Description Returns every card on the current forbidden/limited list.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{} "Banlist"
// @Failure 502 {object} map[string]string "Source unavailable"
// @Router /meta/banlist [get]
func (h *Handler) HandleBanlist(c *fiber.Ctx) error {
	entries, err := h.service.Banlist(c.Context())
	if err != nil {
		return h.fail(c, "Banlist fetch failed", err)
	}
	if entries == nil {
		entries = []BanlistEntry{}
	}
	return c.JSON(fiber.Map{"entries": entries})
}

// HandleBanlistStatus returns one card's banlist status.
// @Summary Banlist status for a card
// @Description Returns the card's status; cards not on the list are Unlimited.
// @Tags meta
// @Produce json
// @Param name path string true "Exact card name"
// @Success 200 {object} map[string]string "Status"
// @Failure 502 {object} map[string]string "Source unavailable"
// @Router /meta/banlist/{name} [get]
func (h *Handler) HandleBanlistStatus(c *fiber.Ctx) error {
	name := c.Params("name")
	status, err := h.service.BanlistStatus(c.Context(), name)
	if err != nil {
		return h.fail(c, "Banlist fetch failed", err)
	}
	return c.JSON(fiber.Map{"card": name, "status": status})
}

// HandlePacks returns the pack listing.
// @Summary List packs
// @Description Returns all packs, newest first.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{} "Packs"
// @Failure 502 {object} map[string]string "Source unavailable"
// @Router /meta/packs [get]
func (h *Handler) HandlePacks(c *fiber.Ctx) error {
	packs, err := h.service.Packs(c.Context())
	if err != nil {
		return h.fail(c, "Pack listing fetch failed", err)
	}
	if packs == nil {
		packs = []Pack{}
	}
	return c.JSON(fiber.Map{"packs": packs})
}

// HandleLatestPack returns the newest pack.
// @Summary Latest pack
// @Description Returns the most recently released pack.
// @Tags meta
// @Produce json
// @Success 200 {object} Pack "Pack"
// @Failure 502 {object} map[string]string "Source unavailable"
// @Router /meta/packs/latest [get]
func (h *Handler) HandleLatestPack(c *fiber.Ctx) error {
	pack, err := h.service.LatestPack(c.Context())
	if err != nil {
		return h.fail(c, "Latest pack fetch failed", err)
	}
	return c.JSON(pack)
}

// HandleNewPacks returns packs released in the last 30 days.
// @Summary New packs
// @Description Returns packs released within the last 30 days.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{} "Packs"
// @Failure 502 {object} map[string]string "Source unavailable"
// @Router /meta/packs/new [get]
func (h *Handler) HandleNewPacks(c *fiber.Ctx) error {
	packs, err := h.service.NewPacks(c.Context())
	if err != nil {
		return h.fail(c, "New pack fetch failed", err)
	}
	if packs == nil {
		packs = []Pack{}
	}
	return c.JSON(fiber.Map{"packs": packs})
}

// HandleSelectionPacks returns the selection pack listing.
// @Summary Selection packs
// @Description Returns selection packs, falling back to secret packs when the page is gone.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{} "Packs"
// @Failure 502 {object} map[string]string "Source unavailable"
// @Router /meta/packs/selection [get]
func (h *Handler) HandleSelectionPacks(c *fiber.Ctx) error {
	packs, err := h.service.SelectionPacks(c.Context())
	if err != nil {
		return h.fail(c, "Selection pack fetch failed", err)
	}
	if packs == nil {
		packs = []Pack{}
	}
	return c.JSON(fiber.Map{"packs": packs})
}

// HandleTierList returns the tier list.
// @Summary Tier list
// @Description Returns the current competitive tier list.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{} "Tier list"
// @Failure 502 {object} map[string]string "Source unavailable"
// @Router /meta/tierlist [get]
func (h *Handler) HandleTierList(c *fiber.Ctx) error {
	entries, err := h.service.TierList(c.Context())
	if err != nil {
		return h.fail(c, "Tier list fetch failed", err)
	}
	if entries == nil {
		entries = []TierEntry{}
	}
	return c.JSON(fiber.Map{"tiers": entries})
}
