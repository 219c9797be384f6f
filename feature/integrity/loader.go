package integrity

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"duelbot/feature/artwork"
	"duelbot/feature/catalog"
	"duelbot/feature/deck"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates a new integrity feature.
func NewFeature(cat *catalog.Service, decks *deck.Service, art *artwork.Service, logger *zap.Logger) *Feature {
	svc := NewService(cat, decks, art, logger)
	return &Feature{handler: NewHandler(svc, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "integrity"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
