package deck

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"duelbot/core/mdm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service  *Service
	importer *Importer
	handler  *Handler
}

// NewFeature creates a new deck feature.
func NewFeature(db *gorm.DB, client mdm.Client, logger *zap.Logger) *Feature {
	svc := NewService(db, logger)
	imp := NewImporter(svc, client, logger)
	h := NewHandler(svc, imp, logger)
	return &Feature{service: svc, importer: imp, handler: h}
}

// Service returns the deck service for other features to consume.
func (f *Feature) Service() *Service {
	return f.service
}

// Importer returns the deck importer, used by the import command.
func (f *Feature) Importer() *Importer {
	return f.importer
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "deck"
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
