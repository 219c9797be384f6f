package catalog

import (
	"duelbot/core/mdm"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new catalog feature.
func NewFeature(db *gorm.DB, client mdm.Client, logger *zap.Logger, feedURL string) *Feature {
	cache := NewCache(db, client, logger, feedURL)
	svc := NewService(cache, logger)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h}
}

// Service returns the catalog service for other features to consume.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "catalog"
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
