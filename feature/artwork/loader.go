package artwork

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"duelbot/core/mdm"
	"duelbot/core/storage"
	"duelbot/feature/catalog"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates a new artwork feature. It is disabled when no object
// storage is configured.
func NewFeature(store storage.Client, bucket string, cat *catalog.Service, client mdm.Client, logger *zap.Logger) *Feature {
	if store == nil {
		return &Feature{enabled: false}
	}
	svc := NewService(store, bucket, cat, client, logger)
	h := NewHandler(svc, logger)
	return &Feature{service: svc, handler: h, enabled: true}
}

// Service returns the artwork service for other features to consume.
func (f *Feature) Service() *Service {
	return f.service
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "artwork"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
