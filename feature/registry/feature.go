package registry

import (
	"time"

	"voter-registry/core/cache"
	"voter-registry/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the registry feature.
func NewFeature(db *gorm.DB, c cache.Cache, store storage.Client, bucket string, logger *zap.Logger, cacheTTL time.Duration) *Feature {
	svc := NewService(db, c, store, bucket, logger, cacheTTL)
	h := NewHandler(svc, logger)
	return &Feature{service: svc, handler: h}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "registry"
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
