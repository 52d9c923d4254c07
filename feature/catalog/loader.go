package catalog

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature exposes the catalog over HTTP.
type Feature struct {
	handler *Handler
}

// NewFeature creates a new catalog feature.
func NewFeature(catalog *Catalog, logger *zap.Logger) *Feature {
	return &Feature{handler: NewHandler(catalog, logger)}
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
