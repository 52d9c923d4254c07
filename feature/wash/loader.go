package wash

import (
	"github.com/gofiber/fiber/v2"
)

// Feature exposes wash submission and record management over HTTP.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates a new wash feature.
func NewFeature(service *Service) *Feature {
	return &Feature{service: service, handler: NewHandler(service)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "wash"
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
