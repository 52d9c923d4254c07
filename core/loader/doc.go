// Package loader provides the feature loading system.
//
// Each feature (catalog, wash, report, users, health) implements the Feature interface
// and registers its own routes. The Manager keeps the registry and loads enabled
// features in registration order.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
package loader
