package store

import (
	"fmt"

	"fleetwash/feature/wash"

	"gorm.io/gorm"
)

// Backend names accepted in wash.Config.Store.
const (
	BackendSQL    = "sql"
	BackendJSON   = "json"
	BackendMemory = "memory"
)

// New builds the configured record store. db is required for the sql backend.
// resolver normalizes depots and segments read from the json file and may be nil.
func New(cfg wash.Config, db *gorm.DB, resolver Resolver) (wash.Store, error) {
	switch cfg.Store {
	case BackendSQL, "":
		if db == nil {
			return nil, fmt.Errorf("sql wash store requires a database connection")
		}
		s := NewGormStore(db)
		if err := s.Migrate(); err != nil {
			return nil, err
		}
		return s, nil
	case BackendJSON:
		return NewJSONFileStore(cfg.JSONPath, resolver), nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown wash store backend: %s", cfg.Store)
	}
}
