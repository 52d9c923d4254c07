package checks

import (
	"context"

	"fleetwash/feature/catalog"
)

// CatalogReport summarises a catalog load.
type CatalogReport struct {
	Loaded bool          `json:"loaded"`
	Stats  catalog.Stats `json:"stats"`
}

// CheckCatalog loads every source. Broken sources are reported as skipped, not as errors.
func CheckCatalog(ctx context.Context, cat *catalog.Catalog) (*CatalogReport, error) {
	roster, err := cat.Load(ctx)
	if err != nil {
		return nil, err
	}
	stats := roster.Stats()
	return &CatalogReport{Loaded: stats.Total > 0, Stats: stats}, nil
}
