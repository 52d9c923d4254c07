package health

import (
	"context"

	"fleetwash/core/storage"
	"fleetwash/feature/catalog"
	"fleetwash/feature/health/checks"
	"fleetwash/feature/wash"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Status values of a check.
const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusSkipped  = "skipped"
	StatusDegraded = "degraded"
)

// Check is the outcome of one check.
type Check struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
	Detail any    `json:"detail,omitempty"`
}

// Report combines every check.
type Report struct {
	Status   string `json:"status"`
	Database Check  `json:"database"`
	Storage  Check  `json:"storage"`
	Catalog  Check  `json:"catalog"`
}

// Service runs health checks. db and client may be nil when the matching backend is not in use.
type Service struct {
	db      *gorm.DB
	client  storage.Client
	storage storage.Config
	prefix  string
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewService creates a new health service.
func NewService(db *gorm.DB, client storage.Client, storageCfg storage.Config, evidencePrefix string, cat *catalog.Catalog, logger *zap.Logger) *Service {
	return &Service{db: db, client: client, storage: storageCfg, prefix: evidencePrefix, catalog: cat, logger: logger}
}

// CheckDatabase pings the database and verifies the wash record table.
func (s *Service) CheckDatabase(ctx context.Context) Check {
	if s.db == nil {
		return Check{Status: StatusSkipped}
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return Check{Status: StatusError, Error: err.Error()}
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return Check{Status: StatusError, Error: err.Error()}
	}
	report, err := checks.CheckSchema(s.db.WithContext(ctx), wash.Record{})
	if err != nil {
		return Check{Status: StatusError, Error: err.Error()}
	}
	if !report.Matched {
		return Check{Status: StatusError, Detail: report}
	}
	return Check{Status: StatusOK, Detail: report}
}

// CheckStorage verifies the evidence bucket.
func (s *Service) CheckStorage(ctx context.Context) Check {
	if s.client == nil {
		return Check{Status: StatusSkipped}
	}
	report, err := checks.CheckStorage(ctx, s.client, s.storage.Bucket, s.prefix)
	if err != nil {
		return Check{Status: StatusError, Error: err.Error()}
	}
	if !report.Exists {
		return Check{Status: StatusError, Detail: report}
	}
	return Check{Status: StatusOK, Detail: report}
}

// FixStorage creates the evidence bucket when missing.
func (s *Service) FixStorage(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return checks.FixStorage(ctx, s.client, s.storage.Bucket, s.storage.Region)
}

// CheckCatalog loads the catalog. Skipped sources degrade the check.
func (s *Service) CheckCatalog(ctx context.Context) Check {
	report, err := checks.CheckCatalog(ctx, s.catalog)
	if err != nil {
		return Check{Status: StatusError, Error: err.Error()}
	}
	status := StatusOK
	if len(report.Stats.Skipped) > 0 || !report.Loaded {
		status = StatusDegraded
	}
	return Check{Status: status, Detail: report}
}

// Run performs every check.
func (s *Service) Run(ctx context.Context) Report {
	r := Report{
		Database: s.CheckDatabase(ctx),
		Storage:  s.CheckStorage(ctx),
		Catalog:  s.CheckCatalog(ctx),
	}
	r.Status = StatusOK
	for _, c := range []Check{r.Database, r.Storage, r.Catalog} {
		switch c.Status {
		case StatusError:
			r.Status = StatusError
		case StatusDegraded:
			if r.Status == StatusOK {
				r.Status = StatusDegraded
			}
		}
	}
	if r.Status != StatusOK {
		s.logger.Warn("Health check not ok", zap.String("status", r.Status))
	}
	return r
}
