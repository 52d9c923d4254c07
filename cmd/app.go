package cmd

import (
	"context"
	"fmt"
	"strings"

	"fleetwash/core/config"
	"fleetwash/core/database"
	"fleetwash/core/logger"
	"fleetwash/core/storage"
	"fleetwash/feature/catalog"
	"fleetwash/feature/directory"
	"fleetwash/feature/health"
	"fleetwash/feature/report"
	"fleetwash/feature/users"
	"fleetwash/feature/wash"
	"fleetwash/feature/wash/evidence"
	"fleetwash/feature/wash/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// application holds the services shared by the server and the CLI commands.
type application struct {
	cfg    *config.Config
	logger *zap.Logger
	db     *gorm.DB
	client storage.Client

	dir     *directory.Directory
	catalog *catalog.Catalog
	wash    *wash.Service
	reports *report.Service
	health  *health.Service
	users   *users.Store
}

// loadCatalog loads the configuration, the logger and the unit catalog.
// Object storage is only connected when a configured backend needs it.
func loadCatalog() (*application, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	a := &application{cfg: cfg, logger: logg}

	if needsObjectStorage(cfg) {
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		a.client = client
	}

	a.dir, err = directory.Load(cfg.Catalog.Directory)
	if err != nil {
		return nil, err
	}

	sources, err := catalog.ParseSources(cfg.Catalog.Sources, a.client, cfg.Storage.Bucket)
	if err != nil {
		return nil, err
	}
	a.catalog = catalog.New(sources, a.dir, logg)
	a.users = users.NewStore(cfg.Users.Path, a.dir)
	return a, nil
}

// bootstrap wires every service on top of loadCatalog.
// The database is only connected for the sql record store.
func bootstrap(ctx context.Context) (*application, error) {
	a, err := loadCatalog()
	if err != nil {
		return nil, err
	}
	cfg := a.cfg

	if cfg.Wash.Store == store.BackendSQL || cfg.Wash.Store == "" {
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.db = db
		a.logger.Info("Connected to database", zap.String("driver", cfg.Database.Driver))
	}

	records, err := store.New(cfg.Wash, a.db, a.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create wash store: %w", err)
	}

	photos, err := evidence.New(ctx, cfg.Wash, a.client, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create evidence store: %w", err)
	}

	a.wash = wash.NewService(records, photos, a.catalog, cfg.Wash, a.logger)
	a.reports = report.NewService(a.catalog, records, a.logger)
	a.health = health.NewService(a.db, a.client, cfg.Storage, cfg.Wash.EvidencePrefix, a.catalog, a.logger)

	return a, nil
}

func needsObjectStorage(cfg *config.Config) bool {
	if cfg.Wash.Evidence == evidence.BackendObject {
		return true
	}
	for _, src := range cfg.Catalog.Sources {
		if strings.HasPrefix(strings.TrimSpace(src), "s3://") {
			return true
		}
	}
	return false
}
