package store

import (
	"context"
	"errors"
	"fmt"

	"fleetwash/feature/wash"

	"gorm.io/gorm"
)

// GormStore keeps records in a SQL table with a unique index on (week, depot, unit_id).
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a store over an open connection.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates or updates the wash_records table and its indexes.
func (s *GormStore) Migrate() error {
	if err := s.db.AutoMigrate(&wash.Record{}); err != nil {
		return fmt.Errorf("failed to migrate wash records: %w", err)
	}
	return nil
}

func (s *GormStore) Upsert(ctx context.Context, rec *wash.Record) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("week = ? AND depot = ? AND unit_id = ?", rec.Week, rec.Depot, rec.UnitID).
			Delete(&wash.Record{}).Error; err != nil {
			return err
		}
		return tx.Create(rec).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &wash.StoreConflictError{Week: rec.Week, Depot: rec.Depot, UnitID: rec.UnitID, Err: err}
	}
	if err != nil {
		return fmt.Errorf("failed to upsert wash record: %w", err)
	}
	return nil
}

func (s *GormStore) ListByWeek(ctx context.Context, week string) ([]wash.Record, error) {
	var records []wash.Record
	err := s.db.WithContext(ctx).
		Where("week = ?", week).
		Order("created_at DESC").
		Order("id DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list week %s: %w", week, err)
	}
	return records, nil
}

func (s *GormStore) Get(ctx context.Context, id string) (*wash.Record, error) {
	var rec wash.Record
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("record %s: %w", id, wash.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %s: %w", id, err)
	}
	return &rec, nil
}

func (s *GormStore) Delete(ctx context.Context, id string) error {
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&wash.Record{}).Error; err != nil {
		return fmt.Errorf("failed to delete record %s: %w", id, err)
	}
	return nil
}

func (s *GormStore) DeleteWeek(ctx context.Context, week string) (int, error) {
	res := s.db.WithContext(ctx).Where("week = ?", week).Delete(&wash.Record{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete week %s: %w", week, res.Error)
	}
	return int(res.RowsAffected), nil
}

func (s *GormStore) PhotoHashes(ctx context.Context) ([]map[wash.PhotoSlot]string, error) {
	var records []wash.Record
	if err := s.db.WithContext(ctx).Select("photo_hashes").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to read photo hashes: %w", err)
	}
	out := make([]map[wash.PhotoSlot]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.PhotoHashes)
	}
	return out, nil
}
