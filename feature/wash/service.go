package wash

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"fleetwash/core/clock"
	"fleetwash/core/middleware/auth"
	"fleetwash/core/utils"
	"fleetwash/feature/catalog"
	"fleetwash/feature/directory"

	"go.uber.org/zap"
)

// Photo is one uploaded photo.
type Photo struct {
	Slot     PhotoSlot
	Filename string
	Data     []byte
}

// Submission is a supervisor's claim that a unit was washed in a week.
type Submission struct {
	UnitID string
	// Week is a week key or a date; empty means the current week.
	Week   string
	Photos []Photo
}

// Service runs the wash submission workflow.
type Service struct {
	store    Store
	ledger   *Ledger
	evidence Evidence
	catalog  *catalog.Catalog
	dir      *directory.Directory
	clock    clock.Clock
	ids      clock.IDGenerator
	cfg      Config
	logger   *zap.Logger

	// Serializes the ledger check with the write within this process.
	submitMu sync.Mutex
}

// NewService creates a new wash service.
func NewService(store Store, evidence Evidence, cat *catalog.Catalog, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		store:    store,
		ledger:   NewLedger(store),
		evidence: evidence,
		catalog:  cat,
		dir:      cat.Directory(),
		clock:    clock.Real{},
		ids:      clock.UUIDGenerator{},
		cfg:      cfg,
		logger:   logger,
	}
}

// WithClock replaces the time source and id generator.
func (s *Service) WithClock(c clock.Clock, ids clock.IDGenerator) *Service {
	s.clock = c
	s.ids = ids
	return s
}

// Store returns the record store.
func (s *Service) Store() Store { return s.store }

// Ledger returns the photo hash ledger.
func (s *Service) Ledger() *Ledger { return s.ledger }

// CurrentWeek returns the week key of now.
func (s *Service) CurrentWeek() string {
	return WeekKey(s.clock.Now())
}

// Submit validates a submission, rejects reused photos, stores the photos and upserts the record.
// Nothing is written unless every check passes.
func (s *Service) Submit(ctx context.Context, p auth.Principal, sub Submission) (*Record, error) {
	if !p.IsSupervisor() {
		return nil, fmt.Errorf("only supervisors submit washes: %w", ErrForbidden)
	}
	sup, ok := s.dir.Supervisor(p.SupervisorID)
	if !ok {
		return nil, &ValidationError{Field: "supervisor", Reason: fmt.Sprintf("supervisor %q is not in the directory", p.SupervisorID)}
	}

	unitID := strings.TrimSpace(sub.UnitID)
	if unitID == "" {
		return nil, &ValidationError{Field: "unit", Reason: "no unit selected"}
	}

	week := s.CurrentWeek()
	if sub.Week != "" {
		w, err := ParseWeek(strings.TrimSpace(sub.Week))
		if err != nil {
			return nil, err
		}
		week = w
	}

	photos, err := collectPhotos(sub.Photos)
	if err != nil {
		return nil, err
	}

	roster, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	// Units outside the catalog keep an empty segment.
	segment := ""
	if u, found := roster.Find(unitID, sup.Depot); found {
		segment = u.Segment
	} else if s.cfg.EnforceCatalog {
		return nil, &ValidationError{Field: "unit", Reason: fmt.Sprintf("unit %s is not in the catalog of depot %s", unitID, sup.Depot)}
	}

	hashes := make(map[PhotoSlot]string, len(Slots))
	for slot, ph := range photos {
		hashes[slot] = HashPhoto(ph.Data)
	}
	if dups := DuplicateSlots(hashes); len(dups) > 0 {
		return nil, &DuplicateInSubmissionError{Slots: dups}
	}

	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	reused, err := s.ledger.Reused(ctx, hashes)
	if err != nil {
		return nil, err
	}
	if len(reused) > 0 {
		return nil, &DuplicatePhotoReusedError{Slots: reused, UnitID: unitID, Week: week, Depot: sup.Depot}
	}

	now := s.clock.Now().Truncate(time.Second)
	stamp := now.Local().Format("20060102-150405")
	stored := make(map[PhotoSlot]string, len(Slots))
	var saved []string
	for _, slot := range Slots {
		ph := photos[slot]
		key := PhotoKey(week, sup.Depot, unitID, slot, ph.Filename, stamp)
		loc, err := s.evidence.Save(ctx, key, ph.Data, http.DetectContentType(ph.Data))
		if err != nil {
			s.discard(ctx, saved)
			return nil, fmt.Errorf("failed to store %s photo: %w", slot, err)
		}
		stored[slot] = loc
		saved = append(saved, loc)
	}

	rec := &Record{
		ID:             s.ids.New(),
		Week:           week,
		Depot:          sup.Depot,
		SupervisorID:   sup.ID,
		SupervisorName: sup.Name,
		UnitID:         unitID,
		Segment:        segment,
		Photos:         stored,
		PhotoHashes:    hashes,
		CreatedAt:      now,
		CreatedBy:      p.Username,
	}
	if err := s.store.Upsert(ctx, rec); err != nil {
		s.discard(ctx, saved)
		return nil, err
	}

	s.logger.Info("Wash recorded",
		zap.String("id", rec.ID),
		zap.String("week", week),
		zap.String("depot", rec.Depot),
		zap.String("unit", unitID),
		zap.String("supervisor", sup.ID))
	return rec, nil
}

// discard removes photos written by a submission that failed afterwards.
func (s *Service) discard(ctx context.Context, locations []string) {
	if len(locations) == 0 {
		return
	}
	if err := s.evidence.Remove(ctx, locations...); err != nil {
		s.logger.Warn("Failed to remove photos of failed submission", zap.Strings("photos", locations), zap.Error(err))
	}
}

// ListWeek returns the week's records visible to p. Supervisors only see their own.
func (s *Service) ListWeek(ctx context.Context, p auth.Principal, week string) ([]Record, error) {
	week, err := ParseWeek(week)
	if err != nil {
		return nil, err
	}
	records, err := s.store.ListByWeek(ctx, week)
	if err != nil {
		return nil, err
	}
	if p.IsAdmin() {
		return records, nil
	}
	own := []Record{}
	for _, r := range records {
		if r.SupervisorID == p.SupervisorID {
			own = append(own, r)
		}
	}
	return own, nil
}

// DeleteRecord removes one record. Only the supervisor who submitted it may delete it.
// The photos stay in evidence storage.
func (s *Service) DeleteRecord(ctx context.Context, p auth.Principal, id string) error {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if !p.IsSupervisor() || rec.SupervisorID != p.SupervisorID {
		return fmt.Errorf("record %s belongs to %s: %w", id, rec.SupervisorID, ErrForbidden)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Wash deleted", zap.String("id", id), zap.String("week", rec.Week), zap.String("unit", rec.UnitID))
	return nil
}

// DeleteWeek removes every record of a week together with its photos. Administrators only.
func (s *Service) DeleteWeek(ctx context.Context, p auth.Principal, week string) (int, error) {
	if !p.IsAdmin() {
		return 0, fmt.Errorf("only administrators delete weeks: %w", ErrForbidden)
	}
	week, err := ParseWeek(week)
	if err != nil {
		return 0, err
	}
	n, err := s.store.DeleteWeek(ctx, week)
	if err != nil {
		return 0, err
	}
	photos, err := s.evidence.RemoveWeek(ctx, week)
	if err != nil {
		return n, fmt.Errorf("deleted %d records but failed to remove photos: %w", n, err)
	}
	s.logger.Info("Week deleted", zap.String("week", week), zap.Int("records", n), zap.Int("photos", photos))
	return n, nil
}

func collectPhotos(photos []Photo) (map[PhotoSlot]Photo, error) {
	bySlot := make(map[PhotoSlot]Photo, len(Slots))
	for _, ph := range photos {
		if _, ok := ParseSlot(string(ph.Slot)); !ok {
			return nil, &ValidationError{Field: "photos", Reason: fmt.Sprintf("unknown slot %q", ph.Slot)}
		}
		if _, dup := bySlot[ph.Slot]; dup {
			return nil, &ValidationError{Field: "photos", Reason: fmt.Sprintf("slot %s uploaded twice", ph.Slot)}
		}
		if len(ph.Data) == 0 {
			continue
		}
		bySlot[ph.Slot] = ph
	}
	var missing []PhotoSlot
	for _, slot := range Slots {
		if _, ok := bySlot[slot]; !ok {
			missing = append(missing, slot)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Field: "photos", Reason: "missing " + joinSlots(missing)}
	}
	return bySlot, nil
}

// unitKeyReplacer keeps a unit id inside one key segment.
var unitKeyReplacer = strings.NewReplacer("/", "-", `\`, "-")

// PhotoKey builds the evidence key <week>/<depot>/<unit>/<stamp>_<slot><ext>.
// The extension is taken from the uploaded filename, lowercased, defaulting to .jpg.
func PhotoKey(week, depot, unitID string, slot PhotoSlot, filename, stamp string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		ext = ".jpg"
	}
	unit := unitKeyReplacer.Replace(unitID)
	if strings.Trim(unit, ".") == "" {
		unit = strings.Repeat("-", len(unit))
	}
	return fmt.Sprintf("%s/%s/%s/%s_%s%s", week, utils.Slug(depot), unit, stamp, slot, ext)
}

// IsClientError reports whether err is caused by the request rather than the system.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrDuplicateInSubmission) ||
		errors.Is(err, ErrDuplicatePhotoReused) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrNotFound)
}
