package wash_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"fleetwash/core/clock/clocktest"
	"fleetwash/core/middleware/auth"
	"fleetwash/core/reconcile"
	"fleetwash/feature/catalog"
	"fleetwash/feature/directory"
	"fleetwash/feature/report"
	"fleetwash/feature/wash"
	"fleetwash/feature/wash/evidence"
	"fleetwash/feature/wash/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	miguel = auth.Principal{Username: "miguel", Name: "Miguel Gomez", Role: auth.RoleSupervisor, SupervisorID: "sup-miguel-gomez"}
	erick  = auth.Principal{Username: "erick", Name: "Erick Valerin", Role: auth.RoleSupervisor, SupervisorID: "sup-erick-valerin"}
	admin  = auth.Principal{Username: "admin", Name: "Admin", Role: auth.RoleAdmin}
)

type fixture struct {
	svc      *wash.Service
	store    wash.Store
	evidence *evidence.MemoryStore
	catalog  *catalog.Catalog
}

func newFixture(t *testing.T, cfg wash.Config) *fixture {
	t.Helper()
	return newFixtureWithStore(t, cfg, store.NewMemoryStore())
}

func newFixtureWithStore(t *testing.T, cfg wash.Config, st wash.Store) *fixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "units.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "A1", "cedis": "cartago", "segmento": "hinos"},
		{"id": "A2", "cedis": "cartago", "segmento": "hinos"}
	]`), 0o644))
	cat := catalog.New([]catalog.Source{catalog.FileSource{Path: path}}, directory.Default(), zap.NewNop())
	ev := evidence.NewMemoryStore("evidence/")
	svc := wash.NewService(st, ev, cat, cfg, zap.NewNop()).
		WithClock(clocktest.FixedClock(), clocktest.NewStubIDGenerator())
	return &fixture{svc: svc, store: st, evidence: ev, catalog: cat}
}

// photos returns four distinct photos derived from seed.
func photos(seed string) []wash.Photo {
	out := make([]wash.Photo, 0, len(wash.Slots))
	for _, slot := range wash.Slots {
		out = append(out, wash.Photo{Slot: slot, Filename: string(slot) + ".JPG", Data: []byte(seed + "-" + string(slot))})
	}
	return out
}

func (f *fixture) notWashed(t *testing.T, week, depot string) []string {
	t.Helper()
	roster, err := f.catalog.Load(context.Background())
	require.NoError(t, err)
	records, err := f.store.ListByWeek(context.Background(), week)
	require.NoError(t, err)
	ids := []string{}
	for _, u := range reconcile.NotWashed[catalog.Unit, wash.Record](report.Adapter{}, roster.Units, records, reconcile.Filter{Depot: depot}) {
		ids = append(ids, u.ID)
	}
	return ids
}

func (f *fixture) count(t *testing.T, week string) int {
	t.Helper()
	records, err := f.store.ListByWeek(context.Background(), week)
	require.NoError(t, err)
	return len(records)
}

func TestSubmit_ReusedPhotoLeavesStoreUnchanged(t *testing.T) {
	f := newFixture(t, wash.Config{})
	ctx := context.Background()

	rec, err := f.svc.Submit(ctx, miguel, wash.Submission{UnitID: "A1", Week: "2025-W10", Photos: photos("a1")})
	require.NoError(t, err)
	assert.Equal(t, 1, f.count(t, "2025-W10"))
	assert.Equal(t, []string{"A2"}, f.notWashed(t, "2025-W10", "cartago"))
	assert.Len(t, rec.PhotoHashes, 4)
	assert.Len(t, rec.Photos, 4)

	second := photos("a2")
	second[2].Data = photos("a1")[0].Data
	_, err = f.svc.Submit(ctx, miguel, wash.Submission{UnitID: "A2", Week: "2025-W10", Photos: second})
	require.Error(t, err)

	var reused *wash.DuplicatePhotoReusedError
	require.ErrorAs(t, err, &reused)
	assert.Equal(t, []wash.PhotoSlot{wash.SlotSide}, reused.Slots)
	assert.Equal(t, "A2", reused.UnitID)
	assert.Equal(t, "2025-W10", reused.Week)
	assert.Equal(t, "cartago", reused.Depot)

	assert.Equal(t, 1, f.count(t, "2025-W10"))
	assert.Equal(t, []string{"A2"}, f.notWashed(t, "2025-W10", "cartago"))
	assert.Len(t, f.evidence.Files(), 4)
}

func TestSubmit_RecordFields(t *testing.T) {
	f := newFixture(t, wash.Config{})

	rec, err := f.svc.Submit(context.Background(), miguel, wash.Submission{UnitID: " A1 ", Photos: photos("x")})
	require.NoError(t, err)

	assert.Equal(t, "id-1", rec.ID)
	assert.Equal(t, "2025-W10", rec.Week)
	assert.Equal(t, "cartago", rec.Depot)
	assert.Equal(t, "sup-miguel-gomez", rec.SupervisorID)
	assert.Equal(t, "Miguel Gomez", rec.SupervisorName)
	assert.Equal(t, "A1", rec.UnitID)
	assert.Equal(t, directory.SegmentBoxTruck, rec.Segment)
	assert.Equal(t, "miguel", rec.CreatedBy)
	assert.Equal(t, "2025-03-05T10:30:00", rec.Timestamp())
	assert.Equal(t, "evidence/2025-W10/cartago/A1/20250305-103000_front.jpg", rec.Photos[wash.SlotFront])
	assert.Equal(t, wash.HashPhoto([]byte("x-cab")), rec.PhotoHashes[wash.SlotCab])

	data, ok := f.evidence.Get(rec.Photos[wash.SlotBack])
	require.True(t, ok)
	assert.Equal(t, []byte("x-back"), data)
}

func TestSubmit_WeekFromDate(t *testing.T) {
	f := newFixture(t, wash.Config{})

	rec, err := f.svc.Submit(context.Background(), miguel, wash.Submission{UnitID: "A1", Week: "2025-03-12", Photos: photos("x")})
	require.NoError(t, err)
	assert.Equal(t, "2025-W11", rec.Week)
	assert.Equal(t, "2025-W10", f.svc.CurrentWeek())
}

func TestSubmit_DuplicateInSubmissionWritesNothing(t *testing.T) {
	f := newFixture(t, wash.Config{})

	ph := photos("dup")
	ph[3].Data = ph[1].Data
	_, err := f.svc.Submit(context.Background(), miguel, wash.Submission{UnitID: "A1", Photos: ph})

	var dup *wash.DuplicateInSubmissionError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, []wash.PhotoSlot{wash.SlotBack, wash.SlotCab}, dup.Slots)
	assert.Zero(t, f.count(t, "2025-W10"))
	assert.Empty(t, f.evidence.Files())
}

func TestSubmit_Rejections(t *testing.T) {
	missing := photos("m")[:3]
	unknown := append(photos("u")[:3], wash.Photo{Slot: "roof", Data: []byte("r")})
	twice := append(photos("t"), wash.Photo{Slot: wash.SlotFront, Data: []byte("again")})
	empty := photos("e")
	empty[0].Data = nil

	tests := []struct {
		name   string
		p      auth.Principal
		sub    wash.Submission
		target error
	}{
		{"admin cannot submit", admin, wash.Submission{UnitID: "A1", Photos: photos("a")}, wash.ErrForbidden},
		{"unknown supervisor", auth.Principal{Role: auth.RoleSupervisor, SupervisorID: "ghost"}, wash.Submission{UnitID: "A1", Photos: photos("a")}, wash.ErrValidation},
		{"no unit", miguel, wash.Submission{Photos: photos("a")}, wash.ErrValidation},
		{"bad week", miguel, wash.Submission{UnitID: "A1", Week: "next week", Photos: photos("a")}, wash.ErrValidation},
		{"missing photo", miguel, wash.Submission{UnitID: "A1", Photos: missing}, wash.ErrValidation},
		{"empty photo", miguel, wash.Submission{UnitID: "A1", Photos: empty}, wash.ErrValidation},
		{"unknown slot", miguel, wash.Submission{UnitID: "A1", Photos: unknown}, wash.ErrValidation},
		{"slot twice", miguel, wash.Submission{UnitID: "A1", Photos: twice}, wash.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, wash.Config{})
			_, err := f.svc.Submit(context.Background(), tt.p, tt.sub)
			assert.ErrorIs(t, err, tt.target)
			assert.True(t, wash.IsClientError(err))
			assert.Zero(t, f.count(t, "2025-W10"))
			assert.Empty(t, f.evidence.Files())
		})
	}
}

func TestSubmit_CatalogMembership(t *testing.T) {
	f := newFixture(t, wash.Config{})
	rec, err := f.svc.Submit(context.Background(), miguel, wash.Submission{UnitID: "Z9", Photos: photos("z")})
	require.NoError(t, err)
	assert.Empty(t, rec.Segment)

	f = newFixture(t, wash.Config{EnforceCatalog: true})
	_, err = f.svc.Submit(context.Background(), miguel, wash.Submission{UnitID: "Z9", Photos: photos("z")})
	var verr *wash.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "unit", verr.Field)
	assert.Contains(t, err.Error(), "Z9")
}

func TestSubmit_ResubmissionReplacesRecord(t *testing.T) {
	f := newFixture(t, wash.Config{})
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, miguel, wash.Submission{UnitID: "A1", Photos: photos("first")})
	require.NoError(t, err)
	second, err := f.svc.Submit(ctx, miguel, wash.Submission{UnitID: "A1", Photos: photos("second")})
	require.NoError(t, err)

	records, err := f.store.ListByWeek(ctx, "2025-W10")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, second.ID, records[0].ID)

	// The replaced record no longer holds its hashes.
	_, err = f.svc.Submit(ctx, miguel, wash.Submission{UnitID: "A2", Photos: photos("first")})
	assert.NoError(t, err)
}

type conflictStore struct {
	wash.Store
}

func (conflictStore) Upsert(ctx context.Context, rec *wash.Record) error {
	return &wash.StoreConflictError{Week: rec.Week, Depot: rec.Depot, UnitID: rec.UnitID, Err: errors.New("duplicate entry")}
}

func TestSubmit_StoreFailureDiscardsPhotos(t *testing.T) {
	f := newFixtureWithStore(t, wash.Config{}, conflictStore{Store: store.NewMemoryStore()})

	_, err := f.svc.Submit(context.Background(), miguel, wash.Submission{UnitID: "A1", Photos: photos("c")})
	var conflict *wash.StoreConflictError
	require.ErrorAs(t, err, &conflict)
	assert.True(t, conflict.Retryable())
	assert.False(t, wash.IsClientError(err))
	assert.Empty(t, f.evidence.Files())
}

func TestListWeek(t *testing.T) {
	f := newFixture(t, wash.Config{})
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, miguel, wash.Submission{UnitID: "A1", Photos: photos("m")})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, erick, wash.Submission{UnitID: "A2", Photos: photos("e")})
	require.NoError(t, err)

	all, err := f.svc.ListWeek(ctx, admin, "2025-W10")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	own, err := f.svc.ListWeek(ctx, erick, "2025-03-05")
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "A2", own[0].UnitID)

	_, err = f.svc.ListWeek(ctx, admin, "soon")
	assert.ErrorIs(t, err, wash.ErrValidation)
}

func TestDeleteRecord(t *testing.T) {
	f := newFixture(t, wash.Config{})
	ctx := context.Background()

	rec, err := f.svc.Submit(ctx, miguel, wash.Submission{UnitID: "A1", Photos: photos("d")})
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.DeleteRecord(ctx, erick, rec.ID), wash.ErrForbidden)
	assert.ErrorIs(t, f.svc.DeleteRecord(ctx, admin, rec.ID), wash.ErrForbidden)
	assert.ErrorIs(t, f.svc.DeleteRecord(ctx, miguel, "missing"), wash.ErrNotFound)

	require.NoError(t, f.svc.DeleteRecord(ctx, miguel, rec.ID))
	assert.Zero(t, f.count(t, "2025-W10"))
	assert.Len(t, f.evidence.Files(), 4)

	// Deleting a record releases its photos for a new submission.
	_, err = f.svc.Submit(ctx, miguel, wash.Submission{UnitID: "A1", Photos: photos("d")})
	assert.NoError(t, err)
}

func TestDeleteWeek(t *testing.T) {
	f := newFixture(t, wash.Config{})
	ctx := context.Background()

	_, err := f.svc.Submit(ctx, miguel, wash.Submission{UnitID: "A1", Photos: photos("w1")})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, miguel, wash.Submission{UnitID: "A2", Photos: photos("w2")})
	require.NoError(t, err)
	_, err = f.svc.Submit(ctx, miguel, wash.Submission{UnitID: "A1", Week: "2025-W11", Photos: photos("w3")})
	require.NoError(t, err)

	_, err = f.svc.DeleteWeek(ctx, miguel, "2025-W10")
	assert.ErrorIs(t, err, wash.ErrForbidden)

	n, err := f.svc.DeleteWeek(ctx, admin, "2025-W10")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Zero(t, f.count(t, "2025-W10"))
	assert.Equal(t, 1, f.count(t, "2025-W11"))

	files := f.evidence.Files()
	sort.Strings(files)
	require.Len(t, files, 4)
	for _, name := range files {
		assert.Contains(t, name, "evidence/2025-W11/")
	}
}
