package catalog

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"fleetwash/core/storage/mocks"
	"fleetwash/feature/directory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func writeSource(t *testing.T, name, content string) Source {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return FileSource{Path: path}
}

func newTestCatalog(sources ...Source) *Catalog {
	return New(sources, directory.Default(), zap.NewNop())
}

func TestLoad_MergesLastSourceWins(t *testing.T) {
	first := writeSource(t, "first.json", `[
		{"id": "A1", "cedis": "Cartago", "segmento": "hinos", "tipo": "Hino 300"},
		{"id": "A2", "cedis": "cartago", "negocio": "Cilindros"}
	]`)
	second := writeSource(t, "second.json", `[
		{"placa": "A1", "cedis": "CARTAGO", "segmento": "graneles"},
		{"id": "B1", "cedis": "Guápiles", "negocio": "Granel GLP"}
	]`)

	roster, err := newTestCatalog(first, second).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, roster.Units, 3)

	assert.Equal(t, Unit{ID: "A1", Depot: "cartago", Segment: directory.SegmentBulk, Type: "Bulk"}, roster.Units[0])
	assert.Equal(t, Unit{ID: "A2", Depot: "cartago", Segment: directory.SegmentBoxTruck, Type: "Box Truck"}, roster.Units[1])
	assert.Equal(t, Unit{ID: "B1", Depot: "guapiles", Segment: directory.SegmentBulk, Type: "Bulk"}, roster.Units[2])
	assert.Empty(t, roster.Skipped)
}

func TestLoad_SameIDDifferentDepots(t *testing.T) {
	src := writeSource(t, "units.json", `[
		{"id": "A1", "cedis": "cartago"},
		{"id": "A1", "cedis": "alajuela"}
	]`)

	roster, err := newTestCatalog(src).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, roster.Units, 2)
	assert.True(t, roster.Contains("A1", "cartago"))
	assert.True(t, roster.Contains("A1", "alajuela"))
	assert.False(t, roster.Contains("A1", "nicoya"))
}

func TestLoad_SkipsInvalidDescriptors(t *testing.T) {
	src := writeSource(t, "units.json", `[
		{"id": "  ", "cedis": "cartago"},
		{"id": "A1", "cedis": ""},
		{"id": 170135, "cedis": "Liberia"},
		{"id": " A2 ", "cedis": "la cruz", "segmento": "tanker"}
	]`)

	roster, err := newTestCatalog(src).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, roster.Units, 2)
	assert.Equal(t, Unit{ID: "170135", Depot: "liberia", Segment: directory.SegmentOther, Type: "Other"}, roster.Units[0])
	assert.Equal(t, "A2", roster.Units[1].ID)
	assert.Equal(t, "la-cruz", roster.Units[1].Depot)
	assert.Equal(t, directory.SegmentOther, roster.Units[1].Segment)
}

func TestLoad_SkipsBrokenSources(t *testing.T) {
	good := writeSource(t, "good.json", `[{"id": "A1", "cedis": "cartago"}]`)
	notList := writeSource(t, "object.json", `{"id": "X"}`)
	malformed := writeSource(t, "broken.json", `[{"id": `)
	missing := FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}

	roster, err := newTestCatalog(missing, good, notList, malformed).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, roster.Units, 1)
	require.Len(t, roster.Skipped, 3)
	for _, sk := range roster.Skipped {
		assert.ErrorIs(t, sk, ErrSourceLoad)
	}
	assert.Len(t, roster.Stats().Skipped, 3)
}

func TestLoad_NoSources(t *testing.T) {
	roster, err := newTestCatalog().Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, roster.Units)
}

func TestLoad_ObjectSource(t *testing.T) {
	client := new(mocks.Client)
	client.On("GetObject", mock.Anything, "fleetwash", "catalog/units.json", mock.Anything).
		Return(io.NopCloser(strings.NewReader(`[{"id": "A1", "cedis": "nicoya"}]`)), nil)
	client.On("GetObject", mock.Anything, "fleetwash", "catalog/gone.json", mock.Anything).
		Return(nil, assert.AnError)

	sources, err := ParseSources([]string{"s3://catalog/units.json", " ", "s3://catalog/gone.json"}, client, "fleetwash")
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "s3://catalog/units.json", sources[0].Name())

	roster, err := newTestCatalog(sources...).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Unit{{ID: "A1", Depot: "nicoya", Segment: directory.SegmentOther, Type: "Other"}}, roster.Units)
	require.Len(t, roster.Skipped, 1)
	assert.ErrorIs(t, roster.Skipped[0], assert.AnError)
}

func TestParseSources_RequiresClient(t *testing.T) {
	_, err := ParseSources([]string{"s3://catalog/units.json"}, nil, "")
	assert.Error(t, err)

	sources, err := ParseSources([]string{"data/units.json"}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, FileSource{Path: "data/units.json"}, sources[0])
}

func TestSegmentFromBusinessLine(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"Granel", directory.SegmentBulk},
		{"GLP GRANEL", directory.SegmentBulk},
		{"Cilindros", directory.SegmentBoxTruck},
		{"Camión HINO", directory.SegmentBoxTruck},
		{"Administrativo", directory.SegmentOther},
		{"", directory.SegmentOther},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, SegmentFromBusinessLine(tt.label))
		})
	}
}

func TestRoster_FilterAndStats(t *testing.T) {
	r := &Roster{Units: []Unit{
		{ID: "A1", Depot: "cartago", Segment: directory.SegmentBulk},
		{ID: "A2", Depot: "cartago", Segment: directory.SegmentBoxTruck},
		{ID: "B1", Depot: "nicoya", Segment: directory.SegmentBulk},
	}}

	assert.Len(t, r.Filter("", ""), 3)
	assert.Len(t, r.Filter("cartago", ""), 2)
	assert.Len(t, r.Filter("", directory.SegmentBulk), 2)
	assert.Equal(t, "A2", r.Filter("cartago", directory.SegmentBoxTruck)[0].ID)
	assert.Empty(t, r.Filter("alajuela", ""))

	s := r.Stats()
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.ByDepot["cartago"])
	assert.Equal(t, 2, s.BySegment[directory.SegmentBulk])
}

func TestVisibleUnits(t *testing.T) {
	r := &Roster{Units: []Unit{
		{ID: "A1", Depot: "cartago", Segment: directory.SegmentBulk},
		{ID: "A2", Depot: "cartago", Segment: directory.SegmentBoxTruck},
		{ID: "A3", Depot: "cartago", Segment: directory.SegmentBulk},
		{ID: "G1", Depot: "guapiles", Segment: directory.SegmentBulk},
	}}
	dir := directory.Default()

	t.Run("Supervisor Segment", func(t *testing.T) {
		units := VisibleUnits(r, dir, "sup-erick-valerin", "")
		assert.Equal(t, []string{"A1", "A3"}, ids(units))
	})

	t.Run("Supervisor Without Segment", func(t *testing.T) {
		units := VisibleUnits(r, dir, "sup-enrique-herrera", "")
		assert.Equal(t, []string{"G1"}, ids(units))
	})

	t.Run("Assignments Take Precedence", func(t *testing.T) {
		d := directory.Default()
		d.Assignments = []directory.Assignment{{SupervisorID: "sup-erick-valerin", UnitID: "A2"}}
		assert.Equal(t, []string{"A2"}, ids(VisibleUnits(r, d, "sup-erick-valerin", "")))
		assert.Empty(t, VisibleUnits(r, d, "sup-erick-valerin", directory.SegmentBulk))
	})

	t.Run("Unknown Supervisor", func(t *testing.T) {
		assert.Empty(t, VisibleUnits(r, dir, "sup-nobody", ""))
	})
}

func ids(units []Unit) []string {
	out := []string{}
	for _, u := range units {
		out = append(out, u.ID)
	}
	return out
}

// gatedSource blocks every read until release is closed.
type gatedSource struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	body    string
}

func (s *gatedSource) Name() string { return "gated" }

func (s *gatedSource) Open(ctx context.Context) (io.ReadCloser, error) {
	s.once.Do(func() { close(s.started) })
	<-s.release
	return io.NopCloser(strings.NewReader(s.body)), nil
}

func TestLoad_CancelledCallerDoesNotFailOthers(t *testing.T) {
	src := &gatedSource{
		started: make(chan struct{}),
		release: make(chan struct{}),
		body:    `[{"id": "A1", "cedis": "cartago"}]`,
	}
	c := newTestCatalog(src)

	type result struct {
		roster *Roster
		err    error
	}

	ctx, cancel := context.WithCancel(context.Background())
	first := make(chan result, 1)
	go func() {
		r, err := c.Load(ctx)
		first <- result{r, err}
	}()
	<-src.started

	second := make(chan result, 1)
	go func() {
		r, err := c.Load(context.Background())
		second <- result{r, err}
	}()

	cancel()
	select {
	case res := <-first:
		assert.ErrorIs(t, res.err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller kept waiting for the shared read")
	}

	close(src.release)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.True(t, res.roster.Contains("A1", "cartago"))
	case <-time.After(2 * time.Second):
		t.Fatal("second caller never returned")
	}
}
