package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fleetwash/core/middleware/auth"
	"fleetwash/core/reconcile"
	"fleetwash/feature/catalog"
	"fleetwash/feature/directory"
	"fleetwash/feature/wash"
	"fleetwash/feature/wash/store"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const week = "2025-W10"

func setupService(t *testing.T) (*Service, wash.Store) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "units.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"id": "A1", "cedis": "cartago", "segmento": "graneles"},
		{"id": "A2", "cedis": "cartago", "segmento": "hinos"},
		{"id": "A3", "cedis": "cartago", "segmento": "hinos"},
		{"id": "G1", "cedis": "guapiles", "segmento": "graneles"}
	]`), 0o644))
	cat := catalog.New([]catalog.Source{catalog.FileSource{Path: path}}, directory.Default(), zap.NewNop())

	st := store.NewMemoryStore()
	base := time.Date(2025, 3, 5, 9, 0, 0, 0, time.Local)
	for i, r := range []wash.Record{
		{ID: "r1", Week: week, Depot: "cartago", UnitID: "A2", Segment: directory.SegmentBoxTruck, SupervisorID: "sup-miguel-gomez", SupervisorName: "Miguel Gomez"},
		{ID: "r2", Week: week, Depot: "guapiles", UnitID: "G1", Segment: directory.SegmentBulk, SupervisorName: "Enrique Herrera"},
		{ID: "r3", Week: week, Depot: "cartago", UnitID: "X9", Segment: directory.SegmentBulk, SupervisorName: "Erick Valerin"},
		{ID: "r4", Week: "2025-W11", Depot: "cartago", UnitID: "A1"},
	} {
		r.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, st.Upsert(context.Background(), &r))
	}
	return NewService(cat, st, zap.NewNop()), st
}

func rowUnits(rows []Row) []string {
	out := []string{}
	for _, r := range rows {
		out = append(out, r.UnitID+"@"+r.Depot)
	}
	return out
}

func unitKeys(units []catalog.Unit) []string {
	out := []string{}
	for _, u := range units {
		out = append(out, u.ID+"@"+u.Depot)
	}
	return out
}

func TestWeek_Admin(t *testing.T) {
	svc, _ := setupService(t)

	rep, err := svc.Week(context.Background(), auth.ServicePrincipal, week, reconcile.Filter{})
	require.NoError(t, err)

	assert.Equal(t, []string{"A2@cartago", "G1@guapiles"}, rowUnits(rep.Washed))
	assert.Equal(t, []string{"A1@cartago", "A3@cartago"}, unitKeys(rep.NotWashed))
	assert.Equal(t, []string{"X9@cartago"}, rowUnits(rep.Orphans))
	assert.Equal(t, reconcile.Summary{Total: 4, Washed: 2, NotWashed: 2, Orphans: 1}, rep.Summary)
	assert.Equal(t, 50.0, rep.Percent)
	assert.Equal(t, reconcile.Summary{Total: 2, Washed: 1, NotWashed: 1}, rep.BySegment[directory.SegmentBulk])
	assert.Equal(t, reconcile.Summary{Total: 2, Washed: 1, NotWashed: 1}, rep.BySegment[directory.SegmentBoxTruck])
	assert.Equal(t, "Cartago", rep.Washed[0].DepotName)
}

func TestWeek_Filters(t *testing.T) {
	svc, _ := setupService(t)

	rep, err := svc.Week(context.Background(), auth.ServicePrincipal, "2025-03-07", reconcile.Filter{Depot: "cartago", Segment: directory.SegmentBoxTruck})
	require.NoError(t, err)
	assert.Equal(t, week, rep.Week)
	assert.Equal(t, []string{"A2@cartago"}, rowUnits(rep.Washed))
	assert.Equal(t, []string{"A3@cartago"}, unitKeys(rep.NotWashed))
	assert.Empty(t, rep.Orphans)
}

func TestWeek_SupervisorLimitedToDepot(t *testing.T) {
	svc, _ := setupService(t)
	p := auth.Principal{Username: "enrique", Role: auth.RoleSupervisor, SupervisorID: "sup-enrique-herrera"}

	rep, err := svc.Week(context.Background(), p, week, reconcile.Filter{Depot: "cartago"})
	require.NoError(t, err)
	assert.Equal(t, "guapiles", rep.Depot)
	assert.Equal(t, []string{"G1@guapiles"}, rowUnits(rep.Washed))
	assert.Empty(t, rep.NotWashed)

	_, err = svc.Week(context.Background(), auth.Principal{Role: auth.RoleSupervisor, SupervisorID: "ghost"}, week, reconcile.Filter{})
	assert.ErrorIs(t, err, wash.ErrForbidden)
}

func TestWeek_InvalidWeek(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.Week(context.Background(), auth.ServicePrincipal, "yesterday", reconcile.Filter{})
	assert.ErrorIs(t, err, wash.ErrValidation)
}

func TestWriteCSV(t *testing.T) {
	svc, _ := setupService(t)
	rep, err := svc.Week(context.Background(), auth.ServicePrincipal, week, reconcile.Filter{Depot: "cartago"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rep))

	lines, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, lines, 5)
	assert.Equal(t, CSVHeader, lines[0])
	assert.Equal(t, []string{week, StatusWashed, "cartago", directory.SegmentBoxTruck, "A2", "Miguel Gomez", "2025-03-05T09:00:00"}, lines[1])
	assert.Equal(t, []string{week, StatusWashed, "cartago", directory.SegmentBulk, "X9", "Erick Valerin", "2025-03-05T09:02:00"}, lines[2])
	assert.Equal(t, []string{week, StatusNotWashed, "cartago", directory.SegmentBulk, "A1", "", ""}, lines[3])
	assert.Equal(t, []string{week, StatusNotWashed, "cartago", directory.SegmentBoxTruck, "A3", "", ""}, lines[4])
}

func setupTestApp(t *testing.T, principal auth.Principal) *fiber.App {
	svc, _ := setupService(t)
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		auth.WithPrincipal(c, principal)
		return c.Next()
	})
	feature := NewFeature(svc, zap.NewNop())
	require.NoError(t, feature.Load(app))
	assert.Equal(t, "report", feature.Name())
	assert.True(t, feature.IsEnabled())
	return app
}

func TestHandleWeek(t *testing.T) {
	app := setupTestApp(t, auth.ServicePrincipal)

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/2025-W10?depot=GUAPILES&segment=all", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/reports/2025-W99", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleWeekCSV(t *testing.T) {
	app := setupTestApp(t, auth.ServicePrincipal)

	resp, err := app.Test(httptest.NewRequest("GET", "/reports/2025-W10/csv?depot=guapiles", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "report-2025-W10.csv")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "week,status,depot,segment,unit,supervisor,timestamp\n2025-W10,washed,guapiles,bulk,G1,Enrique Herrera,2025-03-05T09:01:00\n", string(body))
}
