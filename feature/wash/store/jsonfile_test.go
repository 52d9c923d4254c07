package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fleetwash/feature/directory"
	"fleetwash/feature/wash"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyStore = `{
  "registros": {
    "2025-W10": [
      {
        "id": "9f1c2e",
        "week": "2025-W10",
        "cedis": "San Carlos",
        "supervisorId": "sup-cristofer-carranza",
        "supervisorNombre": "Cristofer Carranza",
        "unidadId": "SC-12",
        "unidadLabel": "SC-12",
        "segmento": "hinos",
        "fotos": {"frente": "store/evidence/2025-W10/san-carlos/SC-12/20250305-103000_frente.jpg"},
        "foto_hashes": {"frente": "h-frente", "atras": "h-atras", "lado": "h-lado", "cabina": "h-cabina"},
        "ts": "2025-03-05T10:30:00",
        "created_by": "ccarranza"
      }
    ]
  },
  "version": 2
}`

func writeLegacy(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "store", "store.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(legacyStore), 0o644))
	return path
}

func TestJSONFileStore_ReadsExistingFile(t *testing.T) {
	ctx := context.Background()
	s := NewJSONFileStore(writeLegacy(t), directory.Default())

	records, err := s.ListByWeek(ctx, "2025-W10")
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "9f1c2e", r.ID)
	assert.Equal(t, "san-carlos", r.Depot)
	assert.Equal(t, directory.SegmentBoxTruck, r.Segment)
	assert.Equal(t, "SC-12", r.UnitID)
	assert.Equal(t, "h-cabina", r.PhotoHashes[wash.SlotCab])
	assert.Contains(t, r.Photos[wash.SlotFront], "frente.jpg")
	assert.Equal(t, "2025-03-05T10:30:00", r.Timestamp())

	known, err := wash.NewLedger(s).AllKnownHashes(ctx)
	require.NoError(t, err)
	assert.Len(t, known, 4)
	assert.Contains(t, known, "h-atras")
}

func TestJSONFileStore_WriteKeepsExistingData(t *testing.T) {
	ctx := context.Background()
	path := writeLegacy(t)
	s := NewJSONFileStore(path, directory.Default())

	require.NoError(t, s.Upsert(ctx, record("r2", "2025-W11", "cartago", "A1", time.Hour)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.JSONEq(t, `2`, string(doc["version"]))

	var weeks map[string][]map[string]any
	require.NoError(t, json.Unmarshal(doc["registros"], &weeks))
	require.Len(t, weeks["2025-W10"], 1)
	require.Len(t, weeks["2025-W11"], 1)
	written := weeks["2025-W11"][0]
	assert.Equal(t, "cartago", written["cedis"])
	assert.Equal(t, "A1", written["unidadId"])
	assert.Contains(t, written["foto_hashes"], "cabina")

	w10, err := s.ListByWeek(ctx, "2025-W10")
	require.NoError(t, err)
	require.Len(t, w10, 1)
	assert.Equal(t, "h-frente", w10[0].PhotoHashes[wash.SlotFront])
}

func TestJSONFileStore_UpsertReplacesExistingRecord(t *testing.T) {
	ctx := context.Background()
	s := NewJSONFileStore(writeLegacy(t), directory.Default())

	require.NoError(t, s.Upsert(ctx, record("r2", "2025-W10", "san-carlos", "SC-12", time.Hour)))

	records, err := s.ListByWeek(ctx, "2025-W10")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "r2", records[0].ID)
}
