package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"sync"
	"time"

	"fleetwash/feature/wash"
)

// JSONFileStore keeps records in one JSON document grouped by week under "registros",
// the layout of the original store.json. Unknown top-level keys survive every write.
// The file is read on every call and replaced atomically on every write.
type JSONFileStore struct {
	mu       sync.Mutex
	path     string
	resolver Resolver
}

// Resolver maps depot and segment labels found in the file to ids.
type Resolver interface {
	DepotID(raw string) string
	SegmentID(raw string) string
}

const recordsKey = "registros"

// File slot names. English names are accepted on read.
var fileSlots = map[wash.PhotoSlot]string{
	wash.SlotFront: "frente",
	wash.SlotBack:  "atras",
	wash.SlotSide:  "lado",
	wash.SlotCab:   "cabina",
}

type jsonDocument struct {
	Records map[string][]wash.Record
	extra   map[string]json.RawMessage
}

// jsonRecord is a record as stored in the file.
type jsonRecord struct {
	ID             string            `json:"id"`
	Week           string            `json:"week"`
	Depot          string            `json:"cedis"`
	SupervisorID   string            `json:"supervisorId"`
	SupervisorName string            `json:"supervisorNombre"`
	UnitID         string            `json:"unidadId"`
	UnitLabel      string            `json:"unidadLabel,omitempty"`
	Segment        string            `json:"segmento"`
	Photos         map[string]string `json:"fotos"`
	PhotoHashes    map[string]string `json:"foto_hashes"`
	Timestamp      string            `json:"ts"`
	CreatedBy      string            `json:"created_by"`
}

// NewJSONFileStore creates a store backed by path. The file is created on first write.
// resolver may be nil, in which case depot and segment values are kept as found.
func NewJSONFileStore(path string, resolver Resolver) *JSONFileStore {
	return &JSONFileStore{path: path, resolver: resolver}
}

func (s *JSONFileStore) read() (*jsonDocument, error) {
	doc := &jsonDocument{Records: make(map[string][]wash.Record), extra: make(map[string]json.RawMessage)}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(data, &doc.extra); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	raw, ok := doc.extra[recordsKey]
	delete(doc.extra, recordsKey)
	if !ok || string(raw) == "null" {
		return doc, nil
	}
	var weeks map[string][]jsonRecord
	if err := json.Unmarshal(raw, &weeks); err != nil {
		return nil, fmt.Errorf("failed to parse %s in %s: %w", recordsKey, s.path, err)
	}
	for week, list := range weeks {
		records := make([]wash.Record, 0, len(list))
		for _, jr := range list {
			rec, err := s.fromFile(week, jr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse record %s in %s: %w", jr.ID, s.path, err)
			}
			records = append(records, rec)
		}
		doc.Records[week] = records
	}
	return doc, nil
}

func (s *JSONFileStore) fromFile(week string, jr jsonRecord) (wash.Record, error) {
	rec := wash.Record{
		ID:             jr.ID,
		Week:           jr.Week,
		Depot:          jr.Depot,
		SupervisorID:   jr.SupervisorID,
		SupervisorName: jr.SupervisorName,
		UnitID:         jr.UnitID,
		Segment:        jr.Segment,
		Photos:         toSlots(jr.Photos),
		PhotoHashes:    toSlots(jr.PhotoHashes),
		CreatedBy:      jr.CreatedBy,
	}
	if rec.Week == "" {
		rec.Week = week
	}
	if rec.UnitID == "" {
		rec.UnitID = jr.UnitLabel
	}
	if s.resolver != nil {
		rec.Depot = s.resolver.DepotID(rec.Depot)
		if seg := s.resolver.SegmentID(rec.Segment); seg != "" {
			rec.Segment = seg
		}
	}
	if jr.Timestamp != "" {
		t, err := parseTimestamp(jr.Timestamp)
		if err != nil {
			return wash.Record{}, err
		}
		rec.CreatedAt = t
	}
	return rec, nil
}

func toFile(rec wash.Record) jsonRecord {
	return jsonRecord{
		ID:             rec.ID,
		Week:           rec.Week,
		Depot:          rec.Depot,
		SupervisorID:   rec.SupervisorID,
		SupervisorName: rec.SupervisorName,
		UnitID:         rec.UnitID,
		UnitLabel:      rec.UnitID,
		Segment:        rec.Segment,
		Photos:         fromSlots(rec.Photos),
		PhotoHashes:    fromSlots(rec.PhotoHashes),
		Timestamp:      rec.Timestamp(),
		CreatedBy:      rec.CreatedBy,
	}
}

func toSlots(m map[string]string) map[wash.PhotoSlot]string {
	out := make(map[wash.PhotoSlot]string, len(m))
	for name, v := range m {
		if slot, ok := wash.ParseSlot(name); ok {
			out[slot] = v
			continue
		}
		for slot, fileName := range fileSlots {
			if fileName == name {
				out[slot] = v
			}
		}
	}
	return out
}

func fromSlots(m map[wash.PhotoSlot]string) map[string]string {
	out := make(map[string]string, len(m))
	for slot, v := range m {
		if name, ok := fileSlots[slot]; ok {
			out[name] = v
			continue
		}
		out[string(slot)] = v
	}
	return out
}

// parseTimestamp reads local naive timestamps, with or without fractional seconds, or RFC 3339.
func parseTimestamp(ts string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02T15:04:05.999999999", ts, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339Nano, ts)
}

func (s *JSONFileStore) write(doc *jsonDocument) error {
	weeks := make(map[string][]jsonRecord, len(doc.Records))
	for week, records := range doc.Records {
		list := make([]jsonRecord, 0, len(records))
		for _, r := range records {
			list = append(list, toFile(r))
		}
		weeks[week] = list
	}
	out := make(map[string]any, len(doc.extra)+1)
	for k, v := range doc.extra {
		out[k] = v
	}
	out[recordsKey] = weeks

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode records: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(s.path), err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write records: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write records: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONFileStore) Upsert(ctx context.Context, rec *wash.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	kept := []wash.Record{}
	for _, r := range doc.Records[rec.Week] {
		if !sameKey(r, *rec) {
			kept = append(kept, r)
		}
	}
	doc.Records[rec.Week] = append(kept, cloneRecord(*rec))
	return s.write(doc)
}

func (s *JSONFileStore) ListByWeek(ctx context.Context, week string) ([]wash.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	out := append([]wash.Record{}, doc.Records[week]...)
	wash.SortNewestFirst(out)
	return out, nil
}

func (s *JSONFileStore) Get(ctx context.Context, id string) (*wash.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	for _, records := range doc.Records {
		for _, r := range records {
			if r.ID == id {
				return &r, nil
			}
		}
	}
	return nil, fmt.Errorf("record %s: %w", id, wash.ErrNotFound)
}

func (s *JSONFileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return err
	}
	for week, records := range doc.Records {
		for i, r := range records {
			if r.ID == id {
				doc.Records[week] = append(records[:i:i], records[i+1:]...)
				return s.write(doc)
			}
		}
	}
	return nil
}

func (s *JSONFileStore) DeleteWeek(ctx context.Context, week string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return 0, err
	}
	n := len(doc.Records[week])
	if n == 0 {
		return 0, nil
	}
	delete(doc.Records, week)
	return n, s.write(doc)
}

func (s *JSONFileStore) PhotoHashes(ctx context.Context) ([]map[wash.PhotoSlot]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read()
	if err != nil {
		return nil, err
	}
	var out []map[wash.PhotoSlot]string
	for _, records := range doc.Records {
		for _, r := range records {
			out = append(out, maps.Clone(r.PhotoHashes))
		}
	}
	return out, nil
}
