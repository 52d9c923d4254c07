package catalog

import (
	"context"
	"encoding/json"
	"strings"

	"fleetwash/core/utils"
	"fleetwash/feature/directory"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Unit is a washable vehicle. Identity is (ID, Depot).
type Unit struct {
	ID      string `json:"id"`
	Depot   string `json:"depot"`
	Segment string `json:"segment"`
	Type    string `json:"type"`
}

// Key identifies a unit within the whole fleet.
type Key struct {
	UnitID string
	Depot  string
}

// Key returns the identity of the unit.
func (u Unit) Key() Key { return Key{UnitID: u.ID, Depot: u.Depot} }

// Roster is the merged catalog.
type Roster struct {
	// Units in first-seen order; a unit listed by several sources carries the last source's fields.
	Units []Unit `json:"units"`
	// Skipped lists the sources that failed to load.
	Skipped []*SourceLoadError `json:"-"`
}

// Find returns the unit with the id in the depot.
func (r *Roster) Find(unitID, depot string) (Unit, bool) {
	for _, u := range r.Units {
		if u.ID == unitID && u.Depot == depot {
			return u, true
		}
	}
	return Unit{}, false
}

// Contains reports whether the roster has the unit in the depot.
func (r *Roster) Contains(unitID, depot string) bool {
	_, ok := r.Find(unitID, depot)
	return ok
}

// Filter returns the units matching depot and segment. Empty values match everything.
func (r *Roster) Filter(depot, segment string) []Unit {
	out := []Unit{}
	for _, u := range r.Units {
		if depot != "" && u.Depot != depot {
			continue
		}
		if segment != "" && u.Segment != segment {
			continue
		}
		out = append(out, u)
	}
	return out
}

// Stats counts units per depot and per segment.
type Stats struct {
	Total     int            `json:"total"`
	ByDepot   map[string]int `json:"by_depot"`
	BySegment map[string]int `json:"by_segment"`
	Skipped   []string       `json:"skipped_sources"`
}

// Stats summarises the roster.
func (r *Roster) Stats() Stats {
	s := Stats{
		Total:     len(r.Units),
		ByDepot:   make(map[string]int),
		BySegment: make(map[string]int),
		Skipped:   []string{},
	}
	for _, u := range r.Units {
		s.ByDepot[u.Depot]++
		s.BySegment[u.Segment]++
	}
	for _, sk := range r.Skipped {
		s.Skipped = append(s.Skipped, sk.Source)
	}
	return s
}

// Catalog loads and merges the configured unit sources.
type Catalog struct {
	sources []Source
	dir     *directory.Directory
	logger  *zap.Logger
	group   singleflight.Group
}

// New creates a catalog over the ordered sources.
func New(sources []Source, dir *directory.Directory, logger *zap.Logger) *Catalog {
	return &Catalog{sources: sources, dir: dir, logger: logger}
}

// Directory returns the organisation table used to resolve depots and segments.
func (c *Catalog) Directory() *directory.Directory {
	return c.dir
}

// Load reads every source and merges the units. Sources are re-read on every call;
// concurrent calls share one read. The shared read ignores cancellation of the caller
// that started it; each caller stops waiting when its own ctx is done.
func (c *Catalog) Load(ctx context.Context) (*Roster, error) {
	ch := c.group.DoChan("roster", func() (any, error) {
		return c.load(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Roster), nil
	}
}

func (c *Catalog) load(ctx context.Context) (*Roster, error) {
	batches := make([][]rawUnit, len(c.sources))
	failures := make([]*SourceLoadError, len(c.sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range c.sources {
		g.Go(func() error {
			units, err := readSource(gctx, src)
			if err != nil {
				failures[i] = &SourceLoadError{Source: src.Name(), Err: err}
				return nil
			}
			batches[i] = units
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	roster := &Roster{Units: []Unit{}}
	index := make(map[Key]int)
	for i, batch := range batches {
		if failures[i] != nil {
			c.logger.Warn("Skipping catalog source", zap.String("source", failures[i].Source), zap.Error(failures[i].Err))
			roster.Skipped = append(roster.Skipped, failures[i])
			continue
		}
		for _, raw := range batch {
			u, ok := c.resolve(raw)
			if !ok {
				continue
			}
			if pos, seen := index[u.Key()]; seen {
				roster.Units[pos] = u
				continue
			}
			index[u.Key()] = len(roster.Units)
			roster.Units = append(roster.Units, u)
		}
	}

	c.logger.Debug("Catalog loaded", zap.Int("units", len(roster.Units)), zap.Int("skipped_sources", len(roster.Skipped)))
	return roster, nil
}

// rawUnit is one descriptor as found in a source: {id|placa, cedis, segmento?, tipo?, negocio?}.
type rawUnit map[string]any

func (r rawUnit) str(key string) string {
	return strings.TrimSpace(utils.ToString(r[key]))
}

func readSource(ctx context.Context, src Source) ([]rawUnit, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var units []rawUnit
	if err := json.NewDecoder(rc).Decode(&units); err != nil {
		return nil, err
	}
	return units, nil
}

func (c *Catalog) resolve(raw rawUnit) (Unit, bool) {
	id := raw.str("id")
	if id == "" {
		id = raw.str("placa")
	}
	if id == "" {
		return Unit{}, false
	}

	depot := c.dir.DepotID(raw.str("cedis"))
	if depot == "" {
		return Unit{}, false
	}

	segment := c.dir.SegmentID(raw.str("segmento"))
	if segment == "" {
		if raw.str("segmento") != "" {
			segment = directory.SegmentOther
		} else {
			segment = SegmentFromBusinessLine(raw.str("negocio"))
		}
	}

	unitType := raw.str("tipo")
	if unitType == "" {
		unitType = c.dir.SegmentType(segment)
	}

	return Unit{ID: id, Depot: depot, Segment: segment, Type: unitType}, true
}

// SegmentFromBusinessLine derives a segment from a free-text business line label.
func SegmentFromBusinessLine(label string) string {
	l := utils.Normalize(label)
	switch {
	case strings.Contains(l, "granel"):
		return directory.SegmentBulk
	case strings.Contains(l, "cilindro"), strings.Contains(l, "hino"):
		return directory.SegmentBoxTruck
	default:
		return directory.SegmentOther
	}
}
