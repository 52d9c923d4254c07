package report

import (
	"context"
	"fmt"
	"sort"

	"fleetwash/core/middleware/auth"
	"fleetwash/core/reconcile"
	"fleetwash/feature/catalog"
	"fleetwash/feature/wash"

	"go.uber.org/zap"
)

// Row is one washed unit in a report.
type Row struct {
	RecordID   string `json:"record_id"`
	Depot      string `json:"depot"`
	DepotName  string `json:"depot_name"`
	Supervisor string `json:"supervisor"`
	Segment    string `json:"segment"`
	UnitID     string `json:"unit"`
	Timestamp  string `json:"timestamp"`
	CreatedBy  string `json:"created_by"`
}

// Report is the reconciliation of one week.
type Report struct {
	Week    string `json:"week"`
	Depot   string `json:"depot,omitempty"`
	Segment string `json:"segment,omitempty"`

	Washed    []Row          `json:"washed"`
	NotWashed []catalog.Unit `json:"not_washed"`
	// Orphans are records for units missing from the catalog.
	Orphans []Row `json:"orphans"`

	Summary   reconcile.Summary            `json:"summary"`
	BySegment map[string]reconcile.Summary `json:"by_segment"`
	Percent   float64                      `json:"percent"`
}

// Service builds reports.
type Service struct {
	catalog *catalog.Catalog
	store   wash.Store
	logger  *zap.Logger
}

// NewService creates a new report service.
func NewService(cat *catalog.Catalog, store wash.Store, logger *zap.Logger) *Service {
	return &Service{catalog: cat, store: store, logger: logger}
}

// Catalog returns the unit catalog.
func (s *Service) Catalog() *catalog.Catalog { return s.catalog }

// Week reconciles the catalog against the week's records. Supervisors are limited to their own depot.
func (s *Service) Week(ctx context.Context, p auth.Principal, week string, f reconcile.Filter) (*Report, error) {
	week, err := wash.ParseWeek(week)
	if err != nil {
		return nil, err
	}
	if p.IsSupervisor() {
		sup, ok := s.catalog.Directory().Supervisor(p.SupervisorID)
		if !ok {
			return nil, fmt.Errorf("supervisor %s is not in the directory: %w", p.SupervisorID, wash.ErrForbidden)
		}
		f.Depot = sup.Depot
	}

	roster, err := s.catalog.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	records, err := s.store.ListByWeek(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("failed to list records of %s: %w", week, err)
	}

	res := reconcile.Run[catalog.Unit, wash.Record](Adapter{}, roster.Units, records, f)
	dir := s.catalog.Directory()

	rep := &Report{
		Week:      week,
		Depot:     f.Depot,
		Segment:   f.Segment,
		Washed:    make([]Row, 0, len(res.Washed)),
		NotWashed: res.NotWashed,
		Orphans:   make([]Row, 0, len(res.Orphans)),
		Summary:   res.Summary,
		BySegment: make(map[string]reconcile.Summary),
		Percent:   res.Summary.Percent(),
	}
	for _, m := range res.Washed {
		row := newRow(m.Record, dir.DepotName(m.Record.Depot))
		row.Segment = m.Unit.Segment
		rep.Washed = append(rep.Washed, row)
		seg := rep.BySegment[m.Unit.Segment]
		seg.Total++
		seg.Washed++
		rep.BySegment[m.Unit.Segment] = seg
	}
	for _, u := range res.NotWashed {
		seg := rep.BySegment[u.Segment]
		seg.Total++
		seg.NotWashed++
		rep.BySegment[u.Segment] = seg
	}
	for _, r := range res.Orphans {
		rep.Orphans = append(rep.Orphans, newRow(r, dir.DepotName(r.Depot)))
	}
	sort.SliceStable(rep.Washed, func(i, j int) bool {
		if rep.Washed[i].Depot != rep.Washed[j].Depot {
			return rep.Washed[i].Depot < rep.Washed[j].Depot
		}
		return rep.Washed[i].Timestamp < rep.Washed[j].Timestamp
	})

	s.logger.Debug("Week reconciled",
		zap.String("week", week),
		zap.String("depot", f.Depot),
		zap.String("segment", f.Segment),
		zap.Int("washed", res.Summary.Washed),
		zap.Int("not_washed", res.Summary.NotWashed),
		zap.Int("orphans", res.Summary.Orphans))
	return rep, nil
}

func newRow(r wash.Record, depotName string) Row {
	return Row{
		RecordID:   r.ID,
		Depot:      r.Depot,
		DepotName:  depotName,
		Supervisor: r.SupervisorName,
		Segment:    r.Segment,
		UnitID:     r.UnitID,
		Timestamp:  r.Timestamp(),
		CreatedBy:  r.CreatedBy,
	}
}
