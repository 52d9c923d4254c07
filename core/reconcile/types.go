package reconcile

// Key identifies a unit within the fleet.
type Key struct {
	UnitID string `json:"unit"`
	Depot  string `json:"depot"`
}

// Filter narrows reconciliation to one depot and/or one segment. Empty fields match everything.
type Filter struct {
	Depot   string
	Segment string
}

// Match pairs a washed unit with its record.
type Match[U, R any] struct {
	Unit   U `json:"unit"`
	Record R `json:"record"`
}

// Result is the outcome of reconciling one week.
type Result[U, R any] struct {
	// Washed holds catalog units with a record, in catalog order.
	Washed []Match[U, R] `json:"washed"`
	// NotWashed holds catalog units without a record, in catalog order.
	NotWashed []U `json:"not_washed"`
	// Orphans holds records whose unit is not in the catalog, in record order.
	Orphans []R `json:"orphans"`
	// WashedKeys is the set of keys having a record, orphans included.
	WashedKeys map[Key]struct{} `json:"-"`
	// Summary provides aggregate counts.
	Summary Summary `json:"summary"`
}

// Summary provides aggregate counts for a reconciliation.
type Summary struct {
	// Total is the number of catalog units matching the filter.
	Total int `json:"total"`
	// Washed counts catalog units with a record.
	Washed int `json:"washed"`
	// NotWashed counts catalog units without a record.
	NotWashed int `json:"not_washed"`
	// Orphans counts records outside the catalog.
	Orphans int `json:"orphans"`
}

// Percent returns the washed share of the catalog rounded to one decimal.
func (s Summary) Percent() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Washed*1000/s.Total) / 10
}

func (f Filter) matches(depot, segment string) bool {
	if f.Depot != "" && depot != f.Depot {
		return false
	}
	if f.Segment != "" && segment != f.Segment {
		return false
	}
	return true
}
