package reconcile

// Run reconciles catalog units against the records of one week.
// Every catalog unit matching the filter lands in exactly one of Washed and NotWashed.
// When several records share a key the first one wins.
func Run[U, R any](a Adapter[U, R], units []U, records []R, f Filter) Result[U, R] {
	byKey := make(map[Key]R, len(records))
	order := make([]Key, 0, len(records))
	for _, r := range records {
		key := a.RecordKey(r)
		if f.Depot != "" && key.Depot != f.Depot {
			continue
		}
		if _, seen := byKey[key]; seen {
			continue
		}
		byKey[key] = r
		order = append(order, key)
	}

	result := Result[U, R]{
		Washed:     []Match[U, R]{},
		NotWashed:  []U{},
		Orphans:    []R{},
		WashedKeys: make(map[Key]struct{}, len(byKey)),
	}
	for key := range byKey {
		result.WashedKeys[key] = struct{}{}
	}

	inCatalog := make(map[Key]struct{}, len(units))
	for _, u := range units {
		key := a.UnitKey(u)
		inCatalog[key] = struct{}{}
		if !f.matches(key.Depot, a.UnitSegment(u)) {
			continue
		}
		if r, ok := byKey[key]; ok {
			result.Washed = append(result.Washed, Match[U, R]{Unit: u, Record: r})
		} else {
			result.NotWashed = append(result.NotWashed, u)
		}
	}

	for _, key := range order {
		if _, ok := inCatalog[key]; ok {
			continue
		}
		r := byKey[key]
		if !f.matches(key.Depot, a.RecordSegment(r)) {
			continue
		}
		result.Orphans = append(result.Orphans, r)
	}

	result.Summary = Summary{
		Total:     len(result.Washed) + len(result.NotWashed),
		Washed:    len(result.Washed),
		NotWashed: len(result.NotWashed),
		Orphans:   len(result.Orphans),
	}
	return result
}

// NotWashed returns the catalog units matching the filter that have no record.
func NotWashed[U, R any](a Adapter[U, R], units []U, records []R, f Filter) []U {
	return Run(a, units, records, f).NotWashed
}
