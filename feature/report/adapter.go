package report

import (
	"fleetwash/core/reconcile"
	"fleetwash/feature/catalog"
	"fleetwash/feature/wash"
)

// Adapter lets the reconcile engine read catalog units and wash records.
type Adapter struct{}

var _ reconcile.Adapter[catalog.Unit, wash.Record] = Adapter{}

func (Adapter) UnitKey(u catalog.Unit) reconcile.Key {
	return reconcile.Key{UnitID: u.ID, Depot: u.Depot}
}

func (Adapter) UnitSegment(u catalog.Unit) string { return u.Segment }

func (Adapter) RecordKey(r wash.Record) reconcile.Key {
	return reconcile.Key{UnitID: r.UnitID, Depot: r.Depot}
}

func (Adapter) RecordSegment(r wash.Record) string { return r.Segment }
