// Package reconcile compares the unit catalog against one week's wash records.
//
// Reconciliation is a pure set difference keyed by (unit id, depot): a catalog unit with
// a record is washed, a catalog unit without one is not washed, and a record whose unit is
// missing from the catalog is an orphan. Nothing is cached; callers pass fresh catalog and
// record snapshots on every call.
//
// The engine knows nothing about the concrete unit and record types. An Adapter extracts
// keys and segments from them:
//
//	result := reconcile.Run(report.Adapter{}, roster.Units, records, reconcile.Filter{Depot: "cartago"})
//	for _, u := range result.NotWashed {
//	    fmt.Println(u.ID)
//	}
package reconcile
