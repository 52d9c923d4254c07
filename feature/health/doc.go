// Package health reports whether the pieces fleetwash depends on are usable.
//
// Three checks run independently:
//   - database: ping, then the wash record table is compared with the gorm tags of
//     wash.Record (missing columns, loose type match)
//   - storage: the evidence bucket exists; fix=true creates it
//   - catalog: every source loads; skipped sources degrade the result
//
// A backend that is not configured (no SQL store, no object evidence) is reported as skipped.
package health
