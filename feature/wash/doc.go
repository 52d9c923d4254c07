// Package wash implements weekly wash records and the photo submission workflow.
//
// A record proves one unit was washed in one ISO week: four photos (front, back, side,
// cab) with their SHA-256 hashes. At most one record exists per (week, depot, unit);
// resubmitting replaces the previous record through Store.Upsert.
//
// # Photo Reuse
//
// A submission is rejected when two of its photos are identical, or when any photo
// hash appears in a stored record of any week or depot. The Ledger derives the set of
// used hashes from the store on every check, so deleting a record releases its photos.
// Both checks run before anything is written.
//
// # Backends
//
// Store implementations live in wash/store (sql through gorm, a JSON file, memory) and
// Evidence implementations in wash/evidence (object storage, filesystem, memory).
package wash
