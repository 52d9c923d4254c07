package reconcile

// Adapter reads keys and segments from concrete unit and record types.
type Adapter[U, R any] interface {
	// UnitKey returns the identity of a catalog unit.
	UnitKey(u U) Key
	// UnitSegment returns the segment of a catalog unit.
	UnitSegment(u U) string
	// RecordKey returns the unit identity a record refers to.
	RecordKey(r R) Key
	// RecordSegment returns the segment stored on a record.
	RecordSegment(r R) string
}
