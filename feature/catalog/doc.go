// Package catalog builds the roster of washable units from an ordered list of sources.
//
// Each source is a JSON array of descriptors {id|placa, cedis, segmento?, tipo?, negocio?}
// read from a local file or from the storage bucket. Sources are read concurrently and
// merged in configuration order keyed by (unit id, depot), so a later source overwrites
// an earlier one. Depots are resolved through the directory; a missing segment is derived
// from the business line label.
//
// A source that cannot be read or is not an array is logged and skipped. The roster is
// rebuilt on every Load; concurrent loads share one read through singleflight.
package catalog
