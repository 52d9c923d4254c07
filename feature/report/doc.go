// Package report builds weekly washed / not washed reports from the catalog and the wash
// records, as JSON and as a CSV summary.
package report
