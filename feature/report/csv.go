package report

import (
	"encoding/csv"
	"io"
)

// Status values of the CSV summary.
const (
	StatusWashed    = "washed"
	StatusNotWashed = "not_washed"
)

// CSVHeader is the first line of the CSV summary.
var CSVHeader = []string{"week", "status", "depot", "segment", "unit", "supervisor", "timestamp"}

// WriteCSV writes washed rows followed by not washed units. Orphan records are listed as washed.
func WriteCSV(w io.Writer, rep *Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, rows := range [][]Row{rep.Washed, rep.Orphans} {
		for _, r := range rows {
			if err := cw.Write([]string{rep.Week, StatusWashed, r.Depot, r.Segment, r.UnitID, r.Supervisor, r.Timestamp}); err != nil {
				return err
			}
		}
	}
	for _, u := range rep.NotWashed {
		if err := cw.Write([]string{rep.Week, StatusNotWashed, u.Depot, u.Segment, u.ID, "", ""}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
