package catalog

import (
	"slices"

	"fleetwash/feature/directory"
)

// VisibleUnits returns the units a supervisor may submit washes for.
//
// Units assigned to the supervisor take precedence. Without assignments the pool is every
// unit of the supervisor's depot, restricted to the supervisor's own segment when set.
// segment further narrows the pool when not empty.
func VisibleUnits(r *Roster, dir *directory.Directory, supervisorID, segment string) []Unit {
	sup, ok := dir.Supervisor(supervisorID)
	if !ok {
		return []Unit{}
	}

	assigned := dir.AssignedUnits(supervisorID)
	pool := []Unit{}
	for _, u := range r.Units {
		if u.Depot != sup.Depot {
			continue
		}
		if len(assigned) > 0 {
			if !slices.Contains(assigned, u.ID) {
				continue
			}
		} else if sup.Segment != "" && u.Segment != sup.Segment {
			continue
		}
		if segment != "" && u.Segment != segment {
			continue
		}
		pool = append(pool, u)
	}
	return pool
}
