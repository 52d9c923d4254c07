package directory

import (
	"fmt"
	"os"
	"slices"

	"fleetwash/core/utils"

	"gopkg.in/yaml.v3"
)

// Segment identifiers.
const (
	SegmentBulk     = "bulk"
	SegmentBoxTruck = "box-truck"
	SegmentOther    = "other"
)

// Depot is a distribution site (CEDIS).
type Depot struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Segment is a vehicle category. Aliases are alternative labels found in catalog sources.
type Segment struct {
	ID      string   `yaml:"id" json:"id"`
	Name    string   `yaml:"name" json:"name"`
	Type    string   `yaml:"type" json:"type"`
	Aliases []string `yaml:"aliases" json:"aliases,omitempty"`
}

// Supervisor belongs to one depot and optionally to one segment.
type Supervisor struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Depot   string `yaml:"depot" json:"depot"`
	Segment string `yaml:"segment" json:"segment,omitempty"`
}

// Assignment pins a unit to a supervisor.
type Assignment struct {
	SupervisorID string `yaml:"supervisor_id" json:"supervisor_id"`
	UnitID       string `yaml:"unit_id" json:"unit_id"`
}

// Directory is the static organisation table: depots, segments, supervisors and unit assignments.
type Directory struct {
	Depots      []Depot      `yaml:"depots" json:"depots"`
	Segments    []Segment    `yaml:"segments" json:"segments"`
	Supervisors []Supervisor `yaml:"supervisors" json:"supervisors"`
	Assignments []Assignment `yaml:"assignments" json:"assignments"`
}

// Load reads a directory from a YAML file. An empty path returns Default.
// Sections missing from the file fall back to the default sections.
func Load(path string) (*Directory, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}
	var d Directory
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse directory %s: %w", path, err)
	}

	def := Default()
	if len(d.Depots) == 0 {
		d.Depots = def.Depots
	}
	if len(d.Segments) == 0 {
		d.Segments = def.Segments
	}
	if len(d.Supervisors) == 0 {
		d.Supervisors = def.Supervisors
	}
	for i := range d.Supervisors {
		d.Supervisors[i].Depot = d.DepotID(d.Supervisors[i].Depot)
		d.Supervisors[i].Segment = d.SegmentID(d.Supervisors[i].Segment)
	}
	return &d, nil
}

// DepotID resolves raw to a depot id by case and diacritic insensitive match on id or name.
// Unknown values resolve to their normalized form.
func (d *Directory) DepotID(raw string) string {
	key := utils.Normalize(raw)
	for _, dep := range d.Depots {
		if utils.Normalize(dep.ID) == key || utils.Normalize(dep.Name) == key {
			return dep.ID
		}
	}
	return key
}

// DepotName returns the display name of a depot id, or the id itself.
func (d *Directory) DepotName(id string) string {
	for _, dep := range d.Depots {
		if dep.ID == id {
			return dep.Name
		}
	}
	return id
}

// SegmentID resolves raw to a segment id by match on id, name or alias. Unknown values resolve to "".
func (d *Directory) SegmentID(raw string) string {
	key := utils.Normalize(raw)
	if key == "" {
		return ""
	}
	for _, seg := range d.Segments {
		if utils.Normalize(seg.ID) == key || utils.Normalize(seg.Name) == key {
			return seg.ID
		}
		for _, alias := range seg.Aliases {
			if utils.Normalize(alias) == key {
				return seg.ID
			}
		}
	}
	return ""
}

// SegmentType returns the vehicle type label of a segment id.
func (d *Directory) SegmentType(id string) string {
	for _, seg := range d.Segments {
		if seg.ID == id {
			return seg.Type
		}
	}
	return ""
}

// Supervisor looks up a supervisor by id.
func (d *Directory) Supervisor(id string) (Supervisor, bool) {
	for _, s := range d.Supervisors {
		if s.ID == id {
			return s, true
		}
	}
	return Supervisor{}, false
}

// SupervisorsForDepot returns the supervisors of a depot.
func (d *Directory) SupervisorsForDepot(depot string) []Supervisor {
	depot = d.DepotID(depot)
	var out []Supervisor
	for _, s := range d.Supervisors {
		if s.Depot == depot {
			out = append(out, s)
		}
	}
	return out
}

// AssignedUnits returns the unit ids pinned to a supervisor.
func (d *Directory) AssignedUnits(supervisorID string) []string {
	var out []string
	for _, a := range d.Assignments {
		if a.SupervisorID == supervisorID && !slices.Contains(out, a.UnitID) {
			out = append(out, a.UnitID)
		}
	}
	return out
}

// ResolveFilter turns raw depot and segment query values into ids.
// Empty values and the segment "all" resolve to "" (no filter). Unknown segments are kept as given.
func (d *Directory) ResolveFilter(depot, segment string) (string, string) {
	if depot != "" {
		depot = d.DepotID(depot)
	}
	if segment == "all" {
		return depot, ""
	}
	if segment != "" {
		if id := d.SegmentID(segment); id != "" {
			segment = id
		}
	}
	return depot, segment
}
