package wash

import (
	"sort"
	"time"
)

// PhotoSlot is one of the four required photo roles.
type PhotoSlot string

const (
	SlotFront PhotoSlot = "front"
	SlotBack  PhotoSlot = "back"
	SlotSide  PhotoSlot = "side"
	SlotCab   PhotoSlot = "cab"
)

// Slots lists the required slots in display order.
var Slots = []PhotoSlot{SlotFront, SlotBack, SlotSide, SlotCab}

// ParseSlot validates a slot name.
func ParseSlot(s string) (PhotoSlot, bool) {
	for _, slot := range Slots {
		if string(slot) == s {
			return slot, true
		}
	}
	return "", false
}

// TimestampLayout renders creation times as local naive timestamps with second precision.
const TimestampLayout = "2006-01-02T15:04:05"

// Record is one wash of one unit in one week. (Week, Depot, UnitID) is unique.
type Record struct {
	ID             string               `gorm:"column:id;primaryKey;size:64" json:"id"`
	Week           string               `gorm:"column:week;size:8;not null;uniqueIndex:uq_week_depot_unit,priority:1" json:"week"`
	Depot          string               `gorm:"column:depot;size:64;not null;uniqueIndex:uq_week_depot_unit,priority:2" json:"depot"`
	UnitID         string               `gorm:"column:unit_id;size:64;not null;uniqueIndex:uq_week_depot_unit,priority:3" json:"unit_id"`
	SupervisorID   string               `gorm:"column:supervisor_id;size:64" json:"supervisor_id"`
	SupervisorName string               `gorm:"column:supervisor_name;size:128" json:"supervisor_name"`
	Segment        string               `gorm:"column:segment;size:32" json:"segment"`
	Photos         map[PhotoSlot]string `gorm:"column:photos;type:text;serializer:json" json:"photos"`
	PhotoHashes    map[PhotoSlot]string `gorm:"column:photo_hashes;type:text;serializer:json" json:"photo_hashes"`
	CreatedAt      time.Time            `gorm:"column:created_at;not null;index" json:"created_at"`
	CreatedBy      string               `gorm:"column:created_by;size:64" json:"created_by"`
}

// TableName returns the table of wash records.
func (Record) TableName() string {
	return "wash_records"
}

// Timestamp renders CreatedAt as a local naive timestamp.
func (r Record) Timestamp() string {
	return r.CreatedAt.Local().Format(TimestampLayout)
}

// View is the API representation of a record.
type View struct {
	ID             string               `json:"id"`
	Week           string               `json:"week"`
	Depot          string               `json:"depot"`
	SupervisorID   string               `json:"supervisor_id"`
	SupervisorName string               `json:"supervisor_name"`
	UnitID         string               `json:"unit_id"`
	Segment        string               `json:"segment"`
	Photos         map[PhotoSlot]string `json:"photos"`
	PhotoHashes    map[PhotoSlot]string `json:"photo_hashes"`
	Timestamp      string               `json:"timestamp"`
	CreatedBy      string               `json:"created_by"`
}

// View converts the record for API responses.
func (r Record) View() View {
	return View{
		ID:             r.ID,
		Week:           r.Week,
		Depot:          r.Depot,
		SupervisorID:   r.SupervisorID,
		SupervisorName: r.SupervisorName,
		UnitID:         r.UnitID,
		Segment:        r.Segment,
		Photos:         r.Photos,
		PhotoHashes:    r.PhotoHashes,
		Timestamp:      r.Timestamp(),
		CreatedBy:      r.CreatedBy,
	}
}

// SortNewestFirst orders records by creation time descending, then id descending.
func SortNewestFirst(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].CreatedAt.After(records[j].CreatedAt)
		}
		return records[i].ID > records[j].ID
	})
}
