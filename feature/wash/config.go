package wash

// Config holds configuration for wash record persistence and evidence photos.
type Config struct {
	// Store selects the record backend (sql, json, memory).
	Store string `mapstructure:"store" default:"sql"`
	// JSONPath is the record file used by the json backend.
	JSONPath string `mapstructure:"json_path" default:"store/store.json"`
	// Evidence selects the photo backend (object, filesystem, memory).
	Evidence string `mapstructure:"evidence" default:"filesystem"`
	// EvidenceRoot is the base directory of the filesystem backend.
	EvidenceRoot string `mapstructure:"evidence_root" default:"store"`
	// EvidencePrefix is prepended to every photo key.
	EvidencePrefix string `mapstructure:"evidence_prefix" default:"evidence/"`
	// EnforceCatalog rejects submissions for units missing from the depot's catalog.
	EnforceCatalog bool `mapstructure:"enforce_catalog" default:"false"`
	// MaxPhotoMB caps the size of a single uploaded photo.
	MaxPhotoMB int `mapstructure:"max_photo_mb" default:"15"`
}

// MaxPhotoBytes returns the per-photo size limit in bytes.
func (c Config) MaxPhotoBytes() int64 {
	if c.MaxPhotoMB <= 0 {
		return 15 << 20
	}
	return int64(c.MaxPhotoMB) << 20
}
