package catalog

// Config holds configuration for the unit catalog.
type Config struct {
	// Sources is the ordered list of unit list locations. Entries prefixed with s3://
	// are object names in the storage bucket; anything else is a local file path.
	// Later sources win for units appearing in more than one.
	Sources []string `mapstructure:"sources" default:"data/unidades-hinos-cartago.json,data/unidades-la-cruz.json,data/unidades-alajuela.json,data/unidades-todo.json,data/unidades-transportadora.json"`
	// Directory is an optional YAML file with depots, segments, supervisors and assignments.
	Directory string `mapstructure:"directory" default:""`
}
