package users

// Config holds configuration for the user directory.
type Config struct {
	// Path is the JSON users file.
	Path string `mapstructure:"path" default:"data/users.json"`
}
