package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey authenticates service clients as administrators through the X-API-Key header.
	// Empty disables key authentication.
	ApiKey string `mapstructure:"api_key" default:""`
	// Realm is the HTTP basic auth realm.
	Realm string `mapstructure:"realm" default:"fleetwash"`
	// BodyLimitMB caps request bodies (four photos per submission).
	BodyLimitMB int `mapstructure:"body_limit_mb" default:"64"`
}

// Address returns the listen address.
func (c Config) Address() string {
	return ":" + c.Port
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.BodyLimitMB <= 0 {
		return 64 * 1024 * 1024
	}
	return c.BodyLimitMB * 1024 * 1024
}
