// Package server holds the HTTP server configuration.
//
// The Config struct defines the listen port, the optional service API key, the basic
// auth realm and the request body limit. It is embedded in core/config and consumed by
// the start command.
package server
