// Package users manages the login accounts kept in a JSON users file and authenticates
// basic auth credentials against them.
package users
