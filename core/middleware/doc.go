// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: HTTP basic authentication against the user directory, an optional service
//     API key, and role guards. The authenticated Principal is stored in the context.
//   - rayid: assigns every request a RayID, stored in the context and echoed in the
//     X-Ray-ID response header for tracing.
package middleware
