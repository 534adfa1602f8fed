// Package server holds the HTTP server configuration.
//
// While cmd/start handles the server startup, this package defines the listen
// port, the optional API key enforced by core/middleware/auth, and the graceful
// shutdown bound.
package server
