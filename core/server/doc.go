// Package server holds the HTTP server configuration consumed by the
// Fiber application in cmd/start.
package server
