// Package server holds configuration for the HTTP server.
//
// The config is intentionally small: the listen port and the API key used
// by the auth middleware. Everything else about the HTTP layer lives with
// the features that register their own routes.
package server
