// Package api provides an HTTP API server and browser chat surface for the
// question-answering engine.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8081")
	ListenAddr string
}
