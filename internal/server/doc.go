// Package server runs the HTTP transport of the accounts service.
//
// It owns the listener lifecycle: startup, OS signal handling and graceful
// shutdown with a bounded drain period.
package server
