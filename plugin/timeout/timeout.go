// Package timeout defines centralized timeout constants for the resolver surfaces.
package timeout

import "time"

const (
	// RequestTimeout bounds one HTTP resolve request, rate limit wait included.
	RequestTimeout = 5 * time.Second

	// ReadTimeout is the HTTP server read timeout.
	ReadTimeout = 15 * time.Second

	// WriteTimeout is the HTTP server write timeout.
	WriteTimeout = 30 * time.Second

	// IdleTimeout is the HTTP keep-alive idle timeout.
	IdleTimeout = 120 * time.Second

	// ShutdownTimeout is how long in-flight requests get to drain on shutdown.
	ShutdownTimeout = 10 * time.Second

	// CacheSweepInterval is the default period of the result cache sweeper.
	CacheSweepInterval = time.Minute
)
