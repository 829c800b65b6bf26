// Package workers runs the periodic background jobs of the server and the
// terminal client: rate limiter sweeping, gRPC health probing and client
// cache expiry.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}

// Sweeper drops expired entries and reports how many went.
type Sweeper interface {
	Sweep() int
}

// Prober refreshes a health status.
type Prober interface {
	Probe(ctx context.Context) error
}
