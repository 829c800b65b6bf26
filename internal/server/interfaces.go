package server

// Server runs the Sortr transports until the process is told to stop.
type Server interface {
	// RunServer blocks until SIGINT/SIGTERM/SIGQUIT, then shuts down.
	RunServer()

	// Shutdown drains in-flight requests and stops the background workers.
	Shutdown()
}
