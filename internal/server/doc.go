// Package server runs the Sortr REST API and the gRPC health endpoint side by
// side, together with the background workers. A termination signal drains
// both listeners before the workers are stopped.
package server
