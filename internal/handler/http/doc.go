// Package http implements the REST API of the inventory server.
//
// It wires the chi router, the middleware chain (tracing, access logging,
// compression, bearer authentication, the admin gate, auth rate limiting and
// the activity observer) and the resource handlers that decode requests,
// call the service layer and render JSON responses. Every error body has the
// shape of [models.ErrorResponse].
package http
