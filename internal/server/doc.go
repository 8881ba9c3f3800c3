// Package server is the HTTP layer: a stdlib mux over the query
// service, JSON helpers, and middleware for request IDs, access
// logging, and panic recovery. Service errors map to status codes here
// and nowhere else.
package server
