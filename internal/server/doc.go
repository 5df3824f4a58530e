// Package server hosts the Fiber HTTP service and its middleware chain:
// panic recovery, request ids, and a structured access log. It also owns the
// shared upstream http.Client and the mapping from catalog errors to HTTP
// status codes, so route packages (internal/server/routes) only register
// handlers against the app returned by NewApp and accept explicit
// dependencies.
package server
