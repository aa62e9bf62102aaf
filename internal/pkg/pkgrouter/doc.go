// Package pkgrouter wraps HTTP routing and common middleware used by the server.
//
// It provides a small router abstraction over httprouter plus shared concerns
// like JSON envelopes, HTML/file renderers, form redirects, error mapping,
// logging, recovery, and correlation ID propagation.
package pkgrouter
