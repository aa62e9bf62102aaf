// Package pkgmetric owns the Prometheus registry exposed on /metrics.
//
// Modules register their own collectors on the Registry instead of the global
// default registerer, which keeps tests free of duplicate-registration panics.
package pkgmetric
