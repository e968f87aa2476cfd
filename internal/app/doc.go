// Package app assembles the dashboard server: configuration, logging,
// metrics, services, router and HTTP server lifecycle with graceful
// shutdown.
package app
