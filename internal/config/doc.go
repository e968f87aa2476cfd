// Package config loads application configuration from an optional YAML file
// overlaid with RETAIL_-prefixed environment variables, and resolves the
// file-system paths the dashboard works with.
package config
