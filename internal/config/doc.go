// Package config loads, normalizes, and validates Moviesphere configuration
// from TOML files, providing typed access to moderation thresholds, analysis
// tuning, and daemon settings.
package config
