// Package logging assembles the structured slog loggers used across
// Moviesphere components.
//
// It owns console/JSON handler construction, centralizes level and output
// plumbing, and provides context helpers so pipeline code tags log lines
// with performance and user identifiers consistently. Prefer these
// constructors over hand-rolled slog setup.
package logging
