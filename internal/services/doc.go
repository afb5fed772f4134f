// Package services defines the shared error taxonomy for pipeline
// components. Sentinel errors classify failures (missing artifacts, frame
// source problems, invariant violations) so callers can route them without
// string matching.
package services
