// Package models loads and serves the classifier artifacts used by the
// moderation and frame analysis pipelines: the three text classifiers
// (toxic, offensive, hate), the three emotion classifiers, per-actor
// identity models discovered by slugified actor name, and the face
// detector artifact set.
//
// A Registry is constructed once at startup and passed to the components
// that need it; there is no global state and no reload operation.
package models
