// Package analysis derives actor screen time from movie frame dumps.
//
// A run detects faces on every frame, scans the detections until one is
// identified as the requested actor, and classifies that face against
// each emotion model. Screen time and per-emotion durations are the
// movie duration scaled by the matching frame fraction, rounded to two
// decimal places.
package analysis
