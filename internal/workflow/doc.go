// Package workflow drives the frame analysis queue.
//
// A manager polls the store for pending performances, claims them one at
// a time, and runs the analysis pipeline through a bounded worker pool.
// Orphaned running rows are requeued at startup, so an unclean shutdown
// costs a re-run rather than a stuck queue.
package workflow
