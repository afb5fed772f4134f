// Package daemon coordinates the long-running Moviesphere process.
//
// It wires configuration, the store, the session backend, and the
// workflow manager into a single lifecycle with flock-based locking to
// prevent multiple instances. Keep orchestration logic here: moderation
// and analysis steps live in their respective packages while the daemon
// focuses on startup, shutdown, and high level coordination.
package daemon
