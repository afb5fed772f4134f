// Package store persists moderation and analysis state in SQLite.
//
// One database file holds user profiles, moderated content, strikes,
// performances, and derived emotion analyses. The schema is created on
// first open and versioned through a schema_version table; a version
// mismatch refuses to open rather than attempting a migration.
//
// Strike window columns are stored as fixed-width RFC 3339 text so the
// active-window range predicates compare chronologically in SQL. All
// other timestamps keep nanosecond precision.
package store
