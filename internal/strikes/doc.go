// Package strikes enforces the repeat-offender policy.
//
// Each forbidden content item earns its author exactly one strike.
// Strikes stay active for a configured number of months; when a user's
// active count reaches the ban threshold they are banned and all of
// their sessions are revoked.
package strikes
