// Package moderation scores review and news text with the three hate
// classifiers and maps scores onto the content state machine (draft,
// in_review, published, forbidden, deleted).
//
// The engine is pure: it returns the computed state, score, and whether the
// transition requires a strike. Persisting the outcome and issuing strikes
// belong to the store and strikes packages.
package moderation
