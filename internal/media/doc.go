// Package media handles frame image decoding and face crop preparation for
// the classifier models.
package media
