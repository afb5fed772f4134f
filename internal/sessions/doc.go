// Package sessions tracks login sessions for forced logout on ban.
package sessions
