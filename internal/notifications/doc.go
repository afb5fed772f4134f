// Package notifications delivers moderation and analysis events via ntfy.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and gracefully degrades to a no-op when no topic is set.
// Per-category toggles let operators silence strike, ban, analysis, or
// error traffic independently.
//
// All callers depend only on the Service interface, so alternative
// transports slot in without touching moderation or workflow code.
package notifications
