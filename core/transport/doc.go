// Package transport provides a shared HTTP executor with bounded
// exponential-backoff retry.
//
// Network-level failures and 5xx responses are considered transient and are
// retried; 4xx responses are returned to the caller immediately as a typed
// *StatusError, because a 404 on an optional lookup (achievements for a game
// that has none) is a legitimate "no data" signal rather than an error.
//
// The client is stateless and safe to share across the store and catalog
// clients.
package transport
