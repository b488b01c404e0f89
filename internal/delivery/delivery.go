// Package delivery defines the contract shared by all transport servers.
package delivery

import "context"

// Delivery is a transport endpoint managed by the application runtime.
// Serve blocks until the server stops; shutdown is driven by lifecycle
// hooks, not by cancelling the passed context.
type Delivery interface {
	Serve(ctx context.Context) error
}
