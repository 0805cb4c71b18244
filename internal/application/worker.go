package application

import "context"

// Worker is a background process tied to the lifetime of its context.
// Implementations must run until the context is canceled.
type Worker interface {
	Start(ctx context.Context)
}
