// This package contains the main [Policy] interface and several implementations.
package retry

import (
	"context"
)

// Policy decides whether an operation that failed with a transient error, such as a busy
// SQLite database, should be attempted again.
//
// Implementations are not considered thread-safe. Each operation derives its own instance.
type Policy interface {
	// Attempt checks if another attempt should be made.
	//
	// The first call always returns true without waiting. Later calls block for the interval
	// dictated by the policy and return true, or return false if no attempts remain or the
	// context is cancelled.
	Attempt(ctx context.Context) bool
	// Derive returns a new Policy instance with the same settings for a single operation.
	//
	// The returned policy maintains its own internal state for tracking attempts.
	Derive() Policy
}
