package provider

import "context"

// Provider is the high-level interface for obtaining the winning slice
// index. It represents an abstract result source, regardless of where
// the result comes from (backend call, local random draw, fixed value
// for demos). The engine only consumes the resolved integer.
type Provider interface {
	// Result returns the winning slice index in [0, sliceCount).
	// Errors propagate unmodified to the caller; the engine performs
	// no retry.
	Result(ctx context.Context) (int, error)
}
