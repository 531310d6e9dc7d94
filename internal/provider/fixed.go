package provider

import (
	"context"
	"fmt"

	"github.com/mlefebvre/SpinGo/internal/debug"
)

// Fixed always returns the same index. Used for demos and rigged runs.
type Fixed struct {
	index      int
	sliceCount int
}

// NewFixed creates a fixed provider. The index must be in
// [0, sliceCount).
func NewFixed(index, sliceCount int) (*Fixed, error) {
	if index < 0 || index >= sliceCount {
		return nil, fmt.Errorf("fixed result %d out of range [0, %d)", index, sliceCount)
	}
	return &Fixed{index: index, sliceCount: sliceCount}, nil
}

func (f *Fixed) Result(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	debug.Verbose("Provider: fixed result %d", f.index)
	return f.index, nil
}
