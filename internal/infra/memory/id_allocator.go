package memory

import (
	"context"
	"sync/atomic"
)

// IDAllocator is an in-process visitor ID counter. IDs restart at 1 with the process.
type IDAllocator struct {
	last atomic.Int64
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{}
}

func (a *IDAllocator) Next(_ context.Context) (int64, error) {
	return a.last.Add(1), nil
}
