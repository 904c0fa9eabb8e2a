package tx

import (
	"context"
	"sync"
)

// Manager wraps transactional boundaries for multi-adapter operations.
type Manager interface {
	Within(ctx context.Context, fn func(context.Context) error) error
}

// Serial runs one fn at a time. The vault note and the session log are
// separate stores, so writers must not interleave their read-modify-write.
type Serial struct {
	mu sync.Mutex
}

func NewSerial() *Serial {
	return &Serial{}
}

func (s *Serial) Within(ctx context.Context, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(ctx)
}
