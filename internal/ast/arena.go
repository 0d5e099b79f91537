package ast

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena stores nodes of one kind. Slot 0 is a placeholder, so the zero
// index always reads as absent.
type Arena[T any] struct {
	items []T
}

func NewArena[T any](capHint uint) *Arena[T] {
	return &Arena[T]{items: make([]T, 1, capHint+1)}
}

// Allocate appends value and returns its index, starting at 1.
func (a *Arena[T]) Allocate(value T) uint32 {
	idx, err := safecast.Conv[uint32](len(a.items))
	if err != nil {
		panic(fmt.Errorf("arena overflow: %w", err))
	}
	a.items = append(a.items, value)
	return idx
}

// Get returns nil for 0 and for indices never allocated.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) >= len(a.items) {
		return nil
	}
	return &a.items[index]
}

func (a *Arena[T]) Len() uint32 {
	return uint32(len(a.items) - 1) // #nosec G115 -- Allocate bounds the length
}
