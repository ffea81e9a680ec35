// Package seq provides a growable, indexable sequence with checked indices.
//
// Insert and RemoveAt never edit the visible backing array in place: they
// build a new one and swap it in, so a slice returned earlier by Items keeps
// describing the sequence as it was.
package seq

import (
	"errors"
	"fmt"
	"iter"
)

// ErrIndexOutOfRange is matched by every *IndexError.
var ErrIndexOutOfRange = errors.New("index out of range")

// IndexError reports an index outside the valid range for Op.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("seq: %s: index %d out of range [0:%d]", e.Op, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }

// Seq is an ordered sequence of T. The zero value is empty and ready to use.
type Seq[T any] struct {
	items []T
}

// New returns a sequence holding a copy of items.
func New[T any](items ...T) *Seq[T] {
	s := &Seq[T]{}
	if len(items) > 0 {
		s.items = append([]T(nil), items...)
	}
	return s
}

// Len returns the number of items.
func (s *Seq[T]) Len() int { return len(s.items) }

// At returns the item at i.
func (s *Seq[T]) At(i int) (T, error) {
	if i < 0 || i >= len(s.items) {
		var zero T
		return zero, &IndexError{Op: "at", Index: i, Len: len(s.items)}
	}
	return s.items[i], nil
}

// Set replaces the item at i.
func (s *Seq[T]) Set(i int, v T) error {
	if i < 0 || i >= len(s.items) {
		return &IndexError{Op: "set", Index: i, Len: len(s.items)}
	}
	s.items[i] = v
	return nil
}

// Append adds v after the last item.
func (s *Seq[T]) Append(v T) {
	next := make([]T, len(s.items)+1)
	copy(next, s.items)
	next[len(s.items)] = v
	s.items = next
}

// Insert places v at index i, shifting later items up. i may equal Len.
func (s *Seq[T]) Insert(i int, v T) error {
	if i < 0 || i > len(s.items) {
		return &IndexError{Op: "insert", Index: i, Len: len(s.items)}
	}
	next := make([]T, len(s.items)+1)
	copy(next, s.items[:i])
	next[i] = v
	copy(next[i+1:], s.items[i:])
	s.items = next
	return nil
}

// RemoveAt deletes the item at i. Removing from an empty sequence is a no-op.
func (s *Seq[T]) RemoveAt(i int) error {
	if len(s.items) == 0 {
		return nil
	}
	if i < 0 || i >= len(s.items) {
		return &IndexError{Op: "remove", Index: i, Len: len(s.items)}
	}
	next := make([]T, len(s.items)-1)
	copy(next, s.items[:i])
	copy(next[i:], s.items[i+1:])
	s.items = next
	return nil
}

// IndexFunc returns the first index whose item satisfies f, or -1.
func (s *Seq[T]) IndexFunc(f func(T) bool) int {
	for i, v := range s.items {
		if f(v) {
			return i
		}
	}
	return -1
}

// Items returns a copy of the items.
func (s *Seq[T]) Items() []T {
	return append([]T(nil), s.items...)
}

// All iterates over index, item pairs in order.
func (s *Seq[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, v := range s.items {
			if !yield(i, v) {
				return
			}
		}
	}
}
