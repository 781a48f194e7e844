// Package store defines the task store interface and its in-memory implementation.
package store

import "context"

// Store holds the ordered task list.
// Handlers never own the list directly; they receive a Store so tests
// can construct an isolated instance per test.
type Store interface {
	// Add appends text to the end of the list.
	// No validation, no size bound; empty text is a valid entry.
	Add(ctx context.Context, text string) error

	// List returns the full list in insertion order.
	List(ctx context.Context) ([]string, error)
}
