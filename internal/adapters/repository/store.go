// Package repository persists the tracked identifier list under one key as a
// JSON array of strings.
package repository

import "context"

// Store provides durable load/save of the tracked identifiers.
type Store interface {
	// Load returns the persisted list, or an empty list when nothing has been
	// saved yet.
	Load(ctx context.Context) ([]string, error)

	// Save replaces the persisted list.
	Save(ctx context.Context, ids []string) error

	// Delete removes the persisted list entirely.
	Delete(ctx context.Context) error
}
