// Package storage persists the serialized board document in a single named
// slot. The document is opaque at this layer; schema concerns live with the
// store.
package storage

import "context"

// DefaultKey names the slot the board document is stored under. Kept stable
// so exported documents stay interchangeable across deployments.
const DefaultKey = "kanban-task-storage"

// Slot reads and writes one opaque document. Load returns nil data when the
// slot is empty.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}
