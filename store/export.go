package store

import (
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"kanban-api/domain"
)

// ExportFileName is the download name the HTTP layer serves exports under.
const ExportFileName = "kanban-board-data.json"

// Export returns the persisted board document verbatim. When the slot is
// empty (or absent) the current in-memory state is serialized instead.
func (s *TaskStore) Export(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slot != nil {
		data, err := s.slot.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load board state: %w", err)
		}
		if len(data) > 0 {
			return data, nil
		}
	}
	data, err := sonic.Marshal(&s.state)
	if err != nil {
		return nil, fmt.Errorf("encode board state: %w", err)
	}
	return data, nil
}

// Import replaces the board with the given document. The raw bytes must
// parse as a board document; on failure the error is returned and nothing
// changes. On success the raw document is written to the slot as-is and the
// in-memory state reloaded from it.
func (s *TaskStore) Import(ctx context.Context, raw []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var loaded domain.BoardState
	if err := sonic.Unmarshal(raw, &loaded); err != nil {
		return fmt.Errorf("invalid board document: %w", err)
	}
	if s.slot != nil {
		if err := s.slot.Save(ctx, raw); err != nil {
			return fmt.Errorf("persist imported state: %w", err)
		}
	}
	s.state = loaded
	return nil
}

// Reset clears the slot and the in-memory state, then reseeds the board the
// way a first launch would.
func (s *TaskStore) Reset(ctx context.Context) error {
	s.mu.Lock()
	if s.slot != nil {
		if err := s.slot.Clear(ctx); err != nil {
			s.mu.Unlock()
			return fmt.Errorf("clear board state: %w", err)
		}
	}
	s.state = domain.NewBoardState()
	s.mu.Unlock()

	s.Initialize(ctx)
	return nil
}
