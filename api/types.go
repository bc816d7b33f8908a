package api

import (
	"context"

	"kanban-api/domain"
)

// Store is the full operation surface handlers may use. Nothing else reaches
// the board state.
type Store interface {
	State() domain.BoardState
	VisibleTasks() []domain.Task
	ColumnTasks(status domain.Status) []domain.Task

	AddTask(ctx context.Context, draft domain.TaskDraft) string
	UpdateTask(ctx context.Context, id string, patch domain.TaskPatch)
	DeleteTask(ctx context.Context, id string)
	MoveTask(ctx context.Context, id string, destination domain.Status)

	AddTag(ctx context.Context, name, color string) string
	DeleteTag(ctx context.Context, id string)
	AddUser(ctx context.Context, name, avatar string) string

	SetSearchTerm(ctx context.Context, term string)
	SetFilters(ctx context.Context, patch domain.FilterPatch)
	ClearFilters(ctx context.Context)
	UpdateBoardConfig(ctx context.Context, patch domain.BoardConfigPatch)

	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, raw []byte) error
	Reset(ctx context.Context) error
}

// Authenticator is implemented by types able to extract user IDs from
// Authorization headers.
type Authenticator interface {
	UserIDFromAuthHeader(string) (string, error)
}
