// Package store holds the authoritative in-memory board state and serializes
// every mutation behind a single mutex. Each successful mutation is followed
// by a full-state write to the persistence slot; slot failures are logged and
// never surfaced to callers.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"kanban-api/domain"
)

// Slot is the single named slot the serialized board document lives in.
// Load returns nil data when the slot is empty.
type Slot interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
}

// TaskStore owns all board state. It assumes exactly one logical writer;
// concurrent callers are serialized by the internal mutex.
type TaskStore struct {
	mu     sync.Mutex
	state  domain.BoardState
	slot   Slot
	logger *log.Logger

	clock func() time.Time
	newID func() string
}

// New creates a store backed by the given slot. The slot may be nil, in
// which case state is purely in-memory.
func New(slot Slot, logger *log.Logger) *TaskStore {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &TaskStore{
		state:  domain.NewBoardState(),
		slot:   slot,
		logger: logger,
		clock:  time.Now,
		newID:  uuid.NewString,
	}
}

// Initialize loads persisted state from the slot and, when the task
// collection is still empty afterwards, populates the board with the seed
// dataset. Safe to call more than once; later calls are no-ops.
func (s *TaskStore) Initialize(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.slot != nil {
		data, err := s.slot.Load(ctx)
		switch {
		case err != nil:
			s.logger.WithError(err).Error("load board state")
		case len(data) > 0:
			var loaded domain.BoardState
			if err := sonic.Unmarshal(data, &loaded); err != nil {
				s.logger.WithError(err).Error("decode persisted board state")
			} else {
				s.state = loaded
			}
		}
	}

	if len(s.state.Tasks) > 0 {
		return
	}
	now := s.clock()
	s.state.Tasks = domain.DefaultTasks(now)
	s.state.Tags = domain.DefaultTags()
	s.state.Users = domain.DefaultUsers()
	s.logger.WithField("tasks", len(s.state.Tasks)).Info("board seeded with sample data")
	s.persist(ctx)
}

// State returns a deep-copy snapshot of the whole board.
func (s *TaskStore) State() domain.BoardState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// VisibleTasks returns the tasks passing the current search term and filter
// set, in insertion order.
func (s *TaskStore) VisibleTasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := domain.FilterTasks(s.state.Tasks, s.state.SearchTerm, s.state.Filters)
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}

// ColumnTasks returns the visible tasks of one column in display order.
func (s *TaskStore) ColumnTasks(status domain.Status) []domain.Task {
	visible := s.VisibleTasks()
	column := visible[:0]
	for _, t := range visible {
		if t.Status == status {
			column = append(column, t)
		}
	}
	domain.SortColumn(column)
	return column
}

// AddTask creates a task from the draft and returns its id. The task's
// history starts with a single entry carrying the draft status.
func (s *TaskStore) AddTask(ctx context.Context, draft domain.TaskDraft) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	now := s.clock()
	tags := draft.Tags
	if tags == nil {
		tags = []string{}
	}
	task := domain.Task{
		ID:          id,
		Title:       draft.Title,
		Description: draft.Description,
		Status:      draft.Status,
		Priority:    draft.Priority,
		CreatedAt:   now,
		Deadline:    draft.Deadline,
		AssigneeID:  draft.AssigneeID,
		Tags:        tags,
		History:     []domain.HistoryEntry{{Timestamp: now, Status: draft.Status}},
	}
	s.state.Tasks = append(s.state.Tasks, task)
	s.appendActivity(domain.TaskActivity{
		TaskID:    id,
		Type:      domain.ActivityCreate,
		Timestamp: now,
		UserID:    draft.AssigneeID,
		Message:   fmt.Sprintf("Task %q was created", draft.Title),
	})
	s.persist(ctx)
	return id
}

// UpdateTask merges the patch into the task with the given id. Unknown ids
// are a silent no-op. A status change appends a history entry and records a
// status-change activity; any other change records a plain update activity.
func (s *TaskStore) UpdateTask(ctx context.Context, id string, patch domain.TaskPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.state.TaskIndex(id)
	if idx < 0 {
		return
	}
	task := &s.state.Tasks[idx]
	now := s.clock()
	// Activity records reference the task as it was before the patch.
	oldStatus := task.Status
	oldTitle := task.Title
	oldAssignee := task.AssigneeID

	if patch.Title != nil {
		task.Title = *patch.Title
	}
	if patch.Description != nil {
		task.Description = *patch.Description
	}
	if patch.Priority != nil {
		task.Priority = *patch.Priority
	}
	if patch.Deadline != nil {
		if patch.Deadline.IsZero() {
			task.Deadline = nil
		} else {
			d := *patch.Deadline
			task.Deadline = &d
		}
	}
	if patch.AssigneeID != nil {
		task.AssigneeID = *patch.AssigneeID
	}
	if patch.Tags != nil {
		task.Tags = append([]string(nil), patch.Tags...)
	}
	if patch.Status != nil {
		task.Status = *patch.Status
	}

	if patch.Status != nil && *patch.Status != oldStatus {
		task.History = append(task.History, domain.HistoryEntry{Timestamp: now, Status: task.Status})
		s.appendActivity(domain.TaskActivity{
			TaskID:    id,
			Type:      domain.ActivityStatusChange,
			Timestamp: now,
			UserID:    oldAssignee,
			Message:   fmt.Sprintf("Task %q moved from %s to %s", oldTitle, oldStatus, task.Status),
			OldValue:  string(oldStatus),
			NewValue:  string(task.Status),
		})
	} else {
		s.appendActivity(domain.TaskActivity{
			TaskID:    id,
			Type:      domain.ActivityUpdate,
			Timestamp: now,
			UserID:    oldAssignee,
			Message:   fmt.Sprintf("Task %q was updated", oldTitle),
		})
	}
	s.persist(ctx)
}

// DeleteTask removes the task with the given id. Unknown ids are a silent
// no-op. Deletion is irreversible.
func (s *TaskStore) DeleteTask(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.state.TaskIndex(id)
	if idx < 0 {
		return
	}
	task := s.state.Tasks[idx]
	s.state.Tasks = append(s.state.Tasks[:idx], s.state.Tasks[idx+1:]...)
	s.appendActivity(domain.TaskActivity{
		TaskID:    id,
		Type:      domain.ActivityDelete,
		Timestamp: s.clock(),
		UserID:    task.AssigneeID,
		Message:   fmt.Sprintf("Task %q was deleted", task.Title),
	})
	s.persist(ctx)
}

// MoveTask transitions a task to the destination status. It is the
// drag-and-drop entry point and shares UpdateTask's behavior.
func (s *TaskStore) MoveTask(ctx context.Context, id string, destination domain.Status) {
	s.UpdateTask(ctx, id, domain.TaskPatch{Status: &destination})
}

// AddTag creates a tag and returns its id. Names and colors are not checked
// for uniqueness.
func (s *TaskStore) AddTag(ctx context.Context, name, color string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	s.state.Tags = append(s.state.Tags, domain.Tag{ID: id, Name: name, Color: color})
	s.persist(ctx)
	return id
}

// DeleteTag removes the tag and scrubs its id from every task's tag list.
// Unknown ids only run the (no-op) scrub.
func (s *TaskStore) DeleteTag(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags := s.state.Tags[:0]
	for _, tag := range s.state.Tags {
		if tag.ID != id {
			tags = append(tags, tag)
		}
	}
	s.state.Tags = tags
	for i := range s.state.Tasks {
		task := &s.state.Tasks[i]
		kept := task.Tags[:0]
		for _, tagID := range task.Tags {
			if tagID != id {
				kept = append(kept, tagID)
			}
		}
		task.Tags = kept
	}
	s.persist(ctx)
}

// AddUser creates a user and returns its id. Users cannot be deleted; the
// board keeps assignee references as weak links with no cascade.
func (s *TaskStore) AddUser(ctx context.Context, name, avatar string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.newID()
	s.state.Users = append(s.state.Users, domain.User{ID: id, Name: name, Avatar: avatar})
	s.persist(ctx)
	return id
}

// SetSearchTerm replaces the current search term.
func (s *TaskStore) SetSearchTerm(ctx context.Context, term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SearchTerm = term
	s.persist(ctx)
}

// SetFilters merges the patch into the filter set, one dimension at a time.
func (s *TaskStore) SetFilters(ctx context.Context, patch domain.FilterPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Assignee != nil {
		s.state.Filters.Assignee = *patch.Assignee
	}
	if patch.Priority != nil {
		s.state.Filters.Priority = append([]domain.Priority(nil), (*patch.Priority)...)
	}
	if patch.DateRange != nil {
		if patch.DateRange.From == nil && patch.DateRange.To == nil {
			s.state.Filters.DateRange = nil
		} else {
			dr := *patch.DateRange
			s.state.Filters.DateRange = &dr
		}
	}
	if patch.Tags != nil {
		s.state.Filters.Tags = append([]string(nil), (*patch.Tags)...)
	}
	s.persist(ctx)
}

// ClearFilters deactivates all four filter dimensions.
func (s *TaskStore) ClearFilters(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters = domain.Filters{}
	s.persist(ctx)
}

// UpdateBoardConfig merges the patch into the board config. A patch that
// would leave the board without columns is ignored: at least one column must
// always exist.
func (s *TaskStore) UpdateBoardConfig(ctx context.Context, patch domain.BoardConfigPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.Columns == nil {
		return
	}
	if len(patch.Columns) == 0 {
		s.logger.Warn("board config update dropped: column list may not be empty")
		return
	}
	s.state.BoardConfig.Columns = append([]domain.Column(nil), patch.Columns...)
	s.persist(ctx)
}

func (s *TaskStore) appendActivity(a domain.TaskActivity) {
	a.ID = s.newID()
	s.state.Activities = append(s.state.Activities, a)
}

// persist writes the full state document to the slot. Failures are logged
// and swallowed; the in-memory state is already the source of truth.
func (s *TaskStore) persist(ctx context.Context) {
	if s.slot == nil {
		return
	}
	data, err := sonic.Marshal(&s.state)
	if err != nil {
		s.logger.WithError(err).Error("encode board state")
		return
	}
	if err := s.slot.Save(ctx, data); err != nil {
		s.logger.WithError(err).Error("persist board state")
	}
}
