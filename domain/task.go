package domain

import "time"

// Status identifies the board column a task lives in.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusReview     Status = "review"
	StatusDone       Status = "done"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

// Priority orders tasks within a column.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Rank returns the sort weight of a priority, high first. Unknown
// priorities sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	}
	return 3
}

// HistoryEntry records one status transition of a task.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Status    Status    `json:"status"`
}

// Task is a single board item. History is append-only: the first entry is
// written at creation and a new entry is added on every status change, so the
// last entry always matches Status.
type Task struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Status      Status         `json:"status"`
	Priority    Priority       `json:"priority"`
	CreatedAt   time.Time      `json:"createdAt"`
	Deadline    *time.Time     `json:"deadline,omitempty"`
	AssigneeID  string         `json:"assigneeId,omitempty"`
	Tags        []string       `json:"tags"`
	History     []HistoryEntry `json:"history"`
}

// Clone returns a deep copy of the task. Empty slices stay empty rather
// than collapsing to nil so the serialized shape is stable.
func (t Task) Clone() Task {
	out := t
	if t.Deadline != nil {
		d := *t.Deadline
		out.Deadline = &d
	}
	if t.Tags != nil {
		out.Tags = append([]string{}, t.Tags...)
	}
	if t.History != nil {
		out.History = append([]HistoryEntry{}, t.History...)
	}
	return out
}

// HasTag reports whether the task references the given tag id.
func (t Task) HasTag(id string) bool {
	for _, tagID := range t.Tags {
		if tagID == id {
			return true
		}
	}
	return false
}

// TaskDraft carries the caller-supplied fields of a new task. ID, creation
// time and the initial history entry are assigned by the store.
type TaskDraft struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	Priority    Priority   `json:"priority"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	AssigneeID  string     `json:"assigneeId,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

// TaskPatch is a partial task update. Nil fields are left unchanged; a
// zero-time Deadline clears the deadline (same convention as FilterPatch,
// since JSON null is indistinguishable from an absent field).
type TaskPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty"`
	Priority    *Priority  `json:"priority,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	AssigneeID  *string    `json:"assigneeId,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}
