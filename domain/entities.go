package domain

import "time"

// Tag is a label tasks can reference by id. Color is an opaque code the
// client renders; the server never interprets it.
type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// User is a board member tasks can be assigned to.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// ActivityType classifies audit records.
type ActivityType string

const (
	ActivityCreate       ActivityType = "create"
	ActivityUpdate       ActivityType = "update"
	ActivityDelete       ActivityType = "delete"
	ActivityComment      ActivityType = "comment"
	ActivityStatusChange ActivityType = "status-change"
)

// TaskActivity is an immutable audit record appended on every mutation of
// interest. Records are never updated or pruned.
type TaskActivity struct {
	ID        string       `json:"id"`
	TaskID    string       `json:"taskId"`
	Type      ActivityType `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
	UserID    string       `json:"userId,omitempty"`
	Message   string       `json:"message"`
	OldValue  string       `json:"oldValue,omitempty"`
	NewValue  string       `json:"newValue,omitempty"`
}

// Column describes one board column. Limit caps the tasks shown in the
// column; zero means unlimited.
type Column struct {
	ID    Status `json:"id"`
	Title string `json:"title"`
	Limit int    `json:"limit,omitempty"`
}

// BoardConfig defines which columns exist and their display order.
type BoardConfig struct {
	Columns []Column `json:"columns"`
}

// Clone returns a deep copy of the board config.
func (c BoardConfig) Clone() BoardConfig {
	return BoardConfig{Columns: append([]Column(nil), c.Columns...)}
}

// BoardConfigPatch is a partial board config update. A nil Columns slice
// leaves the column list unchanged.
type BoardConfigPatch struct {
	Columns []Column `json:"columns,omitempty"`
}
