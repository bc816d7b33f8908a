package domain

import "time"

// DateRange bounds task deadlines. A nil bound is open-ended.
type DateRange struct {
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
}

// Filters narrows the visible task list. A zero-value dimension is inactive
// and imposes no constraint; active dimensions combine conjunctively.
type Filters struct {
	Assignee  string     `json:"assignee,omitempty"`
	Priority  []Priority `json:"priority,omitempty"`
	DateRange *DateRange `json:"dateRange,omitempty"`
	Tags      []string   `json:"tags,omitempty"`
}

// FilterPatch is a partial filter update. Nil fields are left unchanged; to
// clear a dimension, set it to its zero value (empty string, empty slice,
// empty range).
type FilterPatch struct {
	Assignee  *string     `json:"assignee,omitempty"`
	Priority  *[]Priority `json:"priority,omitempty"`
	DateRange *DateRange  `json:"dateRange,omitempty"`
	Tags      *[]string   `json:"tags,omitempty"`
}

// BoardState is the whole persisted document: every collection the board
// owns plus the ephemeral search and filter state. It serializes to the
// exact JSON shape stored in the slot.
type BoardState struct {
	Tasks       []Task         `json:"tasks"`
	Tags        []Tag          `json:"tags"`
	Users       []User         `json:"users"`
	Activities  []TaskActivity `json:"activities"`
	BoardConfig BoardConfig    `json:"boardConfig"`
	SearchTerm  string         `json:"searchTerm"`
	Filters     Filters        `json:"filters"`
}

// NewBoardState returns an empty state with the default column layout.
func NewBoardState() BoardState {
	return BoardState{
		Tasks:       []Task{},
		Tags:        []Tag{},
		Users:       []User{},
		Activities:  []TaskActivity{},
		BoardConfig: DefaultBoardConfig(),
	}
}

// Clone returns a deep copy of the state. Empty collections stay empty
// rather than collapsing to nil so the serialized shape is stable.
func (s BoardState) Clone() BoardState {
	out := s
	if s.Tasks != nil {
		out.Tasks = make([]Task, len(s.Tasks))
		for i, t := range s.Tasks {
			out.Tasks[i] = t.Clone()
		}
	}
	if s.Tags != nil {
		out.Tags = append([]Tag{}, s.Tags...)
	}
	if s.Users != nil {
		out.Users = append([]User{}, s.Users...)
	}
	if s.Activities != nil {
		out.Activities = append([]TaskActivity{}, s.Activities...)
	}
	out.BoardConfig = s.BoardConfig.Clone()
	if s.Filters.Priority != nil {
		out.Filters.Priority = append([]Priority(nil), s.Filters.Priority...)
	}
	if s.Filters.Tags != nil {
		out.Filters.Tags = append([]string(nil), s.Filters.Tags...)
	}
	if s.Filters.DateRange != nil {
		dr := *s.Filters.DateRange
		out.Filters.DateRange = &dr
	}
	return out
}

// TaskIndex returns the position of the task with the given id, or -1.
func (s *BoardState) TaskIndex(id string) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
