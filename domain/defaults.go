package domain

import "time"

// DefaultBoardConfig returns the standard four-column layout.
func DefaultBoardConfig() BoardConfig {
	return BoardConfig{Columns: []Column{
		{ID: StatusTodo, Title: "To Do"},
		{ID: StatusInProgress, Title: "In Progress"},
		{ID: StatusReview, Title: "Review"},
		{ID: StatusDone, Title: "Done"},
	}}
}

// DefaultTags returns the seed tag set.
func DefaultTags() []Tag {
	return []Tag{
		{ID: "1", Name: "UI", Color: "#93C5FD"},
		{ID: "2", Name: "Backend", Color: "#A7F3D0"},
		{ID: "3", Name: "Design", Color: "#FDE68A"},
		{ID: "4", Name: "API", Color: "#DDD6FE"},
		{ID: "5", Name: "Documentation", Color: "#FBCFE8"},
	}
}

// DefaultUsers returns the seed user set.
func DefaultUsers() []User {
	return []User{
		{ID: "1", Name: "Alex Johnson", Avatar: "https://api.dicebear.com/6.x/personas/svg?seed=Alex"},
		{ID: "2", Name: "Jordan Lee", Avatar: "https://api.dicebear.com/6.x/personas/svg?seed=Jordan"},
		{ID: "3", Name: "Taylor Smith", Avatar: "https://api.dicebear.com/6.x/personas/svg?seed=Taylor"},
	}
}

// DefaultTasks returns the seed task set with timestamps placed relative to
// now, so deadlines and histories stay plausible whenever the board is first
// initialized.
func DefaultTasks(now time.Time) []Task {
	day := func(n int) time.Time { return now.AddDate(0, 0, n) }
	deadline := func(n int) *time.Time {
		d := day(n)
		return &d
	}
	return []Task{
		{
			ID:          "1",
			Title:       "Design Dashboard UI",
			Description: "Create wireframes and mockups for the main dashboard screen",
			Status:      StatusTodo,
			Priority:    PriorityHigh,
			CreatedAt:   day(-7),
			Deadline:    deadline(5),
			AssigneeID:  "1",
			Tags:        []string{"1", "3"},
			History: []HistoryEntry{
				{Timestamp: day(-7), Status: StatusTodo},
			},
		},
		{
			ID:          "2",
			Title:       "Implement Authentication",
			Description: "Set up user authentication with JWT and secure routes",
			Status:      StatusInProgress,
			Priority:    PriorityHigh,
			CreatedAt:   day(-5),
			Deadline:    deadline(2),
			AssigneeID:  "2",
			Tags:        []string{"2"},
			History: []HistoryEntry{
				{Timestamp: day(-5), Status: StatusTodo},
				{Timestamp: day(-3), Status: StatusInProgress},
			},
		},
		{
			ID:          "3",
			Title:       "API Integration",
			Description: "Connect frontend to backend APIs for data retrieval and updates",
			Status:      StatusInProgress,
			Priority:    PriorityMedium,
			CreatedAt:   day(-4),
			Deadline:    deadline(4),
			AssigneeID:  "1",
			Tags:        []string{"2", "4"},
			History: []HistoryEntry{
				{Timestamp: day(-4), Status: StatusTodo},
				{Timestamp: day(-2), Status: StatusInProgress},
			},
		},
		{
			ID:          "4",
			Title:       "Write Documentation",
			Description: "Create comprehensive API documentation for developers",
			Status:      StatusReview,
			Priority:    PriorityLow,
			CreatedAt:   day(-10),
			Deadline:    deadline(1),
			AssigneeID:  "3",
			Tags:        []string{"5"},
			History: []HistoryEntry{
				{Timestamp: day(-10), Status: StatusTodo},
				{Timestamp: day(-8), Status: StatusInProgress},
				{Timestamp: day(-1), Status: StatusReview},
			},
		},
		{
			ID:          "5",
			Title:       "Code Review",
			Description: "Perform code review for the authentication module",
			Status:      StatusDone,
			Priority:    PriorityMedium,
			CreatedAt:   day(-6),
			AssigneeID:  "2",
			Tags:        []string{"2", "5"},
			History: []HistoryEntry{
				{Timestamp: day(-6), Status: StatusTodo},
				{Timestamp: day(-5), Status: StatusInProgress},
				{Timestamp: day(-3), Status: StatusReview},
				{Timestamp: day(-2), Status: StatusDone},
			},
		},
	}
}
