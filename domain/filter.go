package domain

import "strings"

// MatchesSearch reports whether the task matches a free-text search term.
// Matching is a case-insensitive substring test against title and
// description; an empty term matches everything.
func MatchesSearch(t Task, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	return strings.Contains(strings.ToLower(t.Title), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle)
}

// Match reports whether the task passes every active filter dimension.
func (f Filters) Match(t Task) bool {
	if f.Assignee != "" && t.AssigneeID != f.Assignee {
		return false
	}
	if len(f.Priority) > 0 && !containsPriority(f.Priority, t.Priority) {
		return false
	}
	// The date range constrains the deadline; tasks without one pass.
	if f.DateRange != nil && t.Deadline != nil {
		d := *t.Deadline
		if f.DateRange.From != nil && d.Before(*f.DateRange.From) {
			return false
		}
		if f.DateRange.To != nil && d.After(*f.DateRange.To) {
			return false
		}
	}
	if len(f.Tags) > 0 && !hasAnyTag(t, f.Tags) {
		return false
	}
	return true
}

// FilterTasks returns the tasks matching both the search term and the
// filter set, preserving input order.
func FilterTasks(tasks []Task, term string, f Filters) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if MatchesSearch(t, term) && f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

func containsPriority(set []Priority, p Priority) bool {
	for _, v := range set {
		if v == p {
			return true
		}
	}
	return false
}

func hasAnyTag(t Task, tagIDs []string) bool {
	for _, id := range tagIDs {
		if t.HasTag(id) {
			return true
		}
	}
	return false
}
