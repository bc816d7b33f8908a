package domain

import "sort"

// SortColumn orders tasks for display within a board column: priority first
// (high before medium before low), then deadline (any deadline before none,
// nearer first), then newer creation time first.
func SortColumn(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return lessInColumn(tasks[i], tasks[j])
	})
}

func lessInColumn(a, b Task) bool {
	if ra, rb := a.Priority.Rank(), b.Priority.Rank(); ra != rb {
		return ra < rb
	}
	switch {
	case a.Deadline != nil && b.Deadline != nil:
		if !a.Deadline.Equal(*b.Deadline) {
			return a.Deadline.Before(*b.Deadline)
		}
	case a.Deadline != nil:
		return true
	case b.Deadline != nil:
		return false
	}
	return a.CreatedAt.After(b.CreatedAt)
}
