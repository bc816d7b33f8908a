package domain

import "time"

// StatusDuration is the accumulated time a task spent in one status.
type StatusDuration struct {
	Status  Status  `json:"status"`
	Seconds float64 `json:"seconds"`
}

// TimeInStatus aggregates how long the task spent in each status by scanning
// consecutive history entries. The duration of the current status is
// open-ended and measured against now. The result follows first-visit order.
func TimeInStatus(t Task, now time.Time) []StatusDuration {
	if len(t.History) == 0 {
		return nil
	}
	order := make([]Status, 0, 4)
	totals := make(map[Status]time.Duration, 4)
	for i, entry := range t.History {
		end := now
		if i+1 < len(t.History) {
			end = t.History[i+1].Timestamp
		}
		if _, seen := totals[entry.Status]; !seen {
			order = append(order, entry.Status)
		}
		if d := end.Sub(entry.Timestamp); d > 0 {
			totals[entry.Status] += d
		}
	}
	out := make([]StatusDuration, len(order))
	for i, st := range order {
		out[i] = StatusDuration{Status: st, Seconds: totals[st].Seconds()}
	}
	return out
}

// CompletionTime returns the time from task creation to its first transition
// into done. The second return value is false when the task never reached
// done.
func CompletionTime(t Task) (time.Duration, bool) {
	for _, entry := range t.History {
		if entry.Status == StatusDone {
			return entry.Timestamp.Sub(t.CreatedAt), true
		}
	}
	return 0, false
}

// BoardSummary is the aggregate view the analytics endpoints serve.
type BoardSummary struct {
	TotalTasks        int              `json:"totalTasks"`
	CompletedTasks    int              `json:"completedTasks"`
	CompletionRate    int              `json:"completionRate"`
	ByStatus          map[Status]int   `json:"byStatus"`
	ByPriority        map[Priority]int `json:"byPriority"`
	AvgCompletionDays float64          `json:"avgCompletionDays"`
}

// Summarize computes board-level counts and the average completion time, in
// days, over tasks currently done.
func Summarize(tasks []Task) BoardSummary {
	s := BoardSummary{
		ByStatus:   make(map[Status]int),
		ByPriority: make(map[Priority]int),
	}
	var totalDays float64
	var completed int
	for _, t := range tasks {
		s.TotalTasks++
		s.ByStatus[t.Status]++
		s.ByPriority[t.Priority]++
		if t.Status != StatusDone {
			continue
		}
		s.CompletedTasks++
		if d, ok := CompletionTime(t); ok {
			totalDays += d.Hours() / 24
			completed++
		}
	}
	if s.TotalTasks > 0 {
		s.CompletionRate = int(float64(s.CompletedTasks)/float64(s.TotalTasks)*100 + 0.5)
	}
	if completed > 0 {
		s.AvgCompletionDays = totalDays / float64(completed)
	}
	return s
}
