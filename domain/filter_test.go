package domain

import (
	"testing"
	"time"
)

func TestMatchesSearch(t *testing.T) {
	design := Task{Title: "Design Homepage", Description: "Create mockups"}
	api := Task{Title: "API Integration", Description: "Connect frontend to backend"}

	cases := []struct {
		name string
		term string
		task Task
		want bool
	}{
		{"empty matches all", "", design, true},
		{"title case-insensitive", "api", api, true},
		{"title miss", "api", design, false},
		{"description match", "mockups", design, true},
		{"substring anywhere", "homepage", design, true},
		{"no match", "deploy", api, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := MatchesSearch(tc.task, tc.term); got != tc.want {
				t.Fatalf("MatchesSearch(%q) = %v, want %v", tc.term, got, tc.want)
			}
		})
	}
}

func TestFiltersMatchAssigneeAndPriority(t *testing.T) {
	task := Task{Status: StatusTodo, Priority: PriorityHigh, AssigneeID: "u1"}

	if !(Filters{}).Match(task) {
		t.Fatal("empty filters should match everything")
	}
	if !(Filters{Assignee: "u1"}).Match(task) {
		t.Fatal("assignee filter should match")
	}
	if (Filters{Assignee: "u2"}).Match(task) {
		t.Fatal("assignee filter should reject other assignees")
	}
	if !(Filters{Priority: []Priority{PriorityHigh, PriorityLow}}).Match(task) {
		t.Fatal("priority set containing the task priority should match")
	}
	if (Filters{Priority: []Priority{PriorityLow}}).Match(task) {
		t.Fatal("priority set without the task priority should reject")
	}
	// Dimensions combine conjunctively.
	if (Filters{Assignee: "u1", Priority: []Priority{PriorityLow}}).Match(task) {
		t.Fatal("conjunction should reject when one dimension fails")
	}
}

func TestFiltersMatchDateRangeAppliesToDeadline(t *testing.T) {
	now := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	in := now.AddDate(0, 0, 3)
	out := now.AddDate(0, 0, 30)
	from, to := now, now.AddDate(0, 0, 7)
	f := Filters{DateRange: &DateRange{From: &from, To: &to}}

	if !f.Match(Task{Deadline: &in}) {
		t.Fatal("deadline inside range should match")
	}
	if f.Match(Task{Deadline: &out}) {
		t.Fatal("deadline outside range should reject")
	}
	if !f.Match(Task{}) {
		t.Fatal("tasks without a deadline pass the date range filter")
	}

	// Half-open ranges constrain only the bounded side.
	onlyFrom := Filters{DateRange: &DateRange{From: &from}}
	if !onlyFrom.Match(Task{Deadline: &out}) {
		t.Fatal("deadline after from-only bound should match")
	}
}

func TestFiltersMatchTagsAnyOverlap(t *testing.T) {
	task := Task{Tags: []string{"t1", "t2"}}

	if !(Filters{Tags: []string{"t2", "t9"}}).Match(task) {
		t.Fatal("any shared tag should match")
	}
	if (Filters{Tags: []string{"t9"}}).Match(task) {
		t.Fatal("no shared tag should reject")
	}
	if (Filters{Tags: []string{"t1"}}).Match(Task{}) {
		t.Fatal("task without tags should reject an active tag filter")
	}
}

func TestFilterTasksCombinesSearchAndFilters(t *testing.T) {
	tasks := []Task{
		{ID: "a", Title: "API Integration", Priority: PriorityHigh},
		{ID: "b", Title: "API docs", Priority: PriorityLow},
		{ID: "c", Title: "Design Homepage", Priority: PriorityHigh},
	}
	got := FilterTasks(tasks, "api", Filters{Priority: []Priority{PriorityHigh}})
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("FilterTasks returned %#v", got)
	}
}
