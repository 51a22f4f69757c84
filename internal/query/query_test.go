package query

import (
	"testing"
	"time"

	"github.com/karankrtech-08/Nova-Task-Pro/internal/task"
)

func tp(t time.Time) *time.Time { return &t }

func titles(tasks []task.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}

func equalTitles(got []task.Task, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].Title != want[i] {
			return false
		}
	}
	return true
}

func viewState(v task.View) task.ViewState {
	vs := task.DefaultViewState()
	vs.View = v
	return vs
}

func TestVisibleTodayIncludesMidnightExcludesTomorrow(t *testing.T) {
	now := time.Date(2026, 8, 31, 15, 30, 0, 0, time.Local)
	midnight := time.Date(2026, 8, 31, 0, 0, 0, 0, time.Local)
	tomorrow := now.Add(24 * time.Hour)

	tasks := []task.Task{
		{Title: "midnight", DueDate: tp(midnight)},
		{Title: "tomorrow", DueDate: tp(tomorrow)},
		{Title: "undated"},
	}

	got := Visible(tasks, viewState(task.ViewToday), now)
	if !equalTitles(got, "midnight") {
		t.Fatalf("today view: want [midnight], got %v", titles(got))
	}
}

func TestVisibleUpcomingIgnoresStatus(t *testing.T) {
	now := time.Now()
	tasks := []task.Task{
		{Title: "done-later", DueDate: tp(now.Add(48 * time.Hour)), Status: task.StatusCompleted},
		{Title: "past", DueDate: tp(now.Add(-time.Hour))},
		{Title: "soon", DueDate: tp(now.Add(time.Hour))},
	}

	got := Visible(tasks, viewState(task.ViewUpcoming), now)
	if !equalTitles(got, "soon", "done-later") {
		t.Fatalf("upcoming view: want [soon done-later], got %v", titles(got))
	}
}

func TestVisibleInboxAndProjectViews(t *testing.T) {
	now := time.Now()
	tasks := []task.Task{
		{Title: "a", Project: task.InboxID},
		{Title: "b", Project: "work"},
	}

	got := Visible(tasks, viewState(task.ViewInbox), now)
	if !equalTitles(got, "a") {
		t.Fatalf("inbox view: want [a], got %v", titles(got))
	}

	vs := viewState(task.ViewProject)
	vs.Project = "work"
	got = Visible(tasks, vs, now)
	if !equalTitles(got, "b") {
		t.Fatalf("project view: want [b], got %v", titles(got))
	}

	// project view with no project selected is empty
	vs.Project = ""
	if got = Visible(tasks, vs, now); len(got) != 0 {
		t.Fatalf("unset project view: want empty, got %v", titles(got))
	}
}

func TestSortDueDatePlacesUndatedLast(t *testing.T) {
	now := time.Now()
	tasks := []task.Task{
		{Title: "A"},
		{Title: "B", DueDate: tp(now.Add(24 * time.Hour))},
	}

	got := Visible(tasks, viewState(task.ViewDashboard), now)
	if !equalTitles(got, "B", "A") {
		t.Fatalf("dueDate sort: want [B A], got %v", titles(got))
	}
}

func TestSortDueDateStableForTwoUndated(t *testing.T) {
	now := time.Now()
	tasks := []task.Task{{Title: "first"}, {Title: "second"}}

	got := Visible(tasks, viewState(task.ViewDashboard), now)
	if !equalTitles(got, "first", "second") {
		t.Fatalf("undated ties must keep input order, got %v", titles(got))
	}
}

func TestSortPriorityOrder(t *testing.T) {
	tasks := []task.Task{
		{Title: "low", Priority: task.PriorityLow},
		{Title: "urgent", Priority: task.PriorityUrgent},
		{Title: "medium", Priority: task.PriorityMedium},
	}
	vs := viewState(task.ViewDashboard)
	vs.Sort = task.SortPriority

	got := Visible(tasks, vs, time.Now())
	if !equalTitles(got, "urgent", "medium", "low") {
		t.Fatalf("priority sort: want [urgent medium low], got %v", titles(got))
	}
}

func TestSortCreatedAtNewestFirst(t *testing.T) {
	now := time.Now()
	tasks := []task.Task{
		{Title: "old", CreatedAt: now.Add(-time.Hour)},
		{Title: "new", CreatedAt: now},
	}
	vs := viewState(task.ViewDashboard)
	vs.Sort = task.SortCreatedAt

	got := Visible(tasks, vs, now)
	if !equalTitles(got, "new", "old") {
		t.Fatalf("createdAt sort: want [new old], got %v", titles(got))
	}
}

func TestSortTitleCaseInsensitive(t *testing.T) {
	tasks := []task.Task{
		{Title: "banana"},
		{Title: "Apple"},
		{Title: "cherry"},
	}
	vs := viewState(task.ViewDashboard)
	vs.Sort = task.SortTitle

	got := Visible(tasks, vs, time.Now())
	if !equalTitles(got, "Apple", "banana", "cherry") {
		t.Fatalf("title sort: want [Apple banana cherry], got %v", titles(got))
	}
}

func TestSearchMatchesTitleDescriptionAndTags(t *testing.T) {
	tasks := []task.Task{
		{Title: "Pay rent"},
		{Title: "Groceries", Description: "milk and bread"},
		{Title: "Gym", Tags: []string{"Health", "weekly"}},
		{Title: "Untagged"},
	}
	vs := viewState(task.ViewDashboard)

	vs.Search = "  MILK "
	if got := Visible(tasks, vs, time.Now()); !equalTitles(got, "Groceries") {
		t.Fatalf("description search: want [Groceries], got %v", titles(got))
	}

	vs.Search = "health"
	if got := Visible(tasks, vs, time.Now()); !equalTitles(got, "Gym") {
		t.Fatalf("tag search: want [Gym], got %v", titles(got))
	}
}

func TestAttributeFilters(t *testing.T) {
	tasks := []task.Task{
		{Title: "a", Priority: task.PriorityUrgent, Status: task.StatusPending, Project: task.InboxID},
		{Title: "b", Priority: task.PriorityLow, Status: task.StatusCompleted, Project: "work"},
		{Title: "c", Priority: task.PriorityUrgent, Status: task.StatusCompleted, Project: "work"},
	}
	vs := viewState(task.ViewDashboard)
	vs.Filters = task.Filters{Priority: "urgent", Status: "completed", Project: "work"}

	got := Visible(tasks, vs, time.Now())
	if !equalTitles(got, "c") {
		t.Fatalf("combined filters: want [c], got %v", titles(got))
	}
}

func TestVisibleDoesNotMutateInput(t *testing.T) {
	now := time.Now()
	tasks := []task.Task{
		{Title: "z", Priority: task.PriorityLow},
		{Title: "a", Priority: task.PriorityUrgent},
	}
	vs := viewState(task.ViewDashboard)
	vs.Sort = task.SortPriority

	Visible(tasks, vs, now)
	if tasks[0].Title != "z" || tasks[1].Title != "a" {
		t.Fatalf("input slice was reordered: %v", titles(tasks))
	}
}
