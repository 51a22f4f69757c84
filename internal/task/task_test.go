package task

import (
	"testing"
	"time"
)

func TestPriorityRank(t *testing.T) {
	order := []Priority{PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow}
	for i := 1; i < len(order); i++ {
		if order[i-1].Rank() >= order[i].Rank() {
			t.Fatalf("%s must rank before %s", order[i-1], order[i])
		}
	}
	if Priority("bogus").Rank() <= PriorityLow.Rank() {
		t.Fatalf("unknown priorities must rank after low")
	}
	if Priority("bogus").Valid() {
		t.Fatalf("bogus priority must not validate")
	}
}

func TestNormalizeDerivesCompleted(t *testing.T) {
	tk := Task{Title: "x", Status: StatusCompleted}
	tk.Normalize()
	if !tk.Completed {
		t.Fatalf("completed must follow status")
	}

	tk.Status = StatusPending
	tk.Completed = true
	tk.Normalize()
	if tk.Completed {
		t.Fatalf("status is authoritative over the stored flag")
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	tk := Task{Title: "x"}
	tk.Normalize()
	if tk.Priority != PriorityMedium || tk.Status != StatusPending || tk.Project != InboxID {
		t.Fatalf("defaults not filled: %+v", tk)
	}
}

func TestOverdue(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)

	tk := Task{DueDate: &past, Status: StatusPending}
	if !tk.Overdue(now) {
		t.Fatalf("past-due pending task must be overdue")
	}
	tk.Status = StatusCompleted
	if tk.Overdue(now) {
		t.Fatalf("completed tasks are never overdue")
	}
	if (Task{}).Overdue(now) {
		t.Fatalf("undated tasks are never overdue")
	}
}
