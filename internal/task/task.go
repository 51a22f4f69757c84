// Package task defines the domain model: tasks, projects, notifications
// and the view-selection state shared by the store, the query engine and
// the UI.
package task

import "time"

type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the fixed sort rank: urgent first, low last. Unknown
// priorities sort after low.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

func (p Priority) Valid() bool {
	return p.Rank() < 4
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

type Subtask struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Task is a unit of work with scheduling and organizational metadata.
// Status is the authoritative completion field; Completed is kept in
// sync with it for the stored document shape.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	Priority    Priority   `json:"priority"`
	Project     string     `json:"project"`
	Status      Status     `json:"status"`
	Tags        []string   `json:"tags"`
	Subtasks    []Subtask  `json:"subtasks"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	Completed   bool       `json:"completed"`
}

// Normalize derives Completed from Status and fills zero-valued enum
// fields with their defaults.
func (t *Task) Normalize() {
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	if t.Project == "" {
		t.Project = InboxID
	}
	t.Completed = t.Status == StatusCompleted
}

// Overdue reports whether the task has a due date in the past and is
// not completed.
func (t Task) Overdue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted
}
