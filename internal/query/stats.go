package query

import (
	"math"
	"time"

	"github.com/karankrtech-08/Nova-Task-Pro/internal/task"
)

// Stats aggregates the dashboard numbers: per-view bucket counts, the
// totals row, the completion rate and the unread notification count.
type Stats struct {
	Inbox     int
	DueToday  int
	Upcoming  int
	Completed int

	Total   int
	Pending int
	Overdue int

	// CompletionRate is a rounded percentage, 0 when there are no tasks.
	CompletionRate int

	// Streak is 1 when at least one task was completed today, else 0.
	Streak int

	UnreadNotifications int
}

// Statistics computes Stats over the full task collection. The upcoming
// bucket counts only incomplete tasks, unlike the upcoming view, which
// shows completed ones too.
func Statistics(tasks []task.Task, notifications []task.Notification, now time.Time) Stats {
	var s Stats
	s.Total = len(tasks)
	for _, t := range tasks {
		if t.Project == task.InboxID {
			s.Inbox++
		}
		if t.DueDate != nil && sameDay(*t.DueDate, now) {
			s.DueToday++
		}
		if t.DueDate != nil && t.DueDate.After(now) && t.Status != task.StatusCompleted {
			s.Upcoming++
		}
		if t.Status == task.StatusCompleted {
			s.Completed++
			if sameDay(t.UpdatedAt, now) {
				s.Streak = 1
			}
		} else {
			s.Pending++
		}
		if t.Overdue(now) {
			s.Overdue++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	}
	for _, n := range notifications {
		if !n.Read {
			s.UnreadNotifications++
		}
	}
	return s
}
