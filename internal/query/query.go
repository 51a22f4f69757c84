// Package query selects and orders the visible subset of tasks and
// derives aggregate statistics. Every function is pure: no stored
// state, no mutation of the input slice, no errors.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/karankrtech-08/Nova-Task-Pro/internal/task"
)

// Visible applies the view pipeline to tasks and returns a fresh,
// ordered slice: view bucket filter, then search, then attribute
// filters, then a stable sort by the active sort key.
func Visible(tasks []task.Task, vs task.ViewState, now time.Time) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if !inView(t, vs, now) {
			continue
		}
		if !matchesSearch(t, vs.Search) {
			continue
		}
		if !matchesFilters(t, vs.Filters) {
			continue
		}
		out = append(out, t)
	}
	sortTasks(out, vs.Sort)
	return out
}

func inView(t task.Task, vs task.ViewState, now time.Time) bool {
	switch vs.View {
	case task.ViewInbox:
		return t.Project == task.InboxID
	case task.ViewToday:
		return t.DueDate != nil && sameDay(*t.DueDate, now)
	case task.ViewUpcoming:
		return t.DueDate != nil && t.DueDate.After(now)
	case task.ViewCompleted:
		return t.Status == task.StatusCompleted
	case task.ViewProject:
		return vs.Project != "" && t.Project == vs.Project
	}
	// dashboard, or an unknown view, shows everything
	return true
}

func matchesSearch(t task.Task, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

func matchesFilters(t task.Task, f task.Filters) bool {
	if f.Priority != "" && f.Priority != task.FilterAll && string(t.Priority) != f.Priority {
		return false
	}
	if f.Status != "" && f.Status != task.FilterAll && string(t.Status) != f.Status {
		return false
	}
	if f.Project != "" && f.Project != task.FilterAll && t.Project != f.Project {
		return false
	}
	return true
}

func sortTasks(tasks []task.Task, key task.SortKey) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		switch key {
		case task.SortPriority:
			return a.Priority.Rank() < b.Priority.Rank()
		case task.SortCreatedAt:
			return a.CreatedAt.After(b.CreatedAt)
		case task.SortTitle:
			return lessTitle(a.Title, b.Title)
		default: // dueDate
			if a.DueDate == nil {
				return false
			}
			if b.DueDate == nil {
				return true
			}
			return a.DueDate.Before(*b.DueDate)
		}
	})
}

// lessTitle orders case-insensitively, falling back to the raw strings
// so equal folds still order deterministically.
func lessTitle(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return a < b
}

func sameDay(a, b time.Time) bool {
	ya, ma, da := a.Local().Date()
	yb, mb, db := b.Local().Date()
	return ya == yb && ma == mb && da == db
}
