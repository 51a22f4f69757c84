// Package store owns all application state: tasks, projects,
// notifications and the view selection. Mutations go through the
// operations defined here; each one persists write-through to the
// storage adapter, best-effort. The presentation layer only reads
// snapshots and dispatches intents back.
package store

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/karankrtech-08/Nova-Task-Pro/internal/query"
	"github.com/karankrtech-08/Nova-Task-Pro/internal/storage"
	"github.com/karankrtech-08/Nova-Task-Pro/internal/task"
)

type Store struct {
	db  *storage.DB
	log *logrus.Logger

	now   func() time.Time
	newID func() string

	tasks         []task.Task
	projects      []task.Project
	notifications []task.Notification
	view          task.ViewState
	theme         string
	viewMode      string
}

// Open loads the persisted documents from db, falling back to first-run
// defaults for anything absent. The defaults snapshot (typically from
// the config file) seeds the view state before any stored settings
// override it; zero fields are skipped. db may be nil, in which case
// the store runs purely in memory.
func Open(db *storage.DB, log *logrus.Logger, defaults task.Settings) *Store {
	if log == nil {
		log = logrus.New()
	}
	s := &Store{
		db:            db,
		log:           log,
		now:           time.Now,
		newID:         uuid.NewString,
		projects:      task.DefaultProjects(),
		notifications: task.SeedNotifications(),
		view:          task.DefaultViewState(),
		theme:         "light",
		viewMode:      "list",
	}
	s.applySettings(defaults)
	if db == nil {
		return s
	}

	var tasks []task.Task
	if db.Load(storage.KeyTasks, &tasks) {
		for i := range tasks {
			tasks[i].Normalize()
		}
		s.tasks = tasks
	}
	var projects []task.Project
	if db.Load(storage.KeyProjects, &projects) && len(projects) > 0 {
		s.projects = ensureInbox(projects)
	}
	var settings task.Settings
	if db.Load(storage.KeySettings, &settings) {
		s.applySettings(settings)
	}
	var mode string
	if db.Load(storage.KeyViewMode, &mode) && mode != "" {
		s.viewMode = mode
	}
	return s
}

// ensureInbox keeps the reserved inbox project present and first even
// if a stored document lost it.
func ensureInbox(projects []task.Project) []task.Project {
	for _, p := range projects {
		if p.ID == task.InboxID {
			return projects
		}
	}
	return append([]task.Project{task.DefaultProjects()[0]}, projects...)
}

func (s *Store) applySettings(settings task.Settings) {
	if settings.CurrentView != "" {
		s.view.View = settings.CurrentView
	}
	s.view.Project = settings.CurrentProject
	if settings.CurrentSort != "" {
		s.view.Sort = settings.CurrentSort
	}
	if settings.Filters != (task.Filters{}) {
		s.view.Filters = settings.Filters
	}
	if settings.Theme != "" {
		s.theme = settings.Theme
	}
}

// ---- task operations ----

// AddTask creates a task from a quick-add title: medium priority, inbox
// project, due in 24 hours, inserted at the front of the sequence.
func (s *Store) AddTask(title string) (task.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return task.Task{}, validationf("title", "title is required")
	}
	now := s.now()
	due := now.Add(24 * time.Hour)
	t := task.Task{
		ID:        s.newID(),
		Title:     title,
		DueDate:   &due,
		Priority:  task.PriorityMedium,
		Project:   task.InboxID,
		Status:    task.StatusPending,
		Tags:      []string{},
		Subtasks:  []task.Subtask{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	t.Normalize()
	s.tasks = append([]task.Task{t}, s.tasks...)
	s.persistTasks()
	return t, nil
}

// TaskDraft is a full edit of a task, already converted from form text
// by the presentation layer. Status is authoritative on save; the
// completed flag is derived from it.
type TaskDraft struct {
	ID          string
	Title       string
	Description string
	DueDate     *time.Time
	Priority    task.Priority
	Project     string
	Status      task.Status
	Tags        []string
	Subtasks    []task.Subtask
}

// UpsertTask saves a draft: a matching id replaces the task in place,
// keeping its position and creation time; anything else inserts at the
// front as a new task.
func (s *Store) UpsertTask(d TaskDraft) (task.Task, error) {
	title := strings.TrimSpace(d.Title)
	if title == "" {
		return task.Task{}, validationf("title", "title is required")
	}
	now := s.now()
	t := task.Task{
		ID:          d.ID,
		Title:       title,
		Description: strings.TrimSpace(d.Description),
		DueDate:     d.DueDate,
		Priority:    d.Priority,
		Project:     d.Project,
		Status:      d.Status,
		Tags:        d.Tags,
		Subtasks:    d.Subtasks,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Tags == nil {
		t.Tags = []string{}
	}
	if t.Subtasks == nil {
		t.Subtasks = []task.Subtask{}
	}
	t.Normalize()

	if idx := s.indexOf(d.ID); idx >= 0 {
		t.CreatedAt = s.tasks[idx].CreatedAt
		s.tasks[idx] = t
	} else {
		if t.ID == "" {
			t.ID = s.newID()
		}
		s.tasks = append([]task.Task{t}, s.tasks...)
	}
	s.persistTasks()
	return t, nil
}

// DeleteTask removes the task with the given id. Unknown ids are a
// silent no-op.
func (s *Store) DeleteTask(id string) {
	idx := s.indexOf(id)
	if idx < 0 {
		return
	}
	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	s.persistTasks()
}

// ToggleCompletion flips a task between pending and completed and
// relocates it: completed tasks move to the end of the sequence,
// reopened ones back to the front. Returns false for unknown ids.
func (s *Store) ToggleCompletion(id string) (task.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return task.Task{}, false
	}
	t := s.tasks[idx]
	if t.Status == task.StatusCompleted {
		t.Status = task.StatusPending
	} else {
		t.Status = task.StatusCompleted
	}
	t.Normalize()
	t.UpdatedAt = s.now()

	s.tasks = append(s.tasks[:idx], s.tasks[idx+1:]...)
	if t.Completed {
		s.tasks = append(s.tasks, t)
	} else {
		s.tasks = append([]task.Task{t}, s.tasks...)
	}
	s.persistTasks()
	return t, true
}

func (s *Store) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// ---- project operations ----

// AddProject appends a new project. Names are unique case-insensitively.
func (s *Store) AddProject(name, description, color string) (task.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return task.Project{}, validationf("name", "project name is required")
	}
	for _, p := range s.projects {
		if strings.EqualFold(p.Name, name) {
			return task.Project{}, validationf("name", "project %q already exists", p.Name)
		}
	}
	p := task.Project{
		ID:          s.newID(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Color:       color,
		Icon:        "folder",
		CreatedAt:   s.now(),
	}
	s.projects = append(s.projects, p)
	s.persistProjects()
	return p, nil
}

func (s *Store) ProjectByID(id string) (task.Project, bool) {
	for _, p := range s.projects {
		if p.ID == id {
			return p, true
		}
	}
	return task.Project{}, false
}

// TaskCountByProject counts tasks assigned to a project, for the
// sidebar badges.
func (s *Store) TaskCountByProject(id string) int {
	n := 0
	for _, t := range s.tasks {
		if t.Project == id {
			n++
		}
	}
	return n
}

// ---- notifications ----

func (s *Store) MarkNotificationRead(id int) bool {
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			return true
		}
	}
	return false
}

func (s *Store) MarkAllNotificationsRead() {
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
}

func (s *Store) UnreadNotifications() int {
	n := 0
	for _, nt := range s.notifications {
		if !nt.Read {
			n++
		}
	}
	return n
}

// ---- view state ----

func (s *Store) SetView(v task.View) {
	s.view.View = v
	if v != task.ViewProject {
		s.view.Project = ""
	}
	s.persistSettings()
}

func (s *Store) SetProjectView(projectID string) {
	s.view.View = task.ViewProject
	s.view.Project = projectID
	s.persistSettings()
}

func (s *Store) SetSort(k task.SortKey) {
	s.view.Sort = k
	s.persistSettings()
}

func (s *Store) SetFilters(f task.Filters) {
	s.view.Filters = f
	s.persistSettings()
}

// SetSearch updates the free-text query. It is not persisted; a fresh
// session starts unfiltered.
func (s *Store) SetSearch(q string) {
	s.view.Search = q
}

func (s *Store) SetTheme(theme string) {
	s.theme = theme
	s.persistSettings()
}

func (s *Store) SetViewMode(mode string) {
	s.viewMode = mode
	if s.db != nil {
		s.db.Save(storage.KeyViewMode, mode)
	}
}

// ---- snapshots ----

func (s *Store) Tasks() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Projects() []task.Project {
	out := make([]task.Project, len(s.projects))
	copy(out, s.projects)
	return out
}

func (s *Store) Notifications() []task.Notification {
	out := make([]task.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}

func (s *Store) ViewState() task.ViewState { return s.view }
func (s *Store) Theme() string             { return s.theme }
func (s *Store) ViewMode() string          { return s.viewMode }

// Visible returns the tasks selected by the current view state, ordered
// by the active sort key.
func (s *Store) Visible() []task.Task {
	return query.Visible(s.tasks, s.view, s.now())
}

func (s *Store) Stats() query.Stats {
	return query.Statistics(s.tasks, s.notifications, s.now())
}

// ---- persistence ----

func (s *Store) persistTasks() {
	if s.db == nil {
		return
	}
	s.db.Save(storage.KeyTasks, s.tasks)
}

func (s *Store) persistProjects() {
	if s.db == nil {
		return
	}
	s.db.Save(storage.KeyProjects, s.projects)
}

func (s *Store) persistSettings() {
	if s.db == nil {
		return
	}
	s.db.Save(storage.KeySettings, task.Settings{
		CurrentView:    s.view.View,
		CurrentProject: s.view.Project,
		CurrentSort:    s.view.Sort,
		Filters:        s.view.Filters,
		Theme:          s.theme,
	})
}
