package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/karankrtech-08/Nova-Task-Pro/internal/store"
	"github.com/karankrtech-08/Nova-Task-Pro/internal/task"
)

// editState walks the task form one field at a time over the shared
// text input, in the order of editFields. Values stay strings until the
// final save converts them into a store.TaskDraft.
type editState struct {
	taskID      string
	title       string
	description string
	due         string
	priority    string
	project     string
	status      string
	tags        string
	subtasks    string
	index       int
}

func editFields() []string {
	return []string{
		"title",
		"description",
		"due date (YYYY-MM-DD [HH:MM])",
		"priority (urgent/high/medium/low)",
		"project id",
		"status (pending/completed)",
		"tags (comma separated)",
		"subtasks (comma separated, [x] prefix when done)",
	}
}

func (es editState) currentLabel() string {
	return editFields()[es.index]
}

func (es editState) currentValue() string {
	switch es.index {
	case 0:
		return es.title
	case 1:
		return es.description
	case 2:
		return es.due
	case 3:
		return es.priority
	case 4:
		return es.project
	case 5:
		return es.status
	case 6:
		return es.tags
	case 7:
		return es.subtasks
	default:
		return ""
	}
}

func (es *editState) setCurrentValue(v string) {
	switch es.index {
	case 0:
		es.title = v
	case 1:
		es.description = v
	case 2:
		es.due = v
	case 3:
		es.priority = v
	case 4:
		es.project = v
	case 5:
		es.status = v
	case 6:
		es.tags = v
	case 7:
		es.subtasks = v
	}
}

func (es editState) prompt() string {
	return fmt.Sprintf("Field %d of %d. Enter to advance, Esc to cancel.",
		es.index+1, len(editFields()))
}

func (m Model) startEditByID(id string) (tea.Model, tea.Cmd) {
	for _, t := range m.st.Tasks() {
		if t.ID == id {
			return m.startEdit(t)
		}
	}
	return m, nil
}

func (m Model) startEdit(t task.Task) (tea.Model, tea.Cmd) {
	m.edit = &editState{
		taskID:      t.ID,
		title:       t.Title,
		description: t.Description,
		due:         formatDue(t.DueDate),
		priority:    string(t.Priority),
		project:     t.Project,
		status:      string(t.Status),
		tags:        strings.Join(t.Tags, ", "),
		subtasks:    formatSubtasks(t.Subtasks),
	}
	m.input.SetValue(m.edit.currentValue())
	m.input.Placeholder = m.edit.currentLabel()
	m.input.Focus()
	m.mode = modeEdit
	m.status = "Edit: Enter saves the field, Esc cancels"
	return m, nil
}

func (m Model) updateEditMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.edit = nil
		m.mode = modeList
		m.input.Blur()
		m.status = "Edit cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		if m.edit == nil {
			return m, nil
		}
		m.edit.setCurrentValue(m.input.Value())
		if m.edit.index >= len(editFields())-1 {
			return m.saveEdit()
		}
		m.edit.index++
		m.input.SetValue(m.edit.currentValue())
		m.input.Placeholder = m.edit.currentLabel()
		m.status = m.edit.prompt()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveEdit() (tea.Model, tea.Cmd) {
	if m.edit == nil {
		return m, nil
	}
	due, err := parseDue(m.edit.due)
	if err != nil {
		m.status = m.theme.Error.Render("due date invalid: " + err.Error())
		return m, nil
	}
	priority := task.Priority(strings.TrimSpace(m.edit.priority))
	if priority == "" {
		priority = task.PriorityMedium
	}
	if !priority.Valid() {
		m.status = m.theme.Error.Render("priority must be urgent, high, medium or low")
		return m, nil
	}
	status := task.Status(strings.TrimSpace(m.edit.status))
	if status == "" {
		status = task.StatusPending
	}
	if status != task.StatusPending && status != task.StatusCompleted {
		m.status = m.theme.Error.Render("status must be pending or completed")
		return m, nil
	}
	project := strings.TrimSpace(m.edit.project)
	if project != "" {
		if _, ok := m.st.ProjectByID(project); !ok {
			m.status = m.theme.Error.Render("unknown project id: " + project)
			return m, nil
		}
	}

	draft := store.TaskDraft{
		ID:          m.edit.taskID,
		Title:       m.edit.title,
		Description: m.edit.description,
		DueDate:     due,
		Priority:    priority,
		Project:     project,
		Status:      status,
		Tags:        splitList(m.edit.tags),
		Subtasks:    parseSubtasks(m.edit.subtasks),
	}
	if _, err := m.st.UpsertTask(draft); err != nil {
		m.status = m.theme.Error.Render(userMessage(err))
		return m, nil
	}
	m.edit = nil
	m.mode = modeList
	m.input.Blur()
	m.refresh()
	m.status = m.theme.Success.Render("Task saved")
	return m, nil
}

// projectState is the three-field creation wizard for projects.
type projectState struct {
	name        string
	description string
	color       string
	index       int
}

func projectFields() []string {
	return []string{"name", "description", "color (#rrggbb)"}
}

func (ps projectState) currentLabel() string {
	return projectFields()[ps.index]
}

func (ps projectState) currentValue() string {
	switch ps.index {
	case 0:
		return ps.name
	case 1:
		return ps.description
	case 2:
		return ps.color
	default:
		return ""
	}
}

func (ps *projectState) setCurrentValue(v string) {
	switch ps.index {
	case 0:
		ps.name = v
	case 1:
		ps.description = v
	case 2:
		ps.color = v
	}
}

func (ps projectState) prompt() string {
	return fmt.Sprintf("Field %d of %d. Enter to advance, Esc to cancel.",
		ps.index+1, len(projectFields()))
}

func (m Model) updateProjectMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.proj = nil
		m.mode = modeList
		m.input.Blur()
		m.status = "Project creation cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		if m.proj == nil {
			return m, nil
		}
		m.proj.setCurrentValue(m.input.Value())
		if m.proj.index >= len(projectFields())-1 {
			return m.saveProject()
		}
		m.proj.index++
		m.input.SetValue(m.proj.currentValue())
		m.input.Placeholder = m.proj.currentLabel()
		m.status = m.proj.prompt()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveProject() (tea.Model, tea.Cmd) {
	p, err := m.st.AddProject(m.proj.name, m.proj.description, m.proj.color)
	if err != nil {
		m.status = m.theme.Error.Render(userMessage(err))
		// back to the name field so the collision can be fixed
		m.proj.index = 0
		m.input.SetValue(m.proj.name)
		m.input.Placeholder = m.proj.currentLabel()
		return m, nil
	}
	m.proj = nil
	m.mode = modeList
	m.input.Blur()
	m.st.SetProjectView(p.ID)
	m.refresh()
	m.cursor = 0
	m.status = m.theme.Success.Render("Project created: " + p.Name)
	return m, nil
}

// ---- field parsing ----

func parseDue(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.ParseInLocation(layout, v, time.Local); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("want YYYY-MM-DD or YYYY-MM-DD HH:MM, got %q", v)
}

func formatDue(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format("2006-01-02 15:04")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseSubtasks(v string) []task.Subtask {
	parts := splitList(v)
	out := make([]task.Subtask, 0, len(parts))
	for _, p := range parts {
		st := task.Subtask{Title: p}
		if rest, ok := strings.CutPrefix(p, "[x]"); ok {
			st.Title = strings.TrimSpace(rest)
			st.Completed = true
		}
		if st.Title != "" {
			out = append(out, st)
		}
	}
	return out
}

func formatSubtasks(subs []task.Subtask) string {
	parts := make([]string, 0, len(subs))
	for _, st := range subs {
		if st.Completed {
			parts = append(parts, "[x] "+st.Title)
		} else {
			parts = append(parts, st.Title)
		}
	}
	return strings.Join(parts, ", ")
}
