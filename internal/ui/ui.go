// Package ui is the terminal presentation layer. It reads snapshots
// from the domain store, renders them, and dispatches user intents back
// as store operations. It never touches the persisted documents
// directly.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/karankrtech-08/Nova-Task-Pro/internal/config"
	"github.com/karankrtech-08/Nova-Task-Pro/internal/store"
	"github.com/karankrtech-08/Nova-Task-Pro/internal/task"
)

type mode int

const (
	modeList mode = iota
	modeAdd
	modeEdit
	modeSearch
	modeProject
	modeNotify
)

const (
	searchDebounce = 300 * time.Millisecond
	openEditDelay  = 500 * time.Millisecond
)

// openEditorMsg fires shortly after a quick-add so the new task opens
// in the editor, mirroring the deferred modal of the original flow.
type openEditorMsg struct{ id string }

// searchDebounceMsg carries the sequence number of the keystroke that
// scheduled it; stale ticks are dropped.
type searchDebounceMsg struct{ seq int }

type Model struct {
	st  *store.Store
	cfg config.Config

	theme   Theme
	visible []task.Task
	cursor  int
	mode    mode
	input   textinput.Model
	status  string

	confirmDel bool
	pendingDel *task.Task

	edit *editState
	proj *projectState

	notifyCursor int
	searchSeq    int
	projectIdx   int
}

func Run(st *store.Store, cfg config.Config) error {
	ti := textinput.New()
	ti.Placeholder = "Task title"
	ti.CharLimit = 256
	ti.Width = 40

	m := Model{
		st:     st,
		cfg:    cfg,
		theme:  newTheme(st.Theme()),
		input:  ti,
		status: "Press 'a' to add, space to toggle, 'd' to delete.",
	}
	m.visible = st.Visible()

	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

func (m *Model) refresh() {
	m.visible = m.st.Visible()
	m.cursor = clampCursor(m.cursor, len(m.visible))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.mode {
		case modeAdd:
			return m.updateAddMode(msg.String(), msg)
		case modeEdit:
			return m.updateEditMode(msg.String(), msg)
		case modeSearch:
			return m.updateSearchMode(msg.String(), msg)
		case modeProject:
			return m.updateProjectMode(msg.String(), msg)
		case modeNotify:
			return m.updateNotifyMode(msg.String())
		}
		return m.updateListMode(msg.String())
	case tea.WindowSizeMsg:
		m.input.Width = msg.Width - 10
	case openEditorMsg:
		return m.startEditByID(msg.id)
	case searchDebounceMsg:
		if msg.seq == m.searchSeq {
			m.st.SetSearch(m.input.Value())
			m.refresh()
		}
	}
	return m, nil
}

// ---- quick add ----

func (m Model) updateAddMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.mode = modeList
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm:
		t, err := m.st.AddTask(m.input.Value())
		if err != nil {
			m.status = m.theme.Error.Render(userMessage(err))
			return m, nil
		}
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.refresh()
		m.cursor = 0
		m.status = m.theme.Success.Render("Task added")
		id := t.ID
		return m, tea.Tick(openEditDelay, func(time.Time) tea.Msg {
			return openEditorMsg{id: id}
		})
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

// ---- list mode ----

func (m Model) updateListMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		return m, tea.Quit
	case m.cfg.Keys.Down, "down":
		if len(m.visible) == 0 {
			return m, nil
		}
		m.cursor = clampCursor(m.cursor+1, len(m.visible))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.visible))
		}
	case m.cfg.Keys.Add:
		m.mode = modeAdd
		m.input.Placeholder = "Task title"
		m.input.SetValue("")
		m.input.Focus()
		m.status = "Add mode: type a title and press Enter"
	case m.cfg.Keys.Toggle:
		if len(m.visible) == 0 {
			return m, nil
		}
		t, ok := m.st.ToggleCompletion(m.visible[m.cursor].ID)
		if !ok {
			return m, nil
		}
		m.refresh()
		if t.Completed {
			m.status = m.theme.Success.Render("Task completed!")
		} else {
			m.status = "Task marked as pending"
		}
	case m.cfg.Keys.Delete:
		if len(m.visible) == 0 {
			return m, nil
		}
		t := m.visible[m.cursor]
		m.confirmDel = true
		m.pendingDel = &t
		m.status = fmt.Sprintf("Delete %q? y/n", t.Title)
	case m.cfg.Keys.Edit:
		if len(m.visible) == 0 {
			m.status = "No tasks to edit"
			return m, nil
		}
		return m.startEdit(m.visible[m.cursor])
	case m.cfg.Keys.Search:
		m.mode = modeSearch
		m.input.Placeholder = "Search tasks"
		m.input.SetValue(m.st.ViewState().Search)
		m.input.Focus()
		m.status = "Search: type to filter, Enter to keep, Esc to clear"
	case "1":
		return m.switchView(task.ViewDashboard)
	case "2":
		return m.switchView(task.ViewInbox)
	case "3":
		return m.switchView(task.ViewToday)
	case "4":
		return m.switchView(task.ViewUpcoming)
	case "5":
		return m.switchView(task.ViewCompleted)
	case "tab":
		return m.cycleProjectView()
	case m.cfg.Keys.CycleSort:
		m.st.SetSort(nextSort(m.st.ViewState().Sort))
		m.refresh()
		m.status = "Sorted by " + string(m.st.ViewState().Sort)
	case m.cfg.Keys.CyclePriority:
		f := m.st.ViewState().Filters
		f.Priority = nextPriorityFilter(f.Priority)
		m.st.SetFilters(f)
		m.refresh()
		m.status = "Priority filter: " + f.Priority
	case m.cfg.Keys.CycleStatus:
		f := m.st.ViewState().Filters
		f.Status = nextStatusFilter(f.Status)
		m.st.SetFilters(f)
		m.refresh()
		m.status = "Status filter: " + f.Status
	case m.cfg.Keys.CycleProject:
		f := m.st.ViewState().Filters
		f.Project = nextProjectFilter(f.Project, m.st.Projects())
		m.st.SetFilters(f)
		m.refresh()
		m.status = "Project filter: " + projectFilterLabel(f.Project, m.st)
	case m.cfg.Keys.NewProject:
		m.proj = &projectState{color: "#667eea"}
		m.input.Placeholder = m.proj.currentLabel()
		m.input.SetValue("")
		m.input.Focus()
		m.mode = modeProject
		m.status = "New project: Enter to advance, Esc to cancel"
	case m.cfg.Keys.Notifications:
		m.mode = modeNotify
		m.notifyCursor = 0
		m.status = "Notifications: Enter marks read, 'a' marks all, Esc closes"
	case m.cfg.Keys.Theme:
		next := "dark"
		if m.st.Theme() == "dark" {
			next = "light"
		}
		m.st.SetTheme(next)
		m.theme = newTheme(next)
		m.status = "Theme: " + next
	case m.cfg.Keys.ViewMode:
		next := "grid"
		if m.st.ViewMode() == "grid" {
			next = "list"
		}
		m.st.SetViewMode(next)
		m.status = "Display: " + next
	}
	return m, nil
}

func (m Model) switchView(v task.View) (tea.Model, tea.Cmd) {
	m.st.SetView(v)
	m.refresh()
	m.cursor = 0
	m.status = "View: " + m.viewTitle()
	return m, nil
}

func (m Model) cycleProjectView() (tea.Model, tea.Cmd) {
	projects := m.st.Projects()
	if len(projects) == 0 {
		return m, nil
	}
	if m.st.ViewState().View == task.ViewProject {
		m.projectIdx = (m.projectIdx + 1) % len(projects)
	} else {
		m.projectIdx = 0
	}
	p := projects[m.projectIdx]
	m.st.SetProjectView(p.ID)
	m.refresh()
	m.cursor = 0
	m.status = "Project: " + p.Name
	return m, nil
}

// ---- search ----

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel:
		m.st.SetSearch("")
		m.input.SetValue("")
		m.input.Blur()
		m.mode = modeList
		m.refresh()
		m.status = "Search cleared"
		return m, nil
	case m.cfg.Keys.Confirm:
		m.st.SetSearch(m.input.Value())
		m.input.Blur()
		m.mode = modeList
		m.refresh()
		m.cursor = 0
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.searchSeq++
		seq := m.searchSeq
		debounce := tea.Tick(searchDebounce, func(time.Time) tea.Msg {
			return searchDebounceMsg{seq: seq}
		})
		return m, tea.Batch(cmd, debounce)
	}
}

// ---- delete confirmation ----

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", m.cfg.Keys.Cancel:
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel != nil {
			m.st.DeleteTask(m.pendingDel.ID)
			m.refresh()
			m.status = "Task deleted"
		}
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

// ---- notifications ----

func (m Model) updateNotifyMode(key string) (tea.Model, tea.Cmd) {
	notes := m.st.Notifications()
	switch key {
	case m.cfg.Keys.Cancel, m.cfg.Keys.Quit, m.cfg.Keys.Notifications:
		m.mode = modeList
		m.status = ""
	case m.cfg.Keys.Down, "down":
		m.notifyCursor = clampCursor(m.notifyCursor+1, len(notes))
	case m.cfg.Keys.Up, "up":
		if m.notifyCursor > 0 {
			m.notifyCursor = clampCursor(m.notifyCursor-1, len(notes))
		}
	case m.cfg.Keys.Confirm:
		if m.notifyCursor < len(notes) {
			m.st.MarkNotificationRead(notes[m.notifyCursor].ID)
		}
	case "a":
		m.st.MarkAllNotificationsRead()
		m.status = "All notifications read"
	}
	return m, nil
}

// ---- view ----

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.mode {
	case modeNotify:
		b.WriteString(m.renderNotifications())
	case modeEdit:
		b.WriteString(m.renderWizard("Edit task", m.edit.currentLabel(), m.edit.prompt()))
	case modeProject:
		b.WriteString(m.renderWizard("New project", m.proj.currentLabel(), m.proj.prompt()))
	default:
		if m.st.ViewState().View == task.ViewDashboard {
			b.WriteString(m.renderDashboard())
			b.WriteString("\n")
		}
		b.WriteString(m.renderTaskList())
		if m.mode == modeAdd {
			b.WriteString("\nAdd Task: ")
			b.WriteString(m.input.View())
			b.WriteString("\n")
		}
		if m.mode == modeSearch {
			b.WriteString("\nSearch: ")
			b.WriteString(m.input.View())
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.status)
	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func (m Model) renderHeader() string {
	stats := m.st.Stats()
	title := m.theme.Title.Render("NovaTask · " + m.viewTitle())
	badges := fmt.Sprintf("inbox %d · today %d · upcoming %d · done %d",
		stats.Inbox, stats.DueToday, stats.Upcoming, stats.Completed)
	line := title + "   " + m.theme.Muted.Render(badges)
	if stats.UnreadNotifications > 0 {
		line += "   " + m.theme.Badge.Render(fmt.Sprintf("● %d unread", stats.UnreadNotifications))
	}
	return line + "\n"
}

func (m Model) viewTitle() string {
	vs := m.st.ViewState()
	switch vs.View {
	case task.ViewInbox:
		return "Inbox"
	case task.ViewToday:
		return "Today"
	case task.ViewUpcoming:
		return "Upcoming"
	case task.ViewCompleted:
		return "Completed"
	case task.ViewProject:
		if p, ok := m.st.ProjectByID(vs.Project); ok {
			return p.Name
		}
		return "Project"
	}
	return "Dashboard"
}

func (m Model) renderDashboard() string {
	s := m.st.Stats()
	lines := []string{
		fmt.Sprintf("Total %d   Completed %d   Pending %d   Overdue %d",
			s.Total, s.Completed, s.Pending, s.Overdue),
		fmt.Sprintf("Completion %d%%   Streak %d", s.CompletionRate, s.Streak),
	}
	return m.theme.Panel.Render(strings.Join(lines, "\n"))
}

func (m Model) renderTaskList() string {
	if len(m.visible) == 0 {
		return m.theme.Muted.Render("No tasks here. Press 'a' to add one.")
	}
	now := time.Now()
	compact := m.st.ViewMode() == "grid"
	var b strings.Builder
	for i, t := range m.visible {
		b.WriteString(m.renderTaskRow(t, i == m.cursor && m.mode == modeList, now))
		if !compact && t.Description != "" {
			b.WriteString("\n      ")
			b.WriteString(m.theme.Muted.Render(t.Description))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderTaskRow(t task.Task, selected bool, now time.Time) string {
	cursor := "  "
	if selected {
		cursor = m.theme.Selected.Render("> ")
	}

	checkbox := boxUnchecked
	title := t.Title
	if t.Completed {
		checkbox = m.theme.Success.Render(boxChecked)
		title = m.theme.Done.Render(title)
	}
	flag := m.theme.Priority(t.Priority).Render("⚑" + string(t.Priority))

	extras := make([]string, 0, 4)
	if t.DueDate != nil {
		due := humanize.Time(*t.DueDate)
		if t.Overdue(now) {
			due = m.theme.Overdue.Render("overdue, " + due)
		}
		extras = append(extras, due)
	}
	if p, ok := m.st.ProjectByID(t.Project); ok && p.ID != task.InboxID {
		extras = append(extras, p.Name)
	}
	for _, tag := range t.Tags {
		extras = append(extras, "#"+tag)
	}
	if n := len(t.Subtasks); n > 0 {
		done := 0
		for _, st := range t.Subtasks {
			if st.Completed {
				done++
			}
		}
		extras = append(extras, fmt.Sprintf("%d/%d", done, n))
	}

	row := fmt.Sprintf("%s%s %s %s", cursor, checkbox, title, flag)
	if len(extras) > 0 {
		row += " " + m.theme.Muted.Render("["+strings.Join(extras, " | ")+"]")
	}
	return row
}

func (m Model) renderNotifications() string {
	notes := m.st.Notifications()
	var b strings.Builder
	b.WriteString(m.theme.Title.Render("Notifications"))
	b.WriteString("\n")
	for i, n := range notes {
		cursor := "  "
		if i == m.notifyCursor {
			cursor = m.theme.Selected.Render("> ")
		}
		marker := "●"
		if n.Read {
			marker = " "
		}
		line := fmt.Sprintf("%s%s %s: %s %s", cursor, m.theme.Badge.Render(marker),
			n.Title, n.Message, m.theme.Muted.Render("("+n.Time+")"))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return m.theme.Panel.Render(b.String())
}

func (m Model) renderWizard(title, label, prompt string) string {
	var b strings.Builder
	b.WriteString(m.theme.Title.Render(title) + ": " + label)
	b.WriteString("\n")
	b.WriteString(prompt)
	b.WriteString("\n")
	b.WriteString(m.input.View())
	return m.theme.Panel.Render(b.String())
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s add • %s toggle • %s edit • %s delete • %s search • 1-5/tab views • %s sort • %s/%s/%s filters • %s project • %s notifications • %s theme • %s display • %s quit",
		k.Up, k.Down, k.Add, k.Toggle, k.Edit, k.Delete, k.Search,
		k.CycleSort, k.CyclePriority, k.CycleStatus, k.CycleProject,
		k.NewProject, k.Notifications, k.Theme, k.ViewMode, k.Quit)
}

// ---- cycling helpers ----

func nextSort(k task.SortKey) task.SortKey {
	switch k {
	case task.SortDueDate:
		return task.SortPriority
	case task.SortPriority:
		return task.SortCreatedAt
	case task.SortCreatedAt:
		return task.SortTitle
	}
	return task.SortDueDate
}

func nextPriorityFilter(cur string) string {
	order := []string{task.FilterAll, "urgent", "high", "medium", "low"}
	return nextIn(order, cur)
}

func nextStatusFilter(cur string) string {
	return nextIn([]string{task.FilterAll, "pending", "completed"}, cur)
}

func nextProjectFilter(cur string, projects []task.Project) string {
	order := make([]string, 0, len(projects)+1)
	order = append(order, task.FilterAll)
	for _, p := range projects {
		order = append(order, p.ID)
	}
	return nextIn(order, cur)
}

func nextIn(order []string, cur string) string {
	for i, v := range order {
		if v == cur {
			return order[(i+1)%len(order)]
		}
	}
	return order[0]
}

func projectFilterLabel(id string, st *store.Store) string {
	if id == task.FilterAll {
		return id
	}
	if p, ok := st.ProjectByID(id); ok {
		return p.Name
	}
	return id
}

func userMessage(err error) string {
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		return ve.Msg
	}
	return err.Error()
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
