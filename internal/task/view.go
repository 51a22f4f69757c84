package task

// View is a named predicate selecting which tasks are visible.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewInbox     View = "inbox"
	ViewToday     View = "today"
	ViewUpcoming  View = "upcoming"
	ViewCompleted View = "completed"
	ViewProject   View = "project"
)

type SortKey string

const (
	SortDueDate   SortKey = "dueDate"
	SortPriority  SortKey = "priority"
	SortCreatedAt SortKey = "createdAt"
	SortTitle     SortKey = "title"
)

// FilterAll leaves an attribute filter unset.
const FilterAll = "all"

type Filters struct {
	Priority string `json:"priority"`
	Status   string `json:"status"`
	Project  string `json:"project"`
}

func DefaultFilters() Filters {
	return Filters{Priority: FilterAll, Status: FilterAll, Project: FilterAll}
}

// ViewState is everything that determines which tasks are visible:
// the current view, the project it refers to (view == project only),
// the sort key, the attribute filters and the free-text search query.
type ViewState struct {
	View    View
	Project string
	Sort    SortKey
	Filters Filters
	Search  string
}

func DefaultViewState() ViewState {
	return ViewState{
		View:    ViewDashboard,
		Sort:    SortDueDate,
		Filters: DefaultFilters(),
	}
}

// Settings is the persisted snapshot of the view state plus the theme,
// stored as its own document alongside tasks and projects.
type Settings struct {
	CurrentView    View    `json:"currentView"`
	CurrentProject string  `json:"currentProject"`
	CurrentSort    SortKey `json:"currentSort"`
	Filters        Filters `json:"filters"`
	Theme          string  `json:"theme"`
}
