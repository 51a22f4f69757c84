package task

import "time"

// InboxID is the reserved default project. It always exists and cannot
// be deleted.
const InboxID = "inbox"

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Color       string    `json:"color"`
	Icon        string    `json:"icon"`
	CreatedAt   time.Time `json:"createdAt,omitempty"`
}

// DefaultProjects is the project set seeded on first run.
func DefaultProjects() []Project {
	return []Project{
		{ID: InboxID, Name: "Inbox", Color: "#667eea", Description: "Default tasks folder", Icon: "inbox"},
		{ID: "work", Name: "Work", Color: "#4facfe", Description: "Work-related tasks", Icon: "briefcase"},
		{ID: "personal", Name: "Personal", Color: "#43e97b", Description: "Personal tasks", Icon: "user"},
		{ID: "shopping", Name: "Shopping", Color: "#fa709a", Description: "Shopping list", Icon: "cart"},
	}
}
