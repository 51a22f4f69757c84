package task

type NotificationType string

const (
	NotifyWarning NotificationType = "warning"
	NotifySuccess NotificationType = "success"
	NotifyInfo    NotificationType = "info"
)

type Notification struct {
	ID      int              `json:"id"`
	Type    NotificationType `json:"type"`
	Title   string           `json:"title"`
	Message string           `json:"message"`
	Time    string           `json:"time"`
	Read    bool             `json:"read"`
}

// SeedNotifications returns the fixed sample set shown on startup.
func SeedNotifications() []Notification {
	return []Notification{
		{ID: 1, Type: NotifyWarning, Title: "Task Due Soon", Message: `"Complete project report" is due tomorrow`, Time: "2 hours ago"},
		{ID: 2, Type: NotifySuccess, Title: "Task Completed", Message: `"Buy groceries" marked as completed`, Time: "5 hours ago", Read: true},
		{ID: 3, Type: NotifyInfo, Title: "New Project", Message: `New project "Website Redesign" created`, Time: "1 day ago", Read: true},
	}
}
