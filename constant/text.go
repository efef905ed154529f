package constant

// Dashboard texts shown to the operator.
const (
	DashboardTitle  = "Grundrisse Admin Dashboard"
	SourcesTitle    = "Content Sources"
	LoadingSources  = "Loading sources..."
	NoSources       = `No sources added yet. Click "Add Source" to get started.`
	ConfirmDelete   = "Are you sure you want to delete this source?"
	AddSourceLabel  = "Add Source"
	CancelLabel     = "Cancel"
	NamePlaceholder = "e.g., Tech Channel"
	URLPlaceholder  = "https://www.youtube.com/channel/..."
	WelcomeFormat   = "Welcome, %s"
)

// Source status labels and the class names that style them.
const (
	StatusActive        = "Active"
	StatusInactive      = "Inactive"
	StatusClassActive   = "active"
	StatusClassInactive = "inactive"
)
