// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Registry Backend - these keys locate the source registry API and bound its requests.
const (
	APIBaseURL = "api.base_url"
	APITimeout = "api.timeout"
)

// Session - these keys govern where the bearer token is read from.
const (
	SessionToken          = "session.token"
	SessionKeyringService = "session.keyring_service"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the dashboard's styling.
const (
	TUIItemSpacing = "tui.item_spacing"
	TUIShowURLs    = "tui.show_urls"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored = "cli.colored"
)
