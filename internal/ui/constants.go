package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconStop     = "⏹"
	IconPending  = "⏳"
	IconWorking  = "⚙"
	IconDone     = "✓"
	IconError    = "❌"
	IconPlaylist = "🎵"
	IconSearch   = "🔍"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	DashPlaceholder     = "—"
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	StatusLabelWidth  float32 = 110
	SpeedLabelWidth   float32 = 130
	PercentLabelWidth float32 = 48

	RowMinWidth  float32 = 400
	RowMinHeight float32 = 64

	WindowWidth  float32 = 860
	WindowHeight float32 = 680

	SettingsDialogWidth  float32 = 500
	SettingsDialogHeight float32 = 460
	HistoryDialogWidth   float32 = 640
	HistoryDialogHeight  float32 = 420
	PlaylistListHeight   float32 = 140
)

// Behaviour
const (
	HistoryLimit     = 50
	InfoFetchTimeout = 60 * time.Second
)
