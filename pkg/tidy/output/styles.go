package output

import "github.com/charmbracelet/lipgloss"

// Color constants using ANSI 256-color palette.
const (
	// ColorPrimary is used for primary elements like headers (bright blue).
	ColorPrimary = lipgloss.Color("39")

	// ColorSuccess is used for positive status indicators (green).
	ColorSuccess = lipgloss.Color("42")

	// ColorWarning is used for warnings and skip counts (orange/yellow).
	ColorWarning = lipgloss.Color("214")

	// ColorDanger is used for errors and failure counts (red).
	ColorDanger = lipgloss.Color("196")

	// ColorMuted is used for less important or secondary text (gray).
	ColorMuted = lipgloss.Color("245")
)

// Text styles for various content types.
var (
	// TitleStyle is used for the report heading.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	// LabelStyle is used for field labels (e.g., "Source:", "Mode:").
	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	// SuccessStyle renders succeeded counts.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	// WarningStyle renders skipped counts and dry-run banners.
	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	// DangerStyle renders failed counts and error messages.
	DangerStyle = lipgloss.NewStyle().
			Foreground(ColorDanger)
)
