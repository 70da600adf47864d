package components

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color

	// Status colors
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color

	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
}

// DefaultTheme returns the default palette
func DefaultTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#00D9FF"), // Cyan
		Secondary: lipgloss.Color("#FFA500"), // Orange

		Success: lipgloss.Color("#0FD976"), // Green
		Warning: lipgloss.Color("#FFA500"), // Orange
		Error:   lipgloss.Color("#FF6B6B"), // Red
		Info:    lipgloss.Color("#00D9FF"), // Cyan

		Foreground: lipgloss.Color("#FFFFFF"),
		Muted:      lipgloss.Color("#666666"),
		Border:     lipgloss.Color("#333333"),
	}
}

// Level classifies a message for coloring and icons.
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
	LevelMuted
)

// BaseStyles provides common style builders
type BaseStyles struct {
	Theme    Theme
	renderer *lipgloss.Renderer
}

// NewBaseStyles creates style builders rendering for stdout
func NewBaseStyles() *BaseStyles {
	return &BaseStyles{Theme: DefaultTheme()}
}

// NewBaseStylesFor creates style builders bound to r, so color support is
// detected on r's output rather than on stdout.
func NewBaseStylesFor(r *lipgloss.Renderer) *BaseStyles {
	return &BaseStyles{Theme: DefaultTheme(), renderer: r}
}

func (s *BaseStyles) style() lipgloss.Style {
	if s.renderer != nil {
		return s.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// Title creates a title style
func (s *BaseStyles) Title() lipgloss.Style {
	return s.style().
		Bold(true).
		Foreground(s.Theme.Primary)
}

// Label creates a label style
func (s *BaseStyles) Label() lipgloss.Style {
	return s.style().
		Foreground(s.Theme.Primary)
}

// Value creates a value style
func (s *BaseStyles) Value() lipgloss.Style {
	return s.style().
		Foreground(s.Theme.Foreground)
}

// Muted creates a muted text style
func (s *BaseStyles) Muted() lipgloss.Style {
	return s.style().
		Foreground(s.Theme.Muted)
}

// Color returns the theme color for level.
func (s *BaseStyles) Color(level Level) lipgloss.Color {
	switch level {
	case LevelSuccess:
		return s.Theme.Success
	case LevelWarning:
		return s.Theme.Warning
	case LevelError:
		return s.Theme.Error
	case LevelMuted:
		return s.Theme.Muted
	default:
		return s.Theme.Info
	}
}

// ForLevel creates a bold message style in the level's color
func (s *BaseStyles) ForLevel(level Level) lipgloss.Style {
	return s.style().
		Foreground(s.Color(level)).
		Bold(true)
}

// Icon returns the plain icon for level.
func Icon(level Level) string {
	switch level {
	case LevelSuccess:
		return "✓"
	case LevelWarning:
		return "⚠"
	case LevelError:
		return "✗"
	case LevelMuted:
		return "·"
	default:
		return "ℹ"
	}
}

// StatusIndicator returns a styled status indicator
func (s *BaseStyles) StatusIndicator(status string, level Level) string {
	return s.ForLevel(level).Render("● " + status)
}

// Box creates a bordered box style
func (s *BaseStyles) Box(width int, borderColor lipgloss.Color) lipgloss.Style {
	style := s.style().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	if width > 0 {
		style = style.Width(width)
	}
	return style
}

// Spinner returns spinner frame
func (s *BaseStyles) Spinner(frame int) string {
	frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return s.style().
		Foreground(s.Theme.Primary).
		Bold(true).
		Render(frames[frame%len(frames)])
}

// Hint renders a hint/tip text
func (s *BaseStyles) Hint(text string) string {
	return s.style().
		Foreground(s.Theme.Muted).
		Italic(true).
		Render(text)
}
