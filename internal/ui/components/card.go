package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// Row is one label/value line of a card.
type Row struct {
	Label string
	Value string
}

// Card renders a titled box of label/value rows with a status line.
// A zero Width lets the box size to its content.
type Card struct {
	Title  string
	Status string
	Level  Level
	Rows   []Row
	Notes  []string
	Width  int
	Styles *BaseStyles
}

// Render creates the card view
func (c *Card) Render() string {
	styles := c.Styles
	if styles == nil {
		styles = NewBaseStyles()
	}

	maxText := 0
	if c.Width > 0 {
		maxText = innerWidth(c.Width, 1)
	}
	fit := func(s string) string {
		if maxText == 0 {
			return s
		}
		return TruncateString(s, maxText)
	}

	labelWidth := 0
	for _, r := range c.Rows {
		if len(r.Label) > labelWidth {
			labelWidth = len(r.Label)
		}
	}

	lines := []string{styles.Title().Render(fit(c.Title))}
	if c.Status != "" {
		lines = append(lines, styles.StatusIndicator(fit(c.Status), c.Level))
	}
	if len(c.Rows) > 0 {
		lines = append(lines, "")
	}
	for _, r := range c.Rows {
		label := styles.Label().Render(fmt.Sprintf("%-*s", labelWidth, r.Label))
		lines = append(lines, label+"  "+styles.Value().Render(fit(r.Value)))
	}
	if len(c.Notes) > 0 {
		lines = append(lines, "")
	}
	for _, n := range c.Notes {
		lines = append(lines, styles.Muted().Render(fit(n)))
	}

	border := styles.Theme.Border
	if c.Level != LevelMuted {
		border = styles.Color(c.Level)
	}
	return styles.Box(c.Width, border).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// StatusLine renders a single icon-prefixed message
type StatusLine struct {
	Level   Level
	Message string
	Width   int
	Styles  *BaseStyles
}

// Render creates the status line view
func (s *StatusLine) Render() string {
	if s.Message == "" {
		return ""
	}

	styles := s.Styles
	if styles == nil {
		styles = NewBaseStyles()
	}

	content := fmt.Sprintf("%s %s", Icon(s.Level), s.Message)
	if s.Width > 0 {
		content = TruncateString(content, s.Width)
	}
	return styles.ForLevel(s.Level).Render(content)
}
