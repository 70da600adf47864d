package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/caioricciuti/plugin-updater/internal/ui/components"
)

const tickInterval = 100 * time.Millisecond

// tickMsg advances the spinner and re-polls the check
type tickMsg time.Time

func doTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// CheckModel shows a spinner while a background check runs and the summary
// card once it finished. It quits by itself when done is closed.
type CheckModel struct {
	src    StatusSource
	done   <-chan struct{}
	styles *components.BaseStyles

	frame    int
	width    int
	finished bool
}

// NewCheckModel creates the view for a check started elsewhere; done is
// typically the check task's Done channel.
func NewCheckModel(src StatusSource, done <-chan struct{}) *CheckModel {
	return &CheckModel{
		src:    src,
		done:   done,
		styles: components.NewBaseStyles(),
	}
}

func (m *CheckModel) Init() tea.Cmd {
	return doTick()
}

func (m *CheckModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
		return m, nil

	case tickMsg:
		select {
		case <-m.done:
			m.finished = true
			return m, tea.Quit
		default:
		}
		m.frame++
		return m, doTick()
	}
	return m, nil
}

func (m *CheckModel) View() string {
	if !m.finished {
		return m.styles.Spinner(m.frame) + " " + Headline(m.src.Result()) + "\n" +
			m.styles.Hint("press q to stop waiting") + "\n"
	}

	width := 0
	if m.width > 0 && m.width < 72 {
		width = m.width - 2
	}
	return SummaryCard(m.src, m.styles, width).Render() + "\n"
}

// Finished reports whether the check completed while the view was running.
func (m *CheckModel) Finished() bool {
	return m.finished
}
