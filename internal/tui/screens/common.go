package screens

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emilianohg/sleeptracker/internal/models"
	"github.com/emilianohg/sleeptracker/internal/tracker"
)

const (
	ScreenTracker = "tracker"
	ScreenQuality = "quality"
)

// NavigateMsg is sent when navigation to another screen is requested
type NavigateMsg struct {
	Screen string
	Night  *models.SleepNight
}

func Navigate(screen string) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: screen}
	}
}

func NavigateWithNight(screen string, night *models.SleepNight) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Screen: screen, Night: night}
	}
}

// StateMsg carries a new tracker state to the screens.
type StateMsg struct {
	State tracker.State
}

// ActionDoneMsg is sent when a submitted tracker action finished.
type ActionDoneMsg struct {
	Action string
	Err    error
}

// waitFor blocks on the action outside the update loop. The action itself
// was already submitted, which keeps submissions in key press order.
func waitFor(name string, p *tracker.Pending) tea.Cmd {
	return func() tea.Msg {
		return ActionDoneMsg{Action: name, Err: p.Wait(context.Background())}
	}
}

// Styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginBottom(1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)

	SelectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)
)
