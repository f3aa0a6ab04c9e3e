package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/emilianohg/sleeptracker/internal/format"
	"github.com/emilianohg/sleeptracker/internal/tracker"
	"github.com/emilianohg/sleeptracker/internal/tui/screens"
)

type Screen int

const (
	ScreenTracker Screen = iota
	ScreenQuality
)

// eventsReadyMsg means the tracker queued one-shot events.
type eventsReadyMsg struct{}

type App struct {
	tracker       *tracker.Tracker
	currentScreen Screen
	width         int
	height        int

	// Screen models
	trackerScreen *screens.Tracker
	quality       *screens.Quality

	updates     chan tracker.State
	unsubscribe func()
}

func NewApp(t *tracker.Tracker, formatter format.Formatter) *App {
	return &App{
		tracker:       t,
		currentScreen: ScreenTracker,
		trackerScreen: screens.NewTracker(t, formatter),
		quality:       screens.NewQuality(t),
		updates:       make(chan tracker.State, 1),
	}
}

func (a *App) Init() tea.Cmd {
	a.unsubscribe = a.tracker.Subscribe(a.offer)

	return tea.Batch(
		a.waitForState(),
		a.waitForEvents(),
		a.trackerScreen.Init(),
	)
}

// offer keeps only the newest state; the UI does not need the ones in between.
func (a *App) offer(s tracker.State) {
	for {
		select {
		case a.updates <- s:
			return
		default:
		}
		select {
		case <-a.updates:
		default:
		}
	}
}

func (a *App) waitForState() tea.Cmd {
	return func() tea.Msg {
		return screens.StateMsg{State: <-a.updates}
	}
}

func (a *App) waitForEvents() tea.Cmd {
	events := a.tracker.Events()
	return func() tea.Msg {
		<-events
		return eventsReadyMsg{}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, a.quit()
		case "q":
			if a.currentScreen == ScreenTracker {
				return a, a.quit()
			}
			// Let individual screens handle 'q' for going back
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.trackerScreen.SetSize(msg.Width, msg.Height)
		a.quality.SetSize(msg.Width, msg.Height)

	case screens.StateMsg:
		// The tracker screen follows the state even while hidden
		return a, tea.Batch(a.trackerScreen.Update(msg), a.waitForState())

	case screens.ActionDoneMsg:
		// Stop finishes after the quality screen opened; its error belongs to the tracker screen
		if a.currentScreen == ScreenQuality {
			return a, tea.Batch(a.trackerScreen.Update(msg), a.quality.Update(msg))
		}

	case eventsReadyMsg:
		return a.handleEvents()

	case screens.NavigateMsg:
		return a.handleNavigation(msg)
	}

	// Update current screen
	var cmd tea.Cmd
	switch a.currentScreen {
	case ScreenTracker:
		cmd = a.trackerScreen.Update(msg)
	case ScreenQuality:
		cmd = a.quality.Update(msg)
	}

	return a, cmd
}

func (a *App) handleEvents() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{a.waitForEvents()}
	for _, e := range a.tracker.DrainEvents() {
		switch e.Kind {
		case tracker.EventNavigateToQuality:
			cmds = append(cmds, screens.NavigateWithNight(screens.ScreenQuality, e.Night))
		case tracker.EventCleared:
			a.trackerScreen.SetStatus(screens.ClearedMessage)
		}
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleNavigation(msg screens.NavigateMsg) (tea.Model, tea.Cmd) {
	switch msg.Screen {
	case screens.ScreenTracker:
		a.currentScreen = ScreenTracker
		return a, a.trackerScreen.Init()
	case screens.ScreenQuality:
		a.currentScreen = ScreenQuality
		a.quality.SetNight(msg.Night)
		return a, a.quality.Init()
	}
	return a, nil
}

func (a *App) quit() tea.Cmd {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	return tea.Quit
}

func (a *App) View() string {
	var content string

	switch a.currentScreen {
	case ScreenTracker:
		content = a.trackerScreen.View()
	case ScreenQuality:
		content = a.quality.View()
	}

	return lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Render(content)
}

func Run(t *tracker.Tracker, formatter format.Formatter) error {
	app := NewApp(t, formatter)
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
