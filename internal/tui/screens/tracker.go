package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/sleeptracker/internal/format"
	"github.com/emilianohg/sleeptracker/internal/tracker"
)

// ClearedMessage is shown once after all nights were deleted.
const ClearedMessage = "All your data is gone forever."

type trackerKeys struct {
	Start key.Binding
	Stop  key.Binding
	Clear key.Binding
	Quit  key.Binding
}

func newTrackerKeys() trackerKeys {
	return trackerKeys{
		Start: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start")),
		Stop:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "stop")),
		Clear: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k trackerKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Clear, k.Quit}
}

func (k trackerKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type Tracker struct {
	tracker   *tracker.Tracker
	formatter format.Formatter
	width     int
	height    int

	state    tracker.State
	loaded   bool
	viewport viewport.Model
	keys     trackerKeys
	help     help.Model
	busy     bool
	status   string
	err      error
}

func NewTracker(t *tracker.Tracker, formatter format.Formatter) *Tracker {
	s := &Tracker{
		tracker:   t,
		formatter: formatter,
		viewport:  viewport.New(60, 15),
		keys:      newTrackerKeys(),
		help:      help.New(),
	}
	s.applyState(tracker.State{StartVisible: true, NightsText: format.NoDataText})
	return s
}

func (s *Tracker) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.viewport.Width = max(20, width-4)
	s.viewport.Height = max(5, height-10)
}

// SetStatus shows a one-line notification until the next action.
func (s *Tracker) SetStatus(status string) {
	s.status = status
}

func (s *Tracker) Init() tea.Cmd {
	s.busy = true
	return waitFor("refresh", s.tracker.Refresh())
}

func (s *Tracker) applyState(state tracker.State) {
	s.state = state
	s.keys.Start.SetEnabled(state.StartVisible)
	s.keys.Stop.SetEnabled(state.StopVisible)
	s.keys.Clear.SetEnabled(state.ClearVisible)
	s.viewport.SetContent(state.NightsText)
}

func (s *Tracker) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case StateMsg:
		s.loaded = true
		s.applyState(msg.State)
		return nil

	case ActionDoneMsg:
		// Ratings report on the quality screen
		if msg.Action == "rate" {
			return nil
		}
		s.busy = false
		// A clean refresh keeps the last action's error visible
		if msg.Err != nil || msg.Action != "refresh" {
			s.err = msg.Err
		}
		return nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keys.Start):
			return s.submit("start", s.tracker.StartTracking)
		case key.Matches(msg, s.keys.Stop):
			return s.submit("stop", s.tracker.StopTracking)
		case key.Matches(msg, s.keys.Clear):
			return s.submit("clear", s.tracker.Clear)
		}
	}

	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	return cmd
}

func (s *Tracker) submit(name string, action func() *tracker.Pending) tea.Cmd {
	s.busy = true
	s.status = ""
	s.err = nil
	return waitFor(name, action())
}

func (s *Tracker) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("TRACK MY SLEEP QUALITY"))
	b.WriteString("\n")

	switch {
	case !s.loaded:
		b.WriteString(SubtitleStyle.Render("Loading..."))
	case s.state.Tonight != nil:
		b.WriteString(WarningStyle.Render(fmt.Sprintf("Sleeping since %s",
			s.formatter.Time(s.state.Tonight.Start()))))
	default:
		b.WriteString(SubtitleStyle.Render("Not tracking"))
	}
	b.WriteString("\n\n")

	b.WriteString(BoxStyle.Render(s.viewport.View()))
	b.WriteString("\n")

	if s.err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", s.err)))
		b.WriteString("\n")
	} else if s.status != "" {
		b.WriteString(SuccessStyle.Render(s.status))
		b.WriteString("\n")
	} else if s.busy {
		b.WriteString(DimStyle.Render("Working..."))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render(s.help.View(s.keys)))

	return b.String()
}
