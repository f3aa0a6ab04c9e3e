package screens

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/emilianohg/sleeptracker/internal/format"
	"github.com/emilianohg/sleeptracker/internal/models"
	"github.com/emilianohg/sleeptracker/internal/tracker"
)

const defaultQuality = 3

// Quality asks how well the night that just ended went.
type Quality struct {
	tracker *tracker.Tracker
	width   int
	height  int

	night  *models.SleepNight
	cursor int
	saving bool
	err    error
}

func NewQuality(t *tracker.Tracker) *Quality {
	return &Quality{
		tracker: t,
		cursor:  defaultQuality,
	}
}

func (q *Quality) SetSize(width, height int) {
	q.width = width
	q.height = height
}

func (q *Quality) SetNight(night *models.SleepNight) {
	q.night = night
	q.cursor = defaultQuality
	q.saving = false
	q.err = nil
}

func (q *Quality) Init() tea.Cmd {
	return nil
}

func (q *Quality) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case ActionDoneMsg:
		if msg.Action != "rate" {
			return nil
		}
		q.saving = false
		if msg.Err != nil {
			q.err = msg.Err
			return nil
		}
		return Navigate(ScreenTracker)

	case tea.KeyMsg:
		if q.saving {
			return nil
		}
		switch msg.String() {
		case "left", "h", "down", "j":
			if q.cursor > models.MinQuality {
				q.cursor--
			}
		case "right", "l", "up", "k":
			if q.cursor < models.MaxQuality {
				q.cursor++
			}
		case "0", "1", "2", "3", "4", "5":
			q.cursor = int(msg.String()[0] - '0')
			return q.rate()
		case "enter":
			return q.rate()
		case "esc", "q":
			return Navigate(ScreenTracker)
		}
	}
	return nil
}

func (q *Quality) rate() tea.Cmd {
	if q.night == nil {
		return Navigate(ScreenTracker)
	}
	q.saving = true
	q.err = nil
	return waitFor("rate", q.tracker.RateNight(q.night.ID, q.cursor))
}

func (q *Quality) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("HOW WAS YOUR SLEEP?"))
	b.WriteString("\n")
	if q.night != nil {
		b.WriteString(SubtitleStyle.Render(fmt.Sprintf("Slept %s", format.Duration(q.night.Duration()))))
	}
	b.WriteString("\n\n")

	for rating := models.MinQuality; rating <= models.MaxQuality; rating++ {
		label := fmt.Sprintf("%d  %s", rating, format.Quality(rating))
		if rating == q.cursor {
			b.WriteString(SelectedStyle.Render("> " + label))
		} else {
			b.WriteString(NormalStyle.Render("  " + label))
		}
		b.WriteString("\n")
	}

	if q.err != nil {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", q.err)))
		b.WriteString("\n")
	} else if q.saving {
		b.WriteString("\n")
		b.WriteString(DimStyle.Render("Saving..."))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render("[←/→] Choose  [0-5] Rate  [enter] Save  [esc] Skip"))

	return b.String()
}
