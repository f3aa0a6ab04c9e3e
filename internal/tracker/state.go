package tracker

import "github.com/emilianohg/sleeptracker/internal/models"

// State is what the view layer renders.
type State struct {
	Tonight    *models.SleepNight
	Nights     []models.SleepNight
	NightsText string

	StartVisible bool
	StopVisible  bool
	ClearVisible bool
}

func newState(tonight *models.SleepNight, nights []models.SleepNight, format Formatter) State {
	return State{
		Tonight:      tonight,
		Nights:       nights,
		NightsText:   format(nights),
		StartVisible: tonight == nil,
		StopVisible:  tonight != nil,
		ClearVisible: len(nights) > 0,
	}
}

// clone detaches the snapshot from the tracker's copy.
func (s State) clone() State {
	if s.Tonight != nil {
		night := *s.Tonight
		s.Tonight = &night
	}
	if s.Nights != nil {
		s.Nights = append([]models.SleepNight(nil), s.Nights...)
	}
	return s
}

type EventKind int

const (
	// EventNavigateToQuality fires after tracking stops; Night is the finished night.
	EventNavigateToQuality EventKind = iota + 1
	// EventCleared fires after all nights were deleted.
	EventCleared
)

func (k EventKind) String() string {
	switch k {
	case EventNavigateToQuality:
		return "navigate_to_quality"
	case EventCleared:
		return "cleared"
	}
	return "unknown"
}

type Event struct {
	Kind  EventKind
	Night *models.SleepNight
}
