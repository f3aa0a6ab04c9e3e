package models

import "time"

// UnratedQuality marks a night whose quality has not been set yet.
const UnratedQuality = -1

// Valid quality ratings.
const (
	MinQuality = 0
	MaxQuality = 5
)

// SleepNight is one tracked sleep session. A night whose end equals its
// start is still in progress.
type SleepNight struct {
	ID             int64
	StartTimeMilli int64
	EndTimeMilli   int64
	SleepQuality   int
}

func NewSleepNight(now time.Time) *SleepNight {
	ms := now.UnixMilli()
	return &SleepNight{
		StartTimeMilli: ms,
		EndTimeMilli:   ms,
		SleepQuality:   UnratedQuality,
	}
}

func (n *SleepNight) InProgress() bool {
	return n.EndTimeMilli == n.StartTimeMilli
}

func (n *SleepNight) Rated() bool {
	return n.SleepQuality != UnratedQuality
}

func (n *SleepNight) Start() time.Time {
	return time.UnixMilli(n.StartTimeMilli)
}

func (n *SleepNight) End() time.Time {
	return time.UnixMilli(n.EndTimeMilli)
}

// Duration is zero while the night is in progress.
func (n *SleepNight) Duration() time.Duration {
	return time.Duration(n.EndTimeMilli-n.StartTimeMilli) * time.Millisecond
}
