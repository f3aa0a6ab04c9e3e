package format

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emilianohg/sleeptracker/internal/models"
)

func TestNights_Empty(t *testing.T) {
	f := Formatter{Location: time.UTC}

	assert.Equal(t, NoDataText, f.Nights(nil))
	assert.Equal(t, NoDataText, f.Nights([]models.SleepNight{}))
}

func TestNights_CompletedAndInProgress(t *testing.T) {
	f := Formatter{Layout: "2006-01-02 15:04", Location: time.UTC}
	start := time.Date(2026, 3, 1, 22, 0, 0, 0, time.UTC)

	nights := []models.SleepNight{
		{ID: 2, StartTimeMilli: start.Add(24 * time.Hour).UnixMilli(), EndTimeMilli: start.Add(24 * time.Hour).UnixMilli(), SleepQuality: models.UnratedQuality},
		{ID: 1, StartTimeMilli: start.UnixMilli(), EndTimeMilli: start.Add(7*time.Hour + 30*time.Minute + 5*time.Second).UnixMilli(), SleepQuality: 4},
	}

	out := f.Nights(nights)

	assert.True(t, strings.HasPrefix(out, Title))
	assert.Contains(t, out, "Start:\t2026-03-02 22:00\n\t(in progress)")
	assert.Contains(t, out, "Start:\t2026-03-01 22:00")
	assert.Contains(t, out, "End:\t2026-03-02 05:30")
	assert.Contains(t, out, "Quality:\tPretty good")
	assert.Contains(t, out, "Hours:Minutes:Seconds\t7:30:05")

	// Most recent night is rendered first
	assert.Less(t, strings.Index(out, "2026-03-02 22:00"), strings.Index(out, "2026-03-01 22:00"))
}

func TestQuality(t *testing.T) {
	tests := []struct {
		quality int
		want    string
	}{
		{models.UnratedQuality, "--"},
		{0, "Very bad"},
		{1, "Poor"},
		{2, "So-so"},
		{3, "OK"},
		{4, "Pretty good"},
		{5, "Excellent"},
		{6, "--"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Quality(tt.quality), "quality %d", tt.quality)
	}
}

func TestDuration(t *testing.T) {
	assert.Equal(t, "0:00:00", Duration(0))
	assert.Equal(t, "0:01:05", Duration(65*time.Second))
	assert.Equal(t, "8:00:00", Duration(8*time.Hour))
	assert.Equal(t, "25:10:00", Duration(25*time.Hour+10*time.Minute))
	assert.Equal(t, "0:00:00", Duration(-time.Second))
}
