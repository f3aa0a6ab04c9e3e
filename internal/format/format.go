// Package format renders sleep nights as display text.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/emilianohg/sleeptracker/internal/models"
)

const (
	NoDataText = "No sleep data recorded yet."
	Title      = "Here is your sleep data"
)

var qualityLabels = map[int]string{
	0: "Very bad",
	1: "Poor",
	2: "So-so",
	3: "OK",
	4: "Pretty good",
	5: "Excellent",
}

// Formatter turns nights into text. Zero values fall back to
// time.Local and a default layout.
type Formatter struct {
	Layout   string
	Location *time.Location
}

func New(layout string) Formatter {
	return Formatter{Layout: layout}
}

// Nights expects nights most recent first, the way the repository returns them.
func (f Formatter) Nights(nights []models.SleepNight) string {
	if len(nights) == 0 {
		return NoDataText
	}

	var b strings.Builder
	b.WriteString(Title)
	b.WriteString("\n")
	for _, n := range nights {
		b.WriteString("\n")
		fmt.Fprintf(&b, "Start:\t%s\n", f.Time(n.Start()))
		if n.InProgress() {
			b.WriteString("\t(in progress)\n")
			continue
		}
		fmt.Fprintf(&b, "End:\t%s\n", f.Time(n.End()))
		fmt.Fprintf(&b, "Quality:\t%s\n", Quality(n.SleepQuality))
		fmt.Fprintf(&b, "Hours:Minutes:Seconds\t%s\n", Duration(n.Duration()))
	}
	return b.String()
}

func (f Formatter) Time(t time.Time) string {
	layout := f.Layout
	if layout == "" {
		layout = "Mon Jan 02 2006 15:04"
	}
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(layout)
}

// Quality returns the label for a rating, "--" when unrated or out of range.
func Quality(quality int) string {
	if label, ok := qualityLabels[quality]; ok {
		return label
	}
	return "--"
}

// Duration renders d as h:mm:ss.
func Duration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%d:%02d:%02d", total/3600, (total/60)%60, total%60)
}
