// Package export renders decoded sessions as CSV spreadsheets, a text
// summary table and a PDF report.
package export

import (
	"fmt"
	"time"

	"github.com/ingramleedy/AustroView/internal/flashlog"
	"github.com/ingramleedy/AustroView/internal/signal"
)

// SessionStats is the per-session digest shown in the summary views.
type SessionStats struct {
	Start      time.Time
	End        time.Time
	Duration   time.Duration
	Records    int
	MaxProp    float64
	HasProp    bool
	MaxCoolant float64
	HasCoolant bool
}

// Stats scans a session for the summary figures: record count, implied
// duration and the peaks of propeller speed and coolant temperature.
func Stats(s *flashlog.Session) SessionStats {
	st := SessionStats{
		Start:    s.LeadInTime,
		End:      s.LeadOutTime,
		Duration: s.Duration(),
		Records:  len(s.Records),
	}
	propSlot, coolSlot := -1, -1
	for slot, code := range s.Channels {
		switch code {
		case signal.CodePropellerSpeed:
			propSlot = slot
		case signal.CodeCoolantTemperature:
			coolSlot = slot
		}
	}
	for _, rec := range s.Records {
		if propSlot >= 0 {
			if !st.HasProp || rec[propSlot] > st.MaxProp {
				st.MaxProp = rec[propSlot]
				st.HasProp = true
			}
		}
		if coolSlot >= 0 {
			if !st.HasCoolant || rec[coolSlot] > st.MaxCoolant {
				st.MaxCoolant = rec[coolSlot]
				st.HasCoolant = true
			}
		}
	}
	return st
}

// FormatDuration renders h:mm:ss.
func FormatDuration(d time.Duration) string {
	total := int(d.Seconds())
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}
