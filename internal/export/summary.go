package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/ingramleedy/AustroView/internal/flashlog"
)

// WriteSummary renders the pilot-facing session overview table for one file.
func WriteSummary(w *strings.Builder, filename string, sessions []*flashlog.Session) {
	rule := strings.Repeat("=", 95)
	fmt.Fprintf(w, "\nAustroView Summary: %s\n", filename)
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, " %3s   %-20s%-20s%9s  %7s  %7s  %11s\n",
		"#", "Start", "End", "Duration", "Records", "Max RPM", "Max Coolant")
	fmt.Fprintf(w, " %3s   %s %s %s  %s  %s  %s\n",
		"---", strings.Repeat("-", 19), strings.Repeat("-", 19),
		strings.Repeat("-", 9), strings.Repeat("-", 7),
		strings.Repeat("-", 7), strings.Repeat("-", 11))

	totalSeconds := 0
	var latest time.Time
	for i, session := range sessions {
		if len(session.Records) == 0 {
			continue
		}
		st := Stats(session)
		start := "unknown"
		if !st.Start.IsZero() {
			start = st.Start.Format("2006-01-02 15:04")
		}
		end := "in progress"
		if !st.End.IsZero() {
			end = st.End.Format("2006-01-02 15:04")
		}
		coolant := "N/A"
		if st.HasCoolant {
			coolant = fmt.Sprintf("%.1f C", st.MaxCoolant)
		}
		fmt.Fprintf(w, " %3d   %-20s%-20s%9s  %7d  %7.0f  %11s\n",
			i+1, start, end, FormatDuration(st.Duration), st.Records, st.MaxProp, coolant)
		totalSeconds += st.Records
		if !st.Start.IsZero() && st.Start.After(latest) {
			latest = st.Start
		}
	}

	latestStr := "unknown"
	if !latest.IsZero() {
		latestStr = latest.Format("2006-01-02")
	}
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, " %d sessions | %s total engine time | Latest: %s\n\n",
		len(sessions), FormatDuration(time.Duration(totalSeconds)*time.Second), latestStr)
}

// Summary returns the overview table as a string.
func Summary(filename string, sessions []*flashlog.Session) string {
	var b strings.Builder
	WriteSummary(&b, filename, sessions)
	return b.String()
}
