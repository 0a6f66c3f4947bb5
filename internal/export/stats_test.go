package export

import (
	"testing"
	"time"

	"github.com/ingramleedy/AustroView/internal/flashlog"
)

func testSession() *flashlog.Session {
	start := time.Date(2024, time.March, 15, 10, 20, 30, 0, time.UTC)
	return &flashlog.Session{
		LeadInTime:  start,
		LeadOutTime: start.Add(3 * time.Second),
		Channels:    []int{800, 802, 806},
		Records: [][]float64{
			{1010, 1200, 45.5},
			{1015, 2310, 88.2},
			{1012, 1800, 86.1},
		},
		Timestamps: []time.Time{start, start.Add(time.Second), start.Add(2 * time.Second)},
	}
}

func TestStats(t *testing.T) {
	st := Stats(testSession())
	if st.Records != 3 {
		t.Errorf("Records = %d, want 3", st.Records)
	}
	if st.Duration != 3*time.Second {
		t.Errorf("Duration = %v, want 3s", st.Duration)
	}
	if !st.HasProp || st.MaxProp != 2310 {
		t.Errorf("MaxProp = %v (has=%v), want 2310", st.MaxProp, st.HasProp)
	}
	if !st.HasCoolant || st.MaxCoolant != 88.2 {
		t.Errorf("MaxCoolant = %v (has=%v), want 88.2", st.MaxCoolant, st.HasCoolant)
	}
}

func TestStatsMissingChannels(t *testing.T) {
	s := &flashlog.Session{
		Channels: []int{800, 801},
		Records:  [][]float64{{1, 2}},
	}
	st := Stats(s)
	if st.HasProp || st.HasCoolant {
		t.Fatalf("stats claim peaks without the channels present: %+v", st)
	}
}

func TestStatsNegativePeaks(t *testing.T) {
	s := &flashlog.Session{
		Channels: []int{806},
		Records:  [][]float64{{-30.5}, {-12.1}, {-25.0}},
	}
	st := Stats(s)
	if !st.HasCoolant || st.MaxCoolant != -12.1 {
		t.Fatalf("MaxCoolant = %v (has=%v), want -12.1", st.MaxCoolant, st.HasCoolant)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00:00"},
		{59 * time.Second, "0:00:59"},
		{time.Hour + time.Minute + time.Second, "1:01:01"},
		{26*time.Hour + 3*time.Minute + 7*time.Second, "26:03:07"},
	}
	for _, tc := range tests {
		if got := FormatDuration(tc.d); got != tc.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
