package common

import (
	"strings"
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()
	m.Start()
	m.AddSector(65538)
	m.AddSector(65538)
	m.AddSector(0) // ignored
	m.AddBytes(100)
	m.AddBytes(-5) // ignored
	m.AddSession(10)
	m.AddSession(3)
	m.SetTotalBytes(1 << 20)
	m.Stop()

	snap := m.Snapshot()
	if snap.Bytes != 2*65538+100 {
		t.Errorf("Bytes = %d", snap.Bytes)
	}
	if snap.Sectors != 2 {
		t.Errorf("Sectors = %d", snap.Sectors)
	}
	if snap.Sessions != 2 || snap.Records != 13 {
		t.Errorf("Sessions = %d, Records = %d", snap.Sessions, snap.Records)
	}
	if snap.TotalBytes != 1<<20 {
		t.Errorf("TotalBytes = %d", snap.TotalBytes)
	}
	if snap.Duration < 0 {
		t.Errorf("Duration = %v", snap.Duration)
	}
}

func TestMetricsStopFreezesDuration(t *testing.T) {
	m := NewMetrics()
	m.Start()
	m.Stop()
	d1 := m.Snapshot().Duration
	time.Sleep(5 * time.Millisecond)
	d2 := m.Snapshot().Duration
	if d1 != d2 {
		t.Fatalf("duration moved after Stop: %v != %v", d1, d2)
	}
}

func TestSnapshotCompletion(t *testing.T) {
	tests := []struct {
		name string
		snap MetricsSnapshot
		want float64
	}{
		{name: "no total", snap: MetricsSnapshot{Bytes: 10}, want: 0},
		{name: "half", snap: MetricsSnapshot{Bytes: 50, TotalBytes: 100}, want: 0.5},
		{name: "clamped", snap: MetricsSnapshot{Bytes: 150, TotalBytes: 100}, want: 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.snap.Completion(); got != tc.want {
				t.Fatalf("Completion = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestThroughput(t *testing.T) {
	snap := MetricsSnapshot{Bytes: 2048, Duration: 2 * time.Second}
	if got := snap.ThroughputBytesPerSecond(); got != 1024 {
		t.Fatalf("throughput = %v, want 1024", got)
	}
	if got := (MetricsSnapshot{Bytes: 10}).ThroughputBytesPerSecond(); got != 0 {
		t.Fatalf("zero duration throughput = %v, want 0", got)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.00 KiB"},
		{3 << 20, "3.00 MiB"},
		{5 << 30, "5.00 GiB"},
	}
	for _, tc := range tests {
		if got := FormatBytes(tc.in); got != tc.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStartProgressPrinter(t *testing.T) {
	m := NewMetrics()
	m.Start()
	m.SetTotalBytes(1000)
	m.AddBytes(250)

	var buf safeBuffer
	stop := StartProgressPrinter(&buf, m, 5*time.Millisecond)
	time.Sleep(30 * time.Millisecond)
	stop()

	out := buf.String()
	if !strings.Contains(out, "Progress:") {
		t.Fatalf("no progress lines written: %q", out)
	}
	if !strings.Contains(out, "25.00%") {
		t.Fatalf("completion not rendered: %q", out)
	}
}

func TestStartProgressPrinterNilSafe(t *testing.T) {
	stop := StartProgressPrinter(nil, nil, 0)
	stop()
}
