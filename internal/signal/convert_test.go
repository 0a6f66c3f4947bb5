package signal

import (
	"testing"

	"github.com/ingramleedy/AustroView/internal/flashlog"
)

func TestConvert(t *testing.T) {
	session := &flashlog.Session{
		Channels: []int{802, 806, 999},
		Records: [][]float64{
			{1800, 3000, 42},
		},
	}
	Convert([]*flashlog.Session{session})

	rec := session.Records[0]
	if rec[0] != 1800 { // class 23: coefficient 1, offset 0
		t.Errorf("propeller speed = %v, want 1800", rec[0])
	}
	if !almostEqual(rec[1], 0.1*3000-273.14) { // class 8
		t.Errorf("coolant = %v, want %v", rec[1], 0.1*3000-273.14)
	}
	if rec[2] != 42 {
		t.Errorf("unknown channel = %v, want raw 42 untouched", rec[2])
	}
}

func TestConvertNotIdempotent(t *testing.T) {
	session := &flashlog.Session{
		Channels: []int{806},
		Records:  [][]float64{{3000}},
	}
	Convert([]*flashlog.Session{session})
	once := session.Records[0][0]
	Convert([]*flashlog.Session{session})
	twice := session.Records[0][0]
	if almostEqual(once, twice) {
		t.Fatalf("second pass left value unchanged at %v; the transform must be applied exactly once", once)
	}
	if !almostEqual(twice, 0.1*once-273.14) {
		t.Fatalf("second pass = %v, want %v", twice, 0.1*once-273.14)
	}
}

func TestConvertEmpty(t *testing.T) {
	Convert(nil)
	Convert([]*flashlog.Session{{}})
}
