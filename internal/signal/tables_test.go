package signal

import (
	"math"
	"testing"
)

func TestLookupChannel(t *testing.T) {
	spec, ok := LookupChannel(CodeCoolantTemperature)
	if !ok {
		t.Fatal("coolant temperature channel missing")
	}
	if spec.Name != "Coolant Temperature" || spec.ClassIndex != 8 {
		t.Fatalf("spec = %+v", spec)
	}
	if _, ok := LookupChannel(999); ok {
		t.Fatal("unknown code must not resolve")
	}
}

func TestLookupClass(t *testing.T) {
	cls, ok := LookupClass(8)
	if !ok {
		t.Fatal("class 8 missing")
	}
	if cls.Coefficient != 0.1 || cls.Offset != -273.14 || cls.Unit != "deg C" {
		t.Fatalf("class 8 = %+v", cls)
	}
	if _, ok := LookupClass(-1); ok {
		t.Fatal("negative index must not resolve")
	}
	if _, ok := LookupClass(26); ok {
		t.Fatal("out of range index must not resolve")
	}
}

func TestCodes(t *testing.T) {
	codes := Codes()
	if len(codes) != 16 {
		t.Fatalf("got %d codes, want 16", len(codes))
	}
	for i, code := range codes {
		if code != 800+i {
			t.Fatalf("codes[%d] = %d, want %d", i, code, 800+i)
		}
	}
}

func TestHeader(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{800, "Boost Pressure [hPa]"},
		{802, "Propeller Speed [rpm]"},
		{806, "Coolant Temperature [deg C]"},
		{813, "Engine Status [bin]"},
		{999, "Channel 999"},
	}
	for _, tc := range tests {
		if got := Header(tc.code); got != tc.want {
			t.Errorf("Header(%d) = %q, want %q", tc.code, got, tc.want)
		}
	}
}

func TestDecimals(t *testing.T) {
	tests := []struct {
		code int
		want int
	}{
		{800, 0},  // class 6
		{802, 0},  // class 23
		{804, 1},  // class 11
		{806, 1},  // class 8
		{808, 1},  // class 1
		{812, 1},  // class 12
		{815, 1},  // class 15
		{999, 0},  // unknown
	}
	for _, tc := range tests {
		if got := Decimals(tc.code); got != tc.want {
			t.Errorf("Decimals(%d) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestClassTableComplete(t *testing.T) {
	if len(classes) != 26 {
		t.Fatalf("got %d classes, want 26", len(classes))
	}
	for code, spec := range channels {
		if _, ok := LookupClass(spec.ClassIndex); !ok {
			t.Errorf("channel %d references missing class %d", code, spec.ClassIndex)
		}
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
