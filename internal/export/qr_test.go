package export

import (
	"bytes"
	"testing"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G'}

func TestDigestToQR(t *testing.T) {
	digest := "a3f1c2d4e5b697a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2d3e4f5a6b7c8d9e0f1a2"
	png, err := DigestToQR(digest, 256)
	if err != nil {
		t.Fatalf("DigestToQR: %v", err)
	}
	if !bytes.HasPrefix(png, pngMagic) {
		t.Fatalf("output is not a PNG: % X", png[:8])
	}
}

func TestDigestToQRSanitizes(t *testing.T) {
	png, err := DigestToQR("  ab:cd EF-01 \n", 0)
	if err != nil {
		t.Fatalf("DigestToQR: %v", err)
	}
	if len(png) == 0 {
		t.Fatal("empty PNG")
	}
}

func TestDigestToQREmpty(t *testing.T) {
	if _, err := DigestToQR(":::", 128); err == nil {
		t.Fatal("digest with no hex content must error")
	}
}

func TestSanitizeHash(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abcdef", "ABCDEF"},
		{"  12:34-ef  ", "1234EF"},
		{"ghij", ""},
	}
	for _, tc := range tests {
		if got := sanitizeHash(tc.in); got != tc.want {
			t.Errorf("sanitizeHash(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
