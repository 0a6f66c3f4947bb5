package common

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// sha256 of "abc", a fixed vector.
const abcSHA256 = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"

func TestSha256OfBytes(t *testing.T) {
	if got := Sha256OfBytes([]byte("abc")); got != abcSHA256 {
		t.Fatalf("Sha256OfBytes = %s, want %s", got, abcSHA256)
	}
}

func TestSha256OfFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.bin")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	sum, size, err := Sha256OfFile(path)
	if err != nil {
		t.Fatalf("Sha256OfFile: %v", err)
	}
	if sum != abcSHA256 {
		t.Errorf("sum = %s, want %s", sum, abcSHA256)
	}
	if size != 3 {
		t.Errorf("size = %d, want 3", size)
	}
}

func TestSha256OfFileMissing(t *testing.T) {
	if _, _, err := Sha256OfFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("missing file must error")
	}
}

// safeBuffer is a goroutine-safe bytes sink for the progress printer test.
type safeBuffer struct {
	mu  sync.Mutex
	buf []byte
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf = append(b.buf, p...)
	return len(p), nil
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return string(b.buf)
}
