package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.rb")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_LineCount(t *testing.T) {
	path := writeTempSource(t, "line one\nline two\nline three\n")

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.LineCount != 3 {
		t.Errorf("LineCount = %d, want 3", f.LineCount)
	}
	if string(f.Raw) != "line one\nline two\nline three\n" {
		t.Errorf("Raw = %q", f.Raw)
	}
}

func TestLoad_LineCountNoTrailingNewline(t *testing.T) {
	// 5 lines, no trailing newline
	path := writeTempSource(t, "a\nb\nc\nd\ne")

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.LineCount != 5 {
		t.Errorf("LineCount = %d, want 5", f.LineCount)
	}
}

func TestLoad_HashStable(t *testing.T) {
	path := writeTempSource(t, "hello world\n")

	f1, err := Load(path)
	if err != nil {
		t.Fatalf("Load (first): %v", err)
	}
	f2, err := Load(path)
	if err != nil {
		t.Fatalf("Load (second): %v", err)
	}

	if f1.Hash != f2.Hash {
		t.Errorf("hash not stable: %q vs %q", f1.Hash, f2.Hash)
	}
	if !strings.HasPrefix(f1.Hash, "xxh64:") {
		t.Errorf("hash missing xxh64 prefix: %q", f1.Hash)
	}
	if f1.Hash == Hash([]byte("hello world")) {
		t.Error("hash should depend on every byte")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/path/source.rb")
	if err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestPosition(t *testing.T) {
	f := NewFile("x.rb", []byte("foo\n  über blacklist\nbar"))

	tests := []struct {
		offset    int
		line, col int
	}{
		{0, 1, 1},
		{3, 1, 4},
		{4, 2, 1},
		{6, 2, 3},
		{12, 2, 8}, // "blacklist" after the two-byte ü
		{22, 3, 1},
		{100, 3, 4},
	}
	for _, tt := range tests {
		line, col := f.Position(tt.offset)
		if line != tt.line || col != tt.col {
			t.Errorf("Position(%d) = %d:%d, want %d:%d", tt.offset, line, col, tt.line, tt.col)
		}
	}
}
