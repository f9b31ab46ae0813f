package source

import (
	"fmt"
	"os"
	"sort"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

// File holds a loaded source file with derived metadata.
type File struct {
	Path      string
	Hash      string // "xxh64:<hex>"
	Raw       []byte // original content
	LineCount int

	lineStarts []int // byte offset of the first byte of each line
}

// Load reads a source file from disk and indexes its lines.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading source file: %w", err)
	}
	return NewFile(path, data), nil
}

// NewFile wraps already-read content.
func NewFile(path string, data []byte) *File {
	starts := indexLines(data)
	lineCount := len(starts)
	// A trailing newline does not open a new line.
	if len(data) > 0 && data[len(data)-1] == '\n' {
		lineCount--
	}
	return &File{
		Path:       path,
		Hash:       Hash(data),
		Raw:        data,
		LineCount:  lineCount,
		lineStarts: starts,
	}
}

// Hash returns the content fingerprint used in reports.
func Hash(data []byte) string {
	return fmt.Sprintf("xxh64:%016x", xxhash.Sum64(data))
}

// Position converts a byte offset into a 1-based line and a 1-based column
// counted in runes. Offsets past the end clamp to the end of the file.
func (f *File) Position(offset int) (line, column int) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.Raw) {
		offset = len(f.Raw)
	}
	i := sort.Search(len(f.lineStarts), func(i int) bool { return f.lineStarts[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	start := f.lineStarts[i]
	return i + 1, utf8.RuneCount(f.Raw[start:offset]) + 1
}

func indexLines(data []byte) []int {
	starts := []int{0}
	for i, b := range data {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}
