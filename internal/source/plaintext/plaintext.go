// Package plaintext treats every whitespace-delimited word of a prose file
// as a comment word.
package plaintext

import (
	"context"

	"github.com/dshills/inclusivity/internal/fragment"
	"github.com/dshills/inclusivity/internal/source"
)

func init() {
	source.DefaultRegistry.Register("text", []string{".md", ".markdown", ".txt", ".rst"}, Extractor{})
}

// Extractor splits a whole file into words.
type Extractor struct{}

// Extract returns one CommentWord fragment per word of src.
func (Extractor) Extract(ctx context.Context, _ string, src []byte) ([]fragment.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fragment.Words(string(src), 0), nil
}
