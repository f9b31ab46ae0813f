package patch

import (
	"fmt"
	"io"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Change is the content of one file before and after autocorrect.
type Change struct {
	Path   string
	Before string
	After  string
}

// GenerateDiff converts file changes into diff-match-patch text suitable for
// writing to --diff-out, one "# patch for <path>" block per changed file.
// Every patch is checked against its Before text; one that does not apply
// cleanly is skipped with a warning written to w (may be nil).
func GenerateDiff(changes []Change, w io.Writer) string {
	if len(changes) == 0 {
		return ""
	}

	dmp := diffmatchpatch.New()
	var out strings.Builder

	for _, c := range changes {
		if c.Before == c.After {
			continue
		}
		diffs := dmp.DiffMain(c.Before, c.After, false)
		patchList := dmp.PatchMake(c.Before, diffs)
		patchText := dmp.PatchToText(patchList)
		if patchText == "" {
			continue
		}

		if got, ok := Apply(c.Before, patchText); !ok || got != c.After {
			if w != nil {
				fmt.Fprintf(w, "WARN: patch for %s does not reproduce the corrected file\n", c.Path)
			}
			continue
		}

		out.WriteString(fmt.Sprintf("# patch for %s\n", c.Path))
		out.WriteString(patchText)
		out.WriteString("\n")
	}

	return out.String()
}

// Apply applies diff-match-patch text to before. ok is false when the text
// does not parse or any hunk fails to apply.
func Apply(before, patchText string) (string, bool) {
	dmp := diffmatchpatch.New()
	patches, err := dmp.PatchFromText(patchText)
	if err != nil {
		return before, false
	}
	after, applied := dmp.PatchApply(patches, before)
	for _, ok := range applied {
		if !ok {
			return before, false
		}
	}
	return after, true
}
