package render

import (
	"bytes"
	"fmt"

	"github.com/dshills/inclusivity/internal/schema"
)

type textRenderer struct{}

// severityLetter follows the one-letter style of compiler and RuboCop output.
func severityLetter(s schema.Severity) string {
	switch s {
	case schema.SeverityCritical:
		return "E"
	case schema.SeverityInfo:
		return "I"
	}
	return "W"
}

func (r *textRenderer) Render(report *schema.Report) ([]byte, error) {
	var buf bytes.Buffer
	for _, f := range report.Files {
		if f.Error != "" {
			fmt.Fprintf(&buf, "%s: error: %s\n", f.Path, f.Error)
			continue
		}
		for _, o := range f.Offenses {
			mark := ""
			if o.Corrected {
				mark = "[Corrected] "
			} else if o.Correctable {
				mark = "[Correctable] "
			}
			fmt.Fprintf(&buf, "%s:%d:%d: %s: %s%s\n",
				f.Path, o.Location.Line, o.Location.Column, severityLetter(o.Severity), mark, o.Message)
		}
	}

	s := report.Summary
	fmt.Fprintf(&buf, "\n%d %s inspected, %d %s detected",
		s.Files, plural(s.Files, "file", "files"), s.Offenses, plural(s.Offenses, "offense", "offenses"))
	if s.Corrected > 0 {
		fmt.Fprintf(&buf, ", %d corrected", s.Corrected)
	} else if s.Correctable > 0 {
		fmt.Fprintf(&buf, ", %d autocorrectable", s.Correctable)
	}
	fmt.Fprintf(&buf, " (%s)\n", s.Verdict)
	return buf.Bytes(), nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
