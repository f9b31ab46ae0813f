package render

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/dshills/inclusivity/internal/schema"
)

type markdownRenderer struct{}

var mdTemplate = template.Must(template.New("report").Parse(`# Inclusivity Report

**Verdict:** {{ .Summary.Verdict }}
**Files:** {{ .Summary.Files }} | **Offenses:** {{ .Summary.Offenses }} | **Corrected:** {{ .Summary.Corrected }}
**Critical:** {{ .Summary.CriticalCount }} | **Warn:** {{ .Summary.WarnCount }} | **Info:** {{ .Summary.InfoCount }}
> Note: counts reflect all offenses; --severity-threshold may hide some from this output.
{{ range .Files }}{{ if or .Offenses .Error }}
---

## {{ .Path }}
{{ if .Error }}
**Error:** {{ .Error }}
{{ end }}{{ range .Offenses }}
- L{{ .Location.Line }}:{{ .Location.Column }} · {{ .Severity }} · {{ .Kind }}{{ if .Corrected }} · corrected{{ end }}
  {{ .Message }}
{{ end }}{{ end }}{{ end }}
---
*{{ .Tool }} {{ .Version }} | Profile: {{ .Input.Profile }} | Terms: {{ .Meta.Terms }}*
`))

func (r *markdownRenderer) Render(report *schema.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, report); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}
