package schema

// Report is the top-level output structure of a check run.
type Report struct {
	Tool    string       `json:"tool"`
	Version string       `json:"version"`
	Input   Input        `json:"input"`
	Summary Summary      `json:"summary"`
	Files   []FileResult `json:"files"`
	Meta    Meta         `json:"meta"`
}

// Input captures the parameters used for this run.
type Input struct {
	Paths             []string `json:"paths"`
	Config            string   `json:"config"` // empty when built-in defaults were used
	Profile           string   `json:"profile"`
	Autocorrect       bool     `json:"autocorrect"`
	SeverityThreshold string   `json:"severity_threshold"`
}

// Summary holds the computed verdict and offense counts.
// Counts always reflect all offenses before any --severity-threshold filtering.
type Summary struct {
	Verdict       Verdict `json:"verdict"`
	Files         int     `json:"files"`
	Offenses      int     `json:"offenses"`
	Correctable   int     `json:"correctable"`
	Corrected     int     `json:"corrected"`
	CriticalCount int     `json:"critical_count"`
	WarnCount     int     `json:"warn_count"`
	InfoCount     int     `json:"info_count"`
}

// Meta holds runtime metadata about the engine.
type Meta struct {
	Terms          int `json:"terms"`
	AllowlistTerms int `json:"allowlist_terms"`
}

// Severity levels for offenses.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarn     Severity = "WARN"
	SeverityCritical Severity = "CRITICAL"
)

// ParseSeverity converts a config or flag value (any case) to a Severity.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "info", "INFO":
		return SeverityInfo, true
	case "warn", "WARN", "warning":
		return SeverityWarn, true
	case "critical", "CRITICAL":
		return SeverityCritical, true
	}
	return "", false
}

// SeverityOrdinal orders severities: INFO(0) < WARN(1) < CRITICAL(2).
// Returns -1 for an unrecognised severity.
func SeverityOrdinal(s Severity) int {
	switch s {
	case SeverityInfo:
		return 0
	case SeverityWarn:
		return 1
	case SeverityCritical:
		return 2
	}
	return -1
}

// Verdict represents the overall result of a run.
type Verdict string

const (
	VerdictPass Verdict = "PASS"
	VerdictWarn Verdict = "WARN"
	VerdictFail Verdict = "FAIL"
)

// VerdictOrdinal returns the numeric ordering for a verdict, used by --fail-on
// comparison. PASS(0) < WARN(1) < FAIL(2).
// Returns -1 for an unrecognised verdict.
func VerdictOrdinal(v Verdict) int {
	switch v {
	case VerdictPass:
		return 0
	case VerdictWarn:
		return 1
	case VerdictFail:
		return 2
	default:
		return -1
	}
}

// FileResult holds the offenses found in one file.
type FileResult struct {
	Path     string    `json:"path"`
	Hash     string    `json:"hash"` // "xxh64:<hex>" of the content as read
	Language string    `json:"language"`
	Offenses []Offense `json:"offenses"`
	Error    string    `json:"error,omitempty"`
}

// Offense is one flagged occurrence of a banned term.
type Offense struct {
	Term         string   `json:"term"`
	Text         string   `json:"text"`
	Message      string   `json:"message"`
	Alternatives []string `json:"alternatives"`
	Correction   string   `json:"correction"` // source text that replaces Location's range
	Kind         string   `json:"kind"`
	Severity     Severity `json:"severity"`
	Correctable  bool     `json:"correctable"`
	Corrected    bool     `json:"corrected"`
	Location     Location `json:"location"`
}

// Location is a 1-based line/column plus the byte range in the file.
// Column counts runes, not bytes.
type Location struct {
	Line        int `json:"line"`
	Column      int `json:"column"`
	StartOffset int `json:"start_offset"`
	EndOffset   int `json:"end_offset"`
}
