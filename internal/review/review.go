package review

import "github.com/dshills/inclusivity/internal/schema"

// Verdict computes the verdict from all offenses of a run.
// Any CRITICAL offense fails the run; any other offense yields WARN.
// Verdict is always computed before any --severity-threshold filtering.
func Verdict(files []schema.FileResult) schema.Verdict {
	critical, warn, info := Counts(files)
	switch {
	case critical > 0:
		return schema.VerdictFail
	case warn > 0, info > 0:
		return schema.VerdictWarn
	}
	return schema.VerdictPass
}

// Counts returns the pre-filter critical, warn, and info counts over all files.
func Counts(files []schema.FileResult) (critical, warn, info int) {
	for _, f := range files {
		for _, o := range f.Offenses {
			switch o.Severity {
			case schema.SeverityCritical:
				critical++
			case schema.SeverityWarn:
				warn++
			case schema.SeverityInfo:
				info++
			}
		}
	}
	return
}

// Summarize fills a Summary from all files of a run.
func Summarize(files []schema.FileResult) schema.Summary {
	s := schema.Summary{
		Verdict: Verdict(files),
		Files:   len(files),
	}
	s.CriticalCount, s.WarnCount, s.InfoCount = Counts(files)
	for _, f := range files {
		for _, o := range f.Offenses {
			s.Offenses++
			if o.Correctable {
				s.Correctable++
			}
			if o.Corrected {
				s.Corrected++
			}
		}
	}
	return s
}

// FilterBySeverity returns copies of files keeping only offenses at or above
// the given threshold severity. Files left without offenses are kept so the
// report still lists everything that was scanned.
func FilterBySeverity(files []schema.FileResult, threshold schema.Severity) []schema.FileResult {
	if threshold == schema.SeverityInfo {
		return files
	}
	out := make([]schema.FileResult, len(files))
	for i, f := range files {
		kept := make([]schema.Offense, 0, len(f.Offenses))
		for _, o := range f.Offenses {
			if meetsSeverity(o.Severity, threshold) {
				kept = append(kept, o)
			}
		}
		f.Offenses = kept
		out[i] = f
	}
	return out
}

func meetsSeverity(s, threshold schema.Severity) bool {
	return schema.SeverityOrdinal(s) >= schema.SeverityOrdinal(threshold)
}

// Outstanding returns copies of files without the offenses that were
// corrected.
func Outstanding(files []schema.FileResult) []schema.FileResult {
	out := make([]schema.FileResult, len(files))
	for i, f := range files {
		kept := make([]schema.Offense, 0, len(f.Offenses))
		for _, o := range f.Offenses {
			if !o.Corrected {
				kept = append(kept, o)
			}
		}
		f.Offenses = kept
		out[i] = f
	}
	return out
}
