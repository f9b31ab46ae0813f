package lint

import "sort"

// Edit replaces the bytes in [Start, End) with New.
type Edit struct {
	Start, End int
	New        string
}

// Apply returns src with edits applied. Edits are taken in offset order and
// one that overlaps an already accepted edit, or falls outside src, is
// skipped. applied reports, per input edit, whether it was used.
func Apply(src []byte, edits []Edit) (out []byte, applied []bool) {
	applied = make([]bool, len(edits))
	order := make([]int, len(edits))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ea, eb := edits[order[a]], edits[order[b]]
		if ea.Start != eb.Start {
			return ea.Start < eb.Start
		}
		return ea.End < eb.End
	})

	out = make([]byte, 0, len(src))
	pos := 0
	for _, i := range order {
		e := edits[i]
		if e.Start < pos || e.End < e.Start || e.End > len(src) {
			continue
		}
		out = append(out, src[pos:e.Start]...)
		out = append(out, e.New...)
		pos = e.End
		applied[i] = true
	}
	out = append(out, src[pos:]...)
	return out, applied
}
