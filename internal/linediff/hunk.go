package linediff

// DefaultContext is the number of unchanged lines kept around each change.
const DefaultContext = 3

// Hunk is a run of changes with surrounding context. Start lines are 1-based;
// when a side has no lines in the hunk its start is the line before the
// change, following the unified diff convention.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Ops      []Op
}

// Hunks groups consecutive non-equal ops into hunks carrying up to context
// equal lines on either side. Hunks whose context would overlap are merged.
// A negative context means DefaultContext.
func Hunks(ops []Op, context int) []Hunk {
	if context < 0 {
		context = DefaultContext
	}

	// Ranges [start,end) of ops to emit, merged when close enough.
	type span struct{ start, end int }
	var spans []span
	for k, op := range ops {
		if op.Operation == OpEqual {
			continue
		}
		start := max(k-context, 0)
		end := min(k+1+context, len(ops))
		if n := len(spans); n > 0 && start <= spans[n-1].end {
			spans[n-1].end = end
			continue
		}
		spans = append(spans, span{start, end})
	}
	if len(spans) == 0 {
		return nil
	}

	// oldBefore[k]/newBefore[k]: lines consumed on each side before op k.
	oldBefore := make([]int, len(ops)+1)
	newBefore := make([]int, len(ops)+1)
	for k, op := range ops {
		oldBefore[k+1] = oldBefore[k]
		newBefore[k+1] = newBefore[k]
		if op.Operation != OpInsert {
			oldBefore[k+1]++
		}
		if op.Operation != OpDelete {
			newBefore[k+1]++
		}
	}

	hunks := make([]Hunk, 0, len(spans))
	for _, s := range spans {
		h := Hunk{
			OldLines: oldBefore[s.end] - oldBefore[s.start],
			NewLines: newBefore[s.end] - newBefore[s.start],
			Ops:      ops[s.start:s.end],
		}
		h.OldStart = oldBefore[s.start]
		if h.OldLines > 0 {
			h.OldStart++
		}
		h.NewStart = newBefore[s.start]
		if h.NewLines > 0 {
			h.NewStart++
		}
		hunks = append(hunks, h)
	}
	return hunks
}
