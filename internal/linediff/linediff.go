// Package linediff implements a line-level LCS diff with a fixed backtrack
// order, so the same inputs always produce the same edit script.
package linediff

import (
	"fmt"
	"strings"
)

// Operation is the kind of a single diff step.
type Operation string

const (
	OpEqual  Operation = "equal"
	OpInsert Operation = "insert"
	OpDelete Operation = "delete"
)

// Op is one line of an edit script. OldLine and NewLine are 1-based; a line
// that exists on only one side has 0 for the other.
type Op struct {
	Operation Operation
	Text      string
	OldLine   int
	NewLine   int
}

// Stats tallies an edit script.
type Stats struct {
	Added     int
	Removed   int
	Unchanged int
}

// SplitLines splits s on "\n". The empty string has no lines.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Diff returns an edit script turning from into to.
//
// The table is the classic (m+1)x(n+1) LCS table. Backtracking starts at
// (m,n): matching lines are equal; otherwise an insert is taken when
// dp[i][j-1] >= dp[i-1][j], else a delete.
func Diff(from, to []string) []Op {
	m, n := len(from), len(to)

	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if from[i-1] == to[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}

	ops := make([]Op, 0, m+n)
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && from[i-1] == to[j-1]:
			ops = append(ops, Op{Operation: OpEqual, Text: from[i-1], OldLine: i, NewLine: j})
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			ops = append(ops, Op{Operation: OpInsert, Text: to[j-1], NewLine: j})
			j--
		default:
			ops = append(ops, Op{Operation: OpDelete, Text: from[i-1], OldLine: i})
			i--
		}
	}

	for l, r := 0, len(ops)-1; l < r; l, r = l+1, r-1 {
		ops[l], ops[r] = ops[r], ops[l]
	}
	return ops
}

// DiffText splits both texts and diffs them.
func DiffText(from, to string) []Op {
	return Diff(SplitLines(from), SplitLines(to))
}

// Apply replays ops against from and returns the target lines. It fails if
// an equal or delete step does not match from.
func Apply(from []string, ops []Op) ([]string, error) {
	out := make([]string, 0, len(from))
	pos := 0
	for k, op := range ops {
		switch op.Operation {
		case OpEqual, OpDelete:
			if pos >= len(from) || from[pos] != op.Text {
				return nil, fmt.Errorf("linediff: step %d (%s) does not match source line %d", k, op.Operation, pos+1)
			}
			if op.Operation == OpEqual {
				out = append(out, from[pos])
			}
			pos++
		case OpInsert:
			out = append(out, op.Text)
		default:
			return nil, fmt.Errorf("linediff: step %d: unknown operation %q", k, op.Operation)
		}
	}
	if pos != len(from) {
		return nil, fmt.Errorf("linediff: %d source lines not consumed", len(from)-pos)
	}
	return out, nil
}

// Count tallies ops.
func Count(ops []Op) Stats {
	var s Stats
	for _, op := range ops {
		switch op.Operation {
		case OpEqual:
			s.Unchanged++
		case OpInsert:
			s.Added++
		case OpDelete:
			s.Removed++
		}
	}
	return s
}

// Summary renders s as "+A -R =U".
func (s Stats) Summary() string {
	return fmt.Sprintf("+%d -%d =%d", s.Added, s.Removed, s.Unchanged)
}

// Identical reports whether the script contains no changes.
func (s Stats) Identical() bool {
	return s.Added == 0 && s.Removed == 0
}
