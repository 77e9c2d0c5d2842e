// Package lcs computes longest-common-subsequence edit scripts over slices.
// It is the shared alignment kernel for row matching and word-level diffing,
// so the backtracking tie-break exists in exactly one place.
package lcs

// Op classifies a single step of an edit script.
type Op int

const (
	// OpMatch pairs an element of the original with one of the revised.
	OpMatch Op = iota
	// OpDelete consumes an element of the original only.
	OpDelete
	// OpInsert consumes an element of the revised only.
	OpInsert
)

// Edit is one step of an edit script. A is the original index (-1 for
// OpInsert) and B the revised index (-1 for OpDelete).
type Edit struct {
	Op Op
	A  int
	B  int
}

// Diff returns an edit script transforming a into b, in original order,
// using eq as the equality oracle. Backtracking consumes the revised-side
// element on ties, so a replaced run of equal length always reads
// delete-then-insert in the returned script.
func Diff[T any](a, b []T, eq func(T, T) bool) []Edit {
	m, n := len(a), len(b)

	counts := make([][]int, m+1)
	for i := range counts {
		counts[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			switch {
			case eq(a[i-1], b[j-1]):
				counts[i][j] = counts[i-1][j-1] + 1
			case counts[i][j-1] >= counts[i-1][j]:
				counts[i][j] = counts[i][j-1]
			default:
				counts[i][j] = counts[i-1][j]
			}
		}
	}

	var script []Edit
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && eq(a[i-1], b[j-1]):
			script = append(script, Edit{Op: OpMatch, A: i - 1, B: j - 1})
			i--
			j--
		case j > 0 && (i == 0 || counts[i][j-1] >= counts[i-1][j]):
			script = append(script, Edit{Op: OpInsert, A: -1, B: j - 1})
			j--
		default:
			script = append(script, Edit{Op: OpDelete, A: i - 1, B: -1})
			i--
		}
	}

	// The script was collected back-to-front.
	for l, r := 0, len(script)-1; l < r; l, r = l+1, r-1 {
		script[l], script[r] = script[r], script[l]
	}
	return script
}
