package align

import (
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/coolbeans/stepdiff/pkg/lcs"
	"github.com/coolbeans/stepdiff/pkg/table"
)

// Status classifies one aligned row pair.
type Status int

const (
	// StatusUnchanged indicates the row matched with identical content.
	StatusUnchanged Status = iota
	// StatusAdded indicates the row exists only in the revised document.
	StatusAdded
	// StatusDeleted indicates the row exists only in the original document.
	StatusDeleted
	// StatusModified indicates the row matched but its content changed.
	StatusModified
)

// String returns the string representation of a Status.
func (s Status) String() string {
	switch s {
	case StatusAdded:
		return "ADDED"
	case StatusDeleted:
		return "DELETED"
	case StatusModified:
		return "MODIFIED"
	case StatusUnchanged:
		return "UNCHANGED"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON implements json.Marshaler for Status.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Pair is one entry of the alignment edit script. Original is nil for added
// rows and Revised is nil for deleted rows; both are set otherwise. ID is a
// stable identifier for list rendering.
type Pair struct {
	ID       string       `json:"id"`
	Status   Status       `json:"status"`
	Original table.Record `json:"original,omitempty"`
	Revised  table.Record `json:"revised,omitempty"`
}

// Stats aggregates the non-unchanged pair counts.
type Stats struct {
	Added    int `json:"added"`
	Deleted  int `json:"deleted"`
	Modified int `json:"modified"`
}

// Result is a complete comparison: the merged column set, the ordered pair
// list forming a valid edit script, and the aggregate counts.
type Result struct {
	Mode    Mode     `json:"mode"`
	Columns []string `json:"columns"`
	Pairs   []Pair   `json:"pairs"`
	Stats   Stats    `json:"stats"`
}

// ErrEmptyComparison reports that neither document produced any records.
var ErrEmptyComparison = errors.New(
	"nothing to compare: no test steps were reconstructed from either document " +
		"(expected a table whose header row contains \"Step Order\", \"Procedure\" and \"Expected Outcome\")")

// Align matches the two record sequences with a longest-common-subsequence
// pass using the mode's Equal relation as the oracle, then classifies every
// record into the resulting edit script in original document order. Matched
// pairs are UNCHANGED when ContentEqual holds (categories always are) and
// MODIFIED otherwise. Align never mutates its inputs; re-running it with a
// different mode on the same sequences is side-effect-free.
func Align(original, revised *table.RecordSequence, mode Mode) (*Result, error) {
	if len(original.Records) == 0 && len(revised.Records) == 0 {
		return nil, ErrEmptyComparison
	}

	policy := PolicyFor(mode)
	script := lcs.Diff(original.Records, revised.Records, policy.Equal)

	result := &Result{
		Mode:    mode,
		Columns: mergeColumns(original.Columns, revised.Columns),
		Pairs:   make([]Pair, 0, len(script)),
	}
	for _, edit := range script {
		pair := Pair{ID: uuid.NewString()}
		switch edit.Op {
		case lcs.OpInsert:
			pair.Status = StatusAdded
			pair.Revised = revised.Records[edit.B]
			result.Stats.Added++
		case lcs.OpDelete:
			pair.Status = StatusDeleted
			pair.Original = original.Records[edit.A]
			result.Stats.Deleted++
		default:
			pair.Original = original.Records[edit.A]
			pair.Revised = revised.Records[edit.B]
			if policy.ContentEqual(pair.Original, pair.Revised) {
				pair.Status = StatusUnchanged
			} else {
				pair.Status = StatusModified
				result.Stats.Modified++
			}
		}
		result.Pairs = append(result.Pairs, pair)
	}
	return result, nil
}

// mergeColumns unions the two column lists, keeping first-seen order.
func mergeColumns(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	merged := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, col := range list {
			if !seen[col] {
				seen[col] = true
				merged = append(merged, col)
			}
		}
	}
	return merged
}
