package table

import (
	"fmt"

	"github.com/coolbeans/stepdiff/pkg/richtext"
)

// HeaderNotFoundError reports that no row of a grid qualifies as the header
// row.
type HeaderNotFoundError struct {
	Document string
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("%s: no header row containing %q, %q and %q",
		e.Document, ColumnStepOrder, ColumnProcedure, ColumnExpectedOutcome)
}

// Reconstruct rebuilds logical records from a raw grid.
//
// The first row whose normalized cell texts contain all required column
// names becomes the header row; its normalized texts, in order, become the
// column keys, and rows above it are ignored. Each later row zips
// positionally onto the column keys (missing trailing cells become empty
// fragments) and is classified:
//
//   - a category row (no step order, procedure only) is emitted as its own
//     record and closes the current attachment target;
//   - a step row (step order present) is emitted and becomes the new
//     attachment target;
//   - any other row is a continuation: its non-empty raw fragments are
//     appended onto the corresponding fields of the attachment target. A
//     continuation with no target is emitted standalone rather than
//     dropped.
func Reconstruct(grid Grid, document string) (*RecordSequence, error) {
	headerIdx := -1
	var columns []string
	for i, row := range grid {
		if hasRequiredColumns(row) {
			headerIdx = i
			columns = make([]string, len(row))
			for j, cell := range row {
				columns[j] = richtext.Normalize(cell)
			}
			break
		}
	}
	if headerIdx < 0 {
		return nil, &HeaderNotFoundError{Document: document}
	}

	seq := &RecordSequence{Columns: columns}
	target := -1 // index into seq.Records receiving continuation content
	for _, row := range grid[headerIdx+1:] {
		rec := zipRecord(columns, row)
		switch {
		case rec.IsCategory():
			seq.Records = append(seq.Records, rec)
			target = -1
		case rec.isStep():
			seq.Records = append(seq.Records, rec)
			target = len(seq.Records) - 1
		case target >= 0:
			prev := seq.Records[target]
			for _, col := range columns {
				if rec[col] != "" {
					prev[col] += rec[col]
				}
			}
		default:
			// Orphan continuation: nothing to extend, keep the row.
			seq.Records = append(seq.Records, rec)
		}
	}
	return seq, nil
}

// zipRecord pairs column keys with a row's cells positionally. Missing
// trailing cells map to empty fragments; cells beyond the header width are
// dropped.
func zipRecord(columns []string, row []string) Record {
	rec := make(Record, len(columns))
	for j, col := range columns {
		if j < len(row) {
			rec[col] = row[j]
		} else {
			rec[col] = ""
		}
	}
	return rec
}
