package report

import (
	"encoding/json"
	"io"

	"github.com/coolbeans/stepdiff/pkg/align"
	"github.com/coolbeans/stepdiff/pkg/worddiff"
)

// jsonPair mirrors align.Pair with per-cell word diffs attached for
// modified rows.
type jsonPair struct {
	align.Pair
	CellDiffs map[string][]worddiff.Segment `json:"cell_diffs,omitempty"`
}

type jsonReport struct {
	Mode    align.Mode  `json:"mode"`
	Columns []string    `json:"columns"`
	Stats   align.Stats `json:"stats"`
	Pairs   []jsonPair  `json:"pairs"`
}

// WriteJSON writes the full comparison as indented JSON, including word
// diffs for every modified cell that actually differs.
func WriteJSON(w io.Writer, result *align.Result) error {
	out := jsonReport{
		Mode:    result.Mode,
		Columns: result.Columns,
		Stats:   result.Stats,
		Pairs:   make([]jsonPair, 0, len(result.Pairs)),
	}
	for _, pair := range result.Pairs {
		jp := jsonPair{Pair: pair}
		for _, column := range result.Columns {
			if !NeedsWordDiff(pair, column) {
				continue
			}
			if jp.CellDiffs == nil {
				jp.CellDiffs = make(map[string][]worddiff.Segment)
			}
			jp.CellDiffs[column] = worddiff.Diff(pair.Original[column], pair.Revised[column])
		}
		out.Pairs = append(out.Pairs, jp)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
