package table

import (
	"github.com/coolbeans/stepdiff/pkg/richtext"
)

// Record is one reconstructed logical row: a mapping from column key to the
// raw rich-text cell fragment. Records are built during reconstruction and
// must not be mutated afterwards.
type Record map[string]string

// Identifier returns the raw step-order fragment.
func (r Record) Identifier() string { return r[ColumnStepOrder] }

// Procedure returns the raw procedure fragment.
func (r Record) Procedure() string { return r[ColumnProcedure] }

// Outcome returns the raw expected-outcome fragment.
func (r Record) Outcome() string { return r[ColumnExpectedOutcome] }

// IsCategory reports whether the record is a section heading: no step
// order, procedure text present, no expected outcome.
func (r Record) IsCategory() bool {
	return richtext.Normalize(r.Identifier()) == "" &&
		richtext.Normalize(r.Procedure()) != "" &&
		richtext.Normalize(r.Outcome()) == ""
}

// isStep reports whether the record carries its own step order.
func (r Record) isStep() bool {
	return richtext.Normalize(r.Identifier()) != ""
}

// RecordSequence is the ordered list of logical records reconstructed from
// one document version, together with the column keys discovered in its
// header row. Record order matches the source document top to bottom.
type RecordSequence struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}
