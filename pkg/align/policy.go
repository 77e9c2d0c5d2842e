// Package align matches reconstructed records between two document versions
// and classifies every row as added, deleted, modified or unchanged.
package align

import (
	"fmt"
	"strings"

	"github.com/coolbeans/stepdiff/pkg/richtext"
	"github.com/coolbeans/stepdiff/pkg/table"
)

// Mode selects which fields determine row identity across versions.
type Mode int

const (
	// ByIdentifier matches rows whose step-order fields agree. It trusts
	// the numbering to track a step across edits.
	ByIdentifier Mode = iota
	// ByContentSignature matches rows by the leading lines of their
	// procedure text. It survives renumbering, at the cost of never
	// matching rows whose signature is empty.
	ByContentSignature
)

// String returns the CLI spelling of the mode.
func (m Mode) String() string {
	if m == ByContentSignature {
		return "signature"
	}
	return "identifier"
}

// MarshalJSON implements json.Marshaler for Mode.
func (m Mode) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", m.String())), nil
}

// ParseMode resolves a CLI spelling into a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "identifier", "id", "step-order":
		return ByIdentifier, nil
	case "signature", "content", "procedure":
		return ByContentSignature, nil
	}
	return 0, fmt.Errorf("unknown match mode %q (want \"identifier\" or \"signature\")", s)
}

// MatchPolicy decides whether two records are the same row (Equal) and,
// once Equal holds, whether that row's content is unchanged (ContentEqual).
// The two relations are deliberately separate: under ByContentSignature two
// records can be the same row while their identifiers disagree.
type MatchPolicy interface {
	Equal(a, b table.Record) bool
	ContentEqual(a, b table.Record) bool
}

// PolicyFor returns the MatchPolicy implementing the given mode.
func PolicyFor(mode Mode) MatchPolicy {
	if mode == ByContentSignature {
		return signaturePolicy{}
	}
	return identifierPolicy{}
}

// categoryEqual handles pairs involving category rows, which match on their
// normalized procedure text only. The second return reports whether
// category handling applied: it is false when neither record is a category.
// A category never matches a step row.
func categoryEqual(a, b table.Record) (equal, applied bool) {
	ca, cb := a.IsCategory(), b.IsCategory()
	if !ca && !cb {
		return false, false
	}
	if ca != cb {
		return false, true
	}
	return richtext.Normalize(a.Procedure()) == richtext.Normalize(b.Procedure()), true
}

type identifierPolicy struct{}

func (identifierPolicy) Equal(a, b table.Record) bool {
	if eq, ok := categoryEqual(a, b); ok {
		return eq
	}
	return richtext.Normalize(a.Identifier()) == richtext.Normalize(b.Identifier())
}

func (identifierPolicy) ContentEqual(a, b table.Record) bool {
	if _, ok := categoryEqual(a, b); ok {
		// Matched categories already agree on their only content.
		return true
	}
	return strings.TrimSpace(a.Procedure()) == strings.TrimSpace(b.Procedure()) &&
		strings.TrimSpace(a.Outcome()) == strings.TrimSpace(b.Outcome())
}

type signaturePolicy struct{}

func (signaturePolicy) Equal(a, b table.Record) bool {
	if eq, ok := categoryEqual(a, b); ok {
		return eq
	}
	key := richtext.LeadingKey(a.Procedure())
	return key != "" && key == richtext.LeadingKey(b.Procedure())
}

func (signaturePolicy) ContentEqual(a, b table.Record) bool {
	if _, ok := categoryEqual(a, b); ok {
		return true
	}
	return strings.TrimSpace(a.Procedure()) == strings.TrimSpace(b.Procedure()) &&
		strings.TrimSpace(a.Outcome()) == strings.TrimSpace(b.Outcome()) &&
		strings.TrimSpace(a.Identifier()) == strings.TrimSpace(b.Identifier())
}
