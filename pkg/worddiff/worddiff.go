// Package worddiff computes token-level diffs between two rich-text
// fragments. Markup tags and whitespace runs are atomic tokens, so a
// rendered diff reproduces the fragments exactly and never splits a tag.
package worddiff

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/coolbeans/stepdiff/pkg/lcs"
)

// TokenKind distinguishes the variants of the token stream.
type TokenKind int

const (
	// KindWord is a run of non-markup, non-whitespace text.
	KindWord TokenKind = iota
	// KindTag is a complete markup tag.
	KindTag
	// KindSpace is a run of whitespace.
	KindSpace
)

// Token is one diffable unit of a fragment.
type Token struct {
	Kind TokenKind
	Text string
}

// Op classifies a diff segment.
type Op int

const (
	// OpCommon marks text present in both fragments.
	OpCommon Op = iota
	// OpAdded marks text present only in the revised fragment.
	OpAdded
	// OpDeleted marks text present only in the original fragment.
	OpDeleted
)

// String returns the string representation of an Op.
func (o Op) String() string {
	switch o {
	case OpAdded:
		return "ADDED"
	case OpDeleted:
		return "DELETED"
	case OpCommon:
		return "COMMON"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON implements json.Marshaler for Op.
func (o Op) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Segment is a maximal run of consecutive tokens sharing one
// classification. Concatenating the COMMON and DELETED segments in order
// reproduces the original fragment; COMMON and ADDED reproduce the revised
// one.
type Segment struct {
	Op   Op     `json:"op"`
	Text string `json:"text"`
}

// boundaryPattern matches the two delimiter token shapes, markup tags and
// whitespace runs; the text between matches forms the word tokens.
var boundaryPattern = regexp.MustCompile(`<[^>]*>|[\s\x{00A0}]+`)

// Tokenize splits a fragment into tag, space and word tokens. Concatenating
// the token texts reproduces the fragment byte for byte.
func Tokenize(fragment string) []Token {
	var tokens []Token
	last := 0
	for _, loc := range boundaryPattern.FindAllStringIndex(fragment, -1) {
		if loc[0] > last {
			tokens = append(tokens, Token{Kind: KindWord, Text: fragment[last:loc[0]]})
		}
		text := fragment[loc[0]:loc[1]]
		kind := KindSpace
		if strings.HasPrefix(text, "<") {
			kind = KindTag
		}
		tokens = append(tokens, Token{Kind: kind, Text: text})
		last = loc[1]
	}
	if last < len(fragment) {
		tokens = append(tokens, Token{Kind: KindWord, Text: fragment[last:]})
	}
	return tokens
}

// Diff aligns two fragments token by token with exact token equality as the
// oracle. Identical fragments short-circuit to a single common segment.
// Adjacent tokens with the same classification coalesce into one segment.
func Diff(original, revised string) []Segment {
	if original == revised {
		return []Segment{{Op: OpCommon, Text: original}}
	}

	a, b := Tokenize(original), Tokenize(revised)
	script := lcs.Diff(a, b, func(x, y Token) bool { return x == y })

	var segments []Segment
	emit := func(op Op, text string) {
		if n := len(segments); n > 0 && segments[n-1].Op == op {
			segments[n-1].Text += text
			return
		}
		segments = append(segments, Segment{Op: op, Text: text})
	}
	for _, edit := range script {
		switch edit.Op {
		case lcs.OpMatch:
			emit(OpCommon, b[edit.B].Text)
		case lcs.OpInsert:
			emit(OpAdded, b[edit.B].Text)
		default:
			emit(OpDeleted, a[edit.A].Text)
		}
	}
	return segments
}
