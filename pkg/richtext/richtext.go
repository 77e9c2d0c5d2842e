// Package richtext normalizes rich-text cell fragments so they can be
// compared as plain text regardless of formatting.
package richtext

import (
	"html"
	"regexp"
	"strings"
)

var (
	// tagPattern matches any markup tag as an atomic unit.
	tagPattern = regexp.MustCompile(`<[^>]*>`)

	// breakPattern matches markers that end a visual line: explicit break
	// tags, closing block elements, and opening paragraphs.
	breakPattern = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</div>|</li>|</h[1-6]>|<p(\s[^>]*)?>`)

	// spacePattern matches runs of whitespace, including non-breaking spaces.
	spacePattern = regexp.MustCompile(`[\s\x{00A0}]+`)
)

// Normalize strips all markup from a fragment and returns the trimmed plain
// text with whitespace runs collapsed to single spaces. It never fails: an
// empty fragment normalizes to the empty string, and normalizing text that
// carries no markup only trims and collapses it.
func Normalize(fragment string) string {
	text := tagPattern.ReplaceAllString(fragment, "")
	text = html.UnescapeString(text)
	text = spacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// LeadingKey derives an identity signature from the first two visual lines
// of a fragment. Line-break markers become separators, blank lines are
// dropped, and the two surviving lines are joined with a single space. A
// fragment whose later lines change keeps its signature as long as the
// opening text is stable.
func LeadingKey(fragment string) string {
	marked := breakPattern.ReplaceAllString(fragment, "\n")

	var lines []string
	for _, line := range strings.Split(marked, "\n") {
		if text := Normalize(line); text != "" {
			lines = append(lines, text)
		}
		if len(lines) == 2 {
			break
		}
	}
	return strings.Join(lines, " ")
}
