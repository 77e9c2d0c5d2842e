// Package report renders comparison results for terminals, JSON consumers
// and browsers.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/coolbeans/stepdiff/pkg/align"
	"github.com/coolbeans/stepdiff/pkg/richtext"
	"github.com/coolbeans/stepdiff/pkg/table"
	"github.com/coolbeans/stepdiff/pkg/worddiff"
)

// NeedsWordDiff reports whether a pair's field warrants a word-level diff
// pass: only modified pairs whose serialized field text actually differs
// between the two sides. Everything else renders one side verbatim.
func NeedsWordDiff(pair align.Pair, column string) bool {
	if pair.Status != align.StatusModified {
		return false
	}
	return strings.TrimSpace(pair.Original[column]) != strings.TrimSpace(pair.Revised[column])
}

// TextRenderer writes a row-per-line summary of a comparison, with
// word-level diffs inlined on modified rows.
type TextRenderer struct {
	out     io.Writer
	added   *color.Color
	deleted *color.Color
	changed *color.Color
	section *color.Color
}

// NewTextRenderer returns a renderer writing to out. With colored false all
// output is plain text.
func NewTextRenderer(out io.Writer, colored bool) *TextRenderer {
	r := &TextRenderer{
		out:     out,
		added:   color.New(color.FgGreen),
		deleted: color.New(color.FgRed),
		changed: color.New(color.FgYellow),
		section: color.New(color.Bold),
	}
	for _, c := range []*color.Color{r.added, r.deleted, r.changed, r.section} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Render writes the whole result: a count header followed by one line per
// pair in document order.
func (r *TextRenderer) Render(result *align.Result) error {
	stats := result.Stats
	if _, err := fmt.Fprintf(r.out, "%d added, %d deleted, %d modified (%d rows, matched by %s)\n\n",
		stats.Added, stats.Deleted, stats.Modified, len(result.Pairs), result.Mode); err != nil {
		return err
	}
	for _, pair := range result.Pairs {
		if err := r.renderPair(pair); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextRenderer) renderPair(pair align.Pair) error {
	rec := pair.Revised
	if rec == nil {
		rec = pair.Original
	}

	if rec.IsCategory() {
		marker := r.markerFor(pair.Status)
		_, err := fmt.Fprintf(r.out, "%s == %s\n", marker, r.section.Sprint(richtext.Normalize(rec.Procedure())))
		return err
	}

	switch pair.Status {
	case align.StatusAdded:
		_, err := fmt.Fprintln(r.out, r.added.Sprintf("+ %s", r.stepLine(rec)))
		return err
	case align.StatusDeleted:
		_, err := fmt.Fprintln(r.out, r.deleted.Sprintf("- %s", r.stepLine(rec)))
		return err
	case align.StatusModified:
		return r.renderModified(pair)
	default:
		_, err := fmt.Fprintf(r.out, "  %s\n", r.stepLine(rec))
		return err
	}
}

func (r *TextRenderer) renderModified(pair align.Pair) error {
	id := richtext.Normalize(pair.Revised.Identifier())
	if id == "" {
		id = richtext.Normalize(pair.Original.Identifier())
	}
	if _, err := fmt.Fprintln(r.out, r.changed.Sprintf("~ %s", id)); err != nil {
		return err
	}

	for _, column := range []string{table.ColumnProcedure, table.ColumnExpectedOutcome} {
		if !NeedsWordDiff(pair, column) {
			continue
		}
		segments := worddiff.Diff(pair.Original[column], pair.Revised[column])
		if _, err := fmt.Fprintf(r.out, "    %s: %s\n", column, r.inlineDiff(segments)); err != nil {
			return err
		}
	}
	// An identifier change only happens under signature matching.
	if strings.TrimSpace(pair.Original.Identifier()) != strings.TrimSpace(pair.Revised.Identifier()) {
		if _, err := fmt.Fprintf(r.out, "    %s: %s -> %s\n", table.ColumnStepOrder,
			r.deleted.Sprint(richtext.Normalize(pair.Original.Identifier())),
			r.added.Sprint(richtext.Normalize(pair.Revised.Identifier()))); err != nil {
			return err
		}
	}
	return nil
}

// inlineDiff flattens word-diff segments into one line, wrapping added and
// deleted runs in {+ +} / [- -] braces when colors are off so the change
// stays visible.
func (r *TextRenderer) inlineDiff(segments []worddiff.Segment) string {
	var sb strings.Builder
	for _, seg := range segments {
		text := richtext.Normalize(seg.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		switch seg.Op {
		case worddiff.OpAdded:
			sb.WriteString(r.added.Sprintf("{+%s+}", text))
		case worddiff.OpDeleted:
			sb.WriteString(r.deleted.Sprintf("[-%s-]", text))
		default:
			sb.WriteString(text)
		}
	}
	return sb.String()
}

func (r *TextRenderer) markerFor(status align.Status) string {
	switch status {
	case align.StatusAdded:
		return r.added.Sprint("+")
	case align.StatusDeleted:
		return r.deleted.Sprint("-")
	default:
		return " "
	}
}

func (r *TextRenderer) stepLine(rec table.Record) string {
	parts := []string{
		richtext.Normalize(rec.Identifier()),
		richtext.Normalize(rec.Procedure()),
		richtext.Normalize(rec.Outcome()),
	}
	return strings.TrimSpace(strings.Join(parts, " | "))
}
