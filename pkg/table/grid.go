// Package table locates qualifying tables inside exported HTML documents
// and rebuilds their raw rows into logical test-step records.
package table

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/coolbeans/stepdiff/pkg/richtext"
)

// Column names a qualifying table must expose. Header cells are matched on
// their markup-stripped text.
const (
	ColumnStepOrder       = "Step Order"
	ColumnProcedure       = "Procedure"
	ColumnExpectedOutcome = "Expected Outcome"
)

// RequiredColumns returns the three column names that identify a test-step
// table.
func RequiredColumns() []string {
	return []string{ColumnStepOrder, ColumnProcedure, ColumnExpectedOutcome}
}

// Grid is the raw cell matrix of a single table: one inner-HTML fragment per
// cell, rows and cells in source order.
type Grid [][]string

// NoQualifyingTableError reports that a document contains no table whose
// first row carries the required column names.
type NoQualifyingTableError struct {
	Document string
}

func (e *NoQualifyingTableError) Error() string {
	return fmt.Sprintf("%s: no table with header columns %q, %q and %q found",
		e.Document, ColumnStepOrder, ColumnProcedure, ColumnExpectedOutcome)
}

// ExtractGrid parses an HTML document and returns the cell grid of the first
// table, in document order, whose first row's cell texts (markup removed)
// contain all required column names. Cell content is kept as the cell's
// inner HTML, verbatim.
func ExtractGrid(r io.Reader, document string) (Grid, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: parsing HTML: %w", document, err)
	}

	for _, node := range findTables(root) {
		grid := tableGrid(node)
		if len(grid) > 0 && hasRequiredColumns(grid[0]) {
			return grid, nil
		}
	}
	return nil, &NoQualifyingTableError{Document: document}
}

// findTables collects top-level table elements in document order. A table
// nested inside another table belongs to its parent's cell content and is
// not a candidate of its own.
func findTables(root *html.Node) []*html.Node {
	var tables []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "table" {
			tables = append(tables, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return tables
}

// tableGrid flattens a table element into its cell grid, descending through
// thead/tbody/tfoot sections but not into nested tables.
func tableGrid(tbl *html.Node) Grid {
	var rows []*html.Node
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "tr":
				rows = append(rows, c)
			case "thead", "tbody", "tfoot":
				collect(c)
			}
		}
	}
	collect(tbl)

	grid := make(Grid, 0, len(rows))
	for _, row := range rows {
		var cells []string
		for c := row.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
				cells = append(cells, innerHTML(c))
			}
		}
		grid = append(grid, cells)
	}
	return grid
}

// innerHTML renders the markup inside a node verbatim.
func innerHTML(n *html.Node) string {
	var buf strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		// Rendering into a strings.Builder cannot fail.
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// hasRequiredColumns reports whether the normalized texts of a row form a
// superset of the required column names.
func hasRequiredColumns(row []string) bool {
	have := make(map[string]bool, len(row))
	for _, cell := range row {
		have[richtext.Normalize(cell)] = true
	}
	for _, name := range RequiredColumns() {
		if !have[name] {
			return false
		}
	}
	return true
}
