package report

import (
	"html/template"
	"io"
	"strings"

	"github.com/coolbeans/stepdiff/pkg/align"
	"github.com/coolbeans/stepdiff/pkg/table"
	"github.com/coolbeans/stepdiff/pkg/worddiff"
)

const reportTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 6px 10px; vertical-align: top; }
tr.added td { background: #e6ffe6; }
tr.deleted td { background: #ffe6e6; }
tr.modified td { background: #fff8e0; }
tr.category td { background: #f0f0f0; font-weight: bold; }
ins { background: #aaf2aa; text-decoration: none; }
del { background: #f2aaaa; }
.counts { margin-bottom: 1em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="counts">{{.Stats.Added}} added, {{.Stats.Deleted}} deleted, {{.Stats.Modified}} modified</p>
<table>
<tr><th>Status</th>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr class="{{.Class}}"><td>{{.Status}}</td>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
</body>
</html>
`

type htmlRow struct {
	Class  string
	Status string
	Cells  []template.HTML
}

type htmlReport struct {
	Title   string
	Columns []string
	Stats   align.Stats
	Rows    []htmlRow
}

var htmlTmpl = template.Must(template.New("report").Parse(reportTemplate))

// WriteHTML renders a standalone side-by-side HTML report. Cell fragments
// come from the source documents and are emitted verbatim; modified cells
// are rebuilt from their word diff with ins/del spans.
func WriteHTML(w io.Writer, result *align.Result, title string) error {
	view := htmlReport{
		Title:   title,
		Columns: result.Columns,
		Stats:   result.Stats,
		Rows:    make([]htmlRow, 0, len(result.Pairs)),
	}
	for _, pair := range result.Pairs {
		row := htmlRow{
			Class:  strings.ToLower(pair.Status.String()),
			Status: pair.Status.String(),
		}
		rec := pair.Revised
		if rec == nil {
			rec = pair.Original
		}
		if rec.IsCategory() {
			row.Class = "category"
		}
		for _, column := range result.Columns {
			row.Cells = append(row.Cells, htmlCell(pair, rec, column))
		}
		view.Rows = append(view.Rows, row)
	}
	return htmlTmpl.Execute(w, view)
}

// htmlCell renders one cell: a word diff when the pair and column call for
// one, the surviving side verbatim otherwise.
func htmlCell(pair align.Pair, rec table.Record, column string) template.HTML {
	if !NeedsWordDiff(pair, column) {
		return template.HTML(rec[column])
	}

	var sb strings.Builder
	for _, seg := range worddiff.Diff(pair.Original[column], pair.Revised[column]) {
		switch seg.Op {
		case worddiff.OpAdded:
			sb.WriteString("<ins>")
			sb.WriteString(seg.Text)
			sb.WriteString("</ins>")
		case worddiff.OpDeleted:
			sb.WriteString("<del>")
			sb.WriteString(seg.Text)
			sb.WriteString("</del>")
		default:
			sb.WriteString(seg.Text)
		}
	}
	return template.HTML(sb.String())
}
