package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/coolbeans/stepdiff/pkg/align"
	"github.com/coolbeans/stepdiff/pkg/table"
)

func step(id, proc, outcome string) table.Record {
	return table.Record{
		table.ColumnStepOrder:       id,
		table.ColumnProcedure:       proc,
		table.ColumnExpectedOutcome: outcome,
	}
}

func sequence(records ...table.Record) *table.RecordSequence {
	return &table.RecordSequence{
		Columns: table.RequiredColumns(),
		Records: records,
	}
}

func compare(t *testing.T) *align.Result {
	t.Helper()
	original := sequence(
		step("1", "Boot the unit", "Prompt shown"),
		step("2", "Login", "Dashboard"),
		step("3", "Logout", "Login page"),
	)
	revised := sequence(
		step("1", "Boot the unit", "Prompt shown"),
		step("2", "Login as admin", "Dashboard"),
		step("4", "Suspend", "Blank screen"),
	)
	result, err := align.Align(original, revised, align.ByIdentifier)
	if err != nil {
		t.Fatalf("Align: unexpected error: %v", err)
	}
	return result
}

func TestNeedsWordDiff(t *testing.T) {
	result := compare(t)

	var modified align.Pair
	for _, pair := range result.Pairs {
		if pair.Status == align.StatusModified {
			modified = pair
			break
		}
	}
	if modified.Original == nil {
		t.Fatal("expected a modified pair in the fixture")
	}

	if !NeedsWordDiff(modified, table.ColumnProcedure) {
		t.Error("expected word diff for the changed procedure")
	}
	if NeedsWordDiff(modified, table.ColumnExpectedOutcome) {
		t.Error("expected no word diff for the unchanged outcome")
	}
	if NeedsWordDiff(result.Pairs[0], table.ColumnProcedure) {
		t.Error("expected no word diff for an unchanged pair")
	}
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextRenderer(&buf, false).Render(compare(t)); err != nil {
		t.Fatalf("Render: unexpected error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "1 added, 1 deleted, 1 modified") {
		t.Errorf("missing count header in output:\n%s", out)
	}
	if !strings.Contains(out, "+ 4 | Suspend | Blank screen") {
		t.Errorf("missing added row in output:\n%s", out)
	}
	if !strings.Contains(out, "- 3 | Logout | Login page") {
		t.Errorf("missing deleted row in output:\n%s", out)
	}
	if !strings.Contains(out, "~ 2") {
		t.Errorf("missing modified row in output:\n%s", out)
	}
	if !strings.Contains(out, "{+as admin+}") {
		t.Errorf("missing inline word diff in output:\n%s", out)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, compare(t)); err != nil {
		t.Fatalf("WriteJSON: unexpected error: %v", err)
	}

	var decoded struct {
		Mode    string `json:"mode"`
		Columns []string
		Stats   struct{ Added, Deleted, Modified int }
		Pairs   []struct {
			Status    string                       `json:"status"`
			CellDiffs map[string][]json.RawMessage `json:"cell_diffs"`
		}
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}

	if decoded.Mode != "identifier" {
		t.Errorf("expected mode %q, got %q", "identifier", decoded.Mode)
	}
	if decoded.Stats.Added != 1 || decoded.Stats.Deleted != 1 || decoded.Stats.Modified != 1 {
		t.Errorf("unexpected stats %+v", decoded.Stats)
	}
	for _, pair := range decoded.Pairs {
		if pair.Status == "MODIFIED" && len(pair.CellDiffs) == 0 {
			t.Error("expected cell diffs on the modified pair")
		}
		if pair.Status == "UNCHANGED" && len(pair.CellDiffs) != 0 {
			t.Error("expected no cell diffs on unchanged pairs")
		}
	}
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, compare(t), "plan comparison"); err != nil {
		t.Fatalf("WriteHTML: unexpected error: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "<title>plan comparison</title>") {
		t.Error("missing title")
	}
	if !strings.Contains(out, `class="added"`) || !strings.Contains(out, `class="deleted"`) {
		t.Error("missing status row classes")
	}
	if !strings.Contains(out, "<ins>") {
		t.Error("expected ins spans on the modified cell")
	}
}
