package summary

import (
	"fmt"
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

func pair(status align.Status, id string) align.Pair {
	p := align.Pair{ID: id, Status: status}
	switch status {
	case align.StatusAdded:
		p.Revised = step(id, "proc", "out")
	case align.StatusDeleted:
		p.Original = step(id, "proc", "out")
	default:
		p.Original = step(id, "proc", "out")
		p.Revised = step(id, "proc2", "out")
	}
	return p
}

func TestSample_SkipsUnchanged(t *testing.T) {
	pairs := []align.Pair{
		pair(align.StatusUnchanged, "a"),
		pair(align.StatusAdded, "b"),
		pair(align.StatusUnchanged, "c"),
		pair(align.StatusModified, "d"),
	}

	sampled := Sample(pairs, SampleLimit)
	if len(sampled) != 2 {
		t.Fatalf("expected 2 sampled pairs, got %d", len(sampled))
	}
	if sampled[0].ID != "b" || sampled[1].ID != "d" {
		t.Errorf("expected pairs b and d in order, got %s and %s", sampled[0].ID, sampled[1].ID)
	}
}

func TestSample_CapsAtLimit(t *testing.T) {
	var pairs []align.Pair
	for i := 0; i < 25; i++ {
		pairs = append(pairs, pair(align.StatusAdded, fmt.Sprintf("p%d", i)))
	}

	sampled := Sample(pairs, SampleLimit)
	if len(sampled) != SampleLimit {
		t.Fatalf("expected %d sampled pairs, got %d", SampleLimit, len(sampled))
	}
	if sampled[0].ID != "p0" || sampled[SampleLimit-1].ID != fmt.Sprintf("p%d", SampleLimit-1) {
		t.Error("expected the first pairs in document order")
	}
}

func TestSample_Empty(t *testing.T) {
	if got := Sample(nil, SampleLimit); len(got) != 0 {
		t.Errorf("expected no samples, got %d", len(got))
	}
	if got := Sample([]align.Pair{pair(align.StatusUnchanged, "a")}, SampleLimit); len(got) != 0 {
		t.Errorf("expected no samples from unchanged pairs, got %d", len(got))
	}
}

func TestBuildPrompt(t *testing.T) {
	result := &align.Result{
		Stats: align.Stats{Added: 2, Deleted: 1, Modified: 1},
		Pairs: []align.Pair{
			pair(align.StatusUnchanged, "0"),
			pair(align.StatusAdded, "1"),
			pair(align.StatusModified, "2"),
		},
	}

	prompt := buildPrompt(result)

	if !strings.Contains(prompt, "2 steps were added, 1 deleted and 1 modified") {
		t.Errorf("prompt missing counts:\n%s", prompt)
	}
	if !strings.Contains(prompt, "ADDED:") || !strings.Contains(prompt, "MODIFIED:") {
		t.Errorf("prompt missing sampled rows:\n%s", prompt)
	}
	if strings.Contains(prompt, "UNCHANGED:") {
		t.Errorf("prompt must not include unchanged rows:\n%s", prompt)
	}
}

func TestNewGenerator_RequiresKey(t *testing.T) {
	if _, err := NewGenerator(t.Context(), "", DefaultModel); err == nil {
		t.Fatal("expected an error without an API key")
	}
}
