package lcs

import (
	"strings"
	"testing"
)

func eqString(a, b string) bool { return a == b }

// replay applies an edit script to the inputs and returns the element
// sequences consumed on each side.
func replay(a, b []string, script []Edit) (fromA, fromB []string) {
	for _, edit := range script {
		switch edit.Op {
		case OpMatch:
			fromA = append(fromA, a[edit.A])
			fromB = append(fromB, b[edit.B])
		case OpDelete:
			fromA = append(fromA, a[edit.A])
		case OpInsert:
			fromB = append(fromB, b[edit.B])
		}
	}
	return fromA, fromB
}

func TestDiff_EditScriptValidity(t *testing.T) {
	tests := []struct {
		name string
		a    []string
		b    []string
	}{
		{"both empty", nil, nil},
		{"identical", []string{"x", "y", "z"}, []string{"x", "y", "z"}},
		{"empty original", nil, []string{"x", "y"}},
		{"empty revised", []string{"x", "y"}, nil},
		{"disjoint", []string{"a", "b"}, []string{"c", "d"}},
		{"interleaved", []string{"a", "b", "c", "d"}, []string{"b", "x", "d", "y"}},
		{"repeats", []string{"a", "a", "b", "a"}, []string{"a", "b", "a", "a"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			script := Diff(tc.a, tc.b, eqString)
			fromA, fromB := replay(tc.a, tc.b, script)

			if got, want := strings.Join(fromA, ","), strings.Join(tc.a, ","); got != want {
				t.Errorf("original side replay: expected %q, got %q", want, got)
			}
			if got, want := strings.Join(fromB, ","), strings.Join(tc.b, ","); got != want {
				t.Errorf("revised side replay: expected %q, got %q", want, got)
			}
		})
	}
}

func TestDiff_MatchesCommonSubsequence(t *testing.T) {
	a := []string{"1", "2", "3", "4", "5"}
	b := []string{"0", "2", "4", "6"}

	matches := 0
	for _, edit := range Diff(a, b, eqString) {
		if edit.Op == OpMatch {
			matches++
			if a[edit.A] != b[edit.B] {
				t.Errorf("matched unequal elements %q and %q", a[edit.A], b[edit.B])
			}
		}
	}
	if matches != 2 {
		t.Errorf("expected 2 matches, got %d", matches)
	}
}

// A replaced run of equal length must read delete-then-insert: the
// backtracking pass consumes the revised-side element first on ties, which
// places the insert after the delete once the script is reversed.
func TestDiff_TieBreakOrdersDeleteBeforeInsert(t *testing.T) {
	script := Diff([]string{"old"}, []string{"new"}, eqString)

	if len(script) != 2 {
		t.Fatalf("expected 2 edits, got %d", len(script))
	}
	if script[0].Op != OpDelete || script[0].A != 0 {
		t.Errorf("expected first edit to delete original[0], got %+v", script[0])
	}
	if script[1].Op != OpInsert || script[1].B != 0 {
		t.Errorf("expected second edit to insert revised[0], got %+v", script[1])
	}
}

func TestDiff_TieBreakOnLongerRun(t *testing.T) {
	a := []string{"keep", "a", "b", "keep2"}
	b := []string{"keep", "x", "y", "keep2"}

	var ops []Op
	for _, edit := range Diff(a, b, eqString) {
		ops = append(ops, edit.Op)
	}

	expected := []Op{OpMatch, OpDelete, OpDelete, OpInsert, OpInsert, OpMatch}
	if len(ops) != len(expected) {
		t.Fatalf("expected %d edits, got %d", len(expected), len(ops))
	}
	for i := range expected {
		if ops[i] != expected[i] {
			t.Fatalf("edit %d: expected op %d, got %d (script ops %v)", i, expected[i], ops[i], ops)
		}
	}
}
