package command

import (
	"bytes"
	"strings"
	"testing"

	"github.com/coregx/revm/meta"
	"github.com/coregx/revm/nfa"
)

func TestWriteResults(t *testing.T) {
	results := []meta.Result{
		{Strategy: meta.UsePikeVM, Matched: true, Slots: nfa.Slots{0, 3, 1, 2}, End: 3},
		{Strategy: meta.UseThompson, Matched: true, End: 3},
		{Strategy: meta.UseBacktrack, Err: nfa.ErrThreadLimit, End: nfa.Unset},
		{Strategy: meta.UseRecursive, End: nfa.Unset},
	}

	var buf bytes.Buffer
	if err := writeResults(&buf, results); err != nil {
		t.Fatalf("writeResults() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"engine", "matched", "captures"} {
		if !strings.Contains(strings.ToLower(out), want) {
			t.Errorf("header missing %q:\n%s", want, out)
		}
	}
	for _, want := range []string{"pikevm", "(0,3)(1,2)", "thompson", "(?,3)", "backtrack", "exceeded", "recursive"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestResultCells(t *testing.T) {
	tests := []struct {
		name     string
		r        meta.Result
		matched  string
		captures string
	}{
		{"slots", meta.Result{Matched: true, Slots: nfa.Slots{0, 1}, End: 1}, "yes", "(0,1)"},
		{"end only", meta.Result{Matched: true, End: 4}, "yes", "(?,4)"},
		{"anchored match", meta.Result{Matched: true, End: nfa.Unset}, "yes", "-"},
		{"no match", meta.Result{End: nfa.Unset}, "no", ""},
		{"error", meta.Result{Err: meta.ErrEmptyLoop, End: nfa.Unset}, "error", meta.ErrEmptyLoop.Error()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchedCell(tt.r); got != tt.matched {
				t.Errorf("matchedCell() = %q, want %q", got, tt.matched)
			}
			if got := capturesCell(tt.r); got != tt.captures {
				t.Errorf("capturesCell() = %q, want %q", got, tt.captures)
			}
		})
	}
}
