package literal

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coregx/revm/syntax"
)

func literalStrings(seq *Seq) []string {
	if seq == nil {
		return nil
	}
	out := make([]string, seq.Len())
	for i := range out {
		out[i] = string(seq.Get(i).Bytes)
	}
	return out
}

func TestExtractAlternatives(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"foo", []string{"foo"}},
		{"foo|bar", []string{"foo", "bar"}},
		{"foo|bar|baz", []string{"foo", "bar", "baz"}},
		{"(foo)|(?:bar)", []string{"foo", "bar"}},
		{"colou?r", []string{"colour", "color"}},
		{"colou??r", []string{"color", "colour"}},
		{"(a|b)(c|d)", []string{"ac", "ad", "bc", "bd"}},
		{"héllo|wörld", []string{"héllo", "wörld"}},

		// Infinite or unsupported languages.
		{"a*", nil},
		{"a+|b", nil},
		{"a.c", nil},
		{"a?", nil},
		{"x|y?", nil},
		{"�|a", nil},
	}

	ex := New(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got := literalStrings(ex.ExtractAlternatives(syntax.MustParse(tt.pattern)))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ExtractAlternatives(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestExtractAlternativesUnanchored(t *testing.T) {
	re, err := syntax.ParseUnanchored("cat|dog")
	if err != nil {
		t.Fatal(err)
	}
	seq := New(DefaultConfig()).ExtractAlternatives(re)
	if diff := cmp.Diff([]string{"cat", "dog"}, literalStrings(seq)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if !seq.AllComplete() {
		t.Error("AllComplete() = false")
	}
}

func TestExtractAlternativesLimits(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		cfg     ExtractorConfig
		ok      bool
	}{
		{"within count", "(a|b)(c|d)(e|f)", ExtractorConfig{MaxLiterals: 8, MaxLiteralLen: 64}, true},
		{"over count", "(a|b)(c|d)(e|f)", ExtractorConfig{MaxLiterals: 7, MaxLiteralLen: 64}, false},
		{"within length", "abcd|e", ExtractorConfig{MaxLiterals: 64, MaxLiteralLen: 4}, true},
		{"over length", "abcde|e", ExtractorConfig{MaxLiterals: 64, MaxLiteralLen: 4}, false},
		{"long default", strings.Repeat("x", 65), DefaultConfig(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := New(tt.cfg).ExtractAlternatives(syntax.MustParse(tt.pattern))
			if (seq != nil) != tt.ok {
				t.Errorf("ExtractAlternatives(%q) = %v, want ok=%v", tt.pattern, literalStrings(seq), tt.ok)
			}
		})
	}
}
