package meta

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coregx/revm/nfa"
	"github.com/coregx/revm/syntax"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		pattern   string
		numSubexp int
		emptyLoop bool
	}{
		{"a", 0, false},
		{"(a+)(b+)", 2, false},
		{"((a)|b)*", 2, false},
		{"(?:ab)*c", 0, false},
		{"(a*)*b", 1, true},
		{"(a?)+", 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			engine, err := Compile(tt.pattern)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.pattern, err)
			}
			if got := engine.NumSubexp(); got != tt.numSubexp {
				t.Errorf("NumSubexp() = %d, want %d", got, tt.numSubexp)
			}
			if got := engine.HasEmptyLoop(); got != tt.emptyLoop {
				t.Errorf("HasEmptyLoop() = %v, want %v", got, tt.emptyLoop)
			}
			if engine.Strategy() != UsePikeVM {
				t.Errorf("Strategy() = %v, want pikevm", engine.Strategy())
			}
			if engine.String() != tt.pattern {
				t.Errorf("String() = %q, want %q", engine.String(), tt.pattern)
			}
			if !syntax.IsUnanchored(engine.AST()) {
				t.Errorf("AST() = %v, want unanchored wrapper", engine.AST())
			}
			if err := engine.Program().Validate(); err != nil {
				t.Errorf("Program().Validate() = %v", err)
			}
			// Group 0 plus every capturing group.
			if got, want := engine.Program().NumSlots(), 2*(tt.numSubexp+1); got != want {
				t.Errorf("NumSlots() = %d, want %d", got, want)
			}
		})
	}
}

func TestCompileAnchored(t *testing.T) {
	config := DefaultConfig()
	config.Anchored = true

	engine, err := CompileWithConfig("ab", config)
	if err != nil {
		t.Fatal(err)
	}
	if syntax.IsUnanchored(engine.AST()) {
		t.Error("anchored engine has the unanchored wrapper")
	}
	if got := engine.Program().NumSlots(); got != 0 {
		t.Errorf("NumSlots() = %d, want 0 without groups", got)
	}

	want := nfa.Compile(syntax.MustParse("ab"))
	if diff := cmp.Diff(want.Insts(), engine.Program().Insts()); diff != "" {
		t.Errorf("program mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileParseError(t *testing.T) {
	for _, pattern := range []string{"", "(a", "a)", "*a", "(?a)", "a:b"} {
		_, err := Compile(pattern)
		var perr *syntax.ParseError
		if !errors.As(err, &perr) {
			t.Errorf("Compile(%q) = %v, want *syntax.ParseError", pattern, err)
			continue
		}
		if perr.Pattern != pattern {
			t.Errorf("ParseError.Pattern = %q, want %q", perr.Pattern, pattern)
		}
	}
}

func TestCompileInvalidConfig(t *testing.T) {
	config := DefaultConfig()
	config.MaxBacktrackThreads = 0

	_, err := CompileWithConfig("a", config)
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("CompileWithConfig() = %v, want *ConfigError", err)
	}
}

func TestCompileEmptyLoop(t *testing.T) {
	for _, strategy := range []Strategy{UseRecursive, UseRecursiveLoop} {
		t.Run(strategy.String(), func(t *testing.T) {
			config := DefaultConfig()
			config.Strategy = strategy

			_, err := CompileWithConfig("(a*)*b", config)
			if !errors.Is(err, ErrEmptyLoop) {
				t.Fatalf("CompileWithConfig() = %v, want ErrEmptyLoop", err)
			}

			if _, err := CompileWithConfig("(a+)*b", config); err != nil {
				t.Errorf("CompileWithConfig(non-empty loop) = %v", err)
			}
		})
	}

	for _, strategy := range []Strategy{UseBacktrack, UseThompson, UsePikeVM} {
		config := DefaultConfig()
		config.Strategy = strategy
		if _, err := CompileWithConfig("(a*)*b", config); err != nil {
			t.Errorf("%v: CompileWithConfig() = %v, want nil", strategy, err)
		}
	}
}

func TestLiteralFastPath(t *testing.T) {
	tests := []struct {
		pattern  string
		literals []string // nil means no fast path
	}{
		{"foo|bar|baz", []string{"foo", "bar", "baz"}},
		{"(foo|bar)", []string{"foo", "bar"}},
		{"colou?r|hue", []string{"colour", "color", "hue"}},
		{"(a|b)c", []string{"ac", "bc"}},
		{"hello", nil},   // a single literal
		{"a*|b", nil},    // infinite
		{"a.c|d", nil},   // dot
		{"a?|b", nil},    // matches the empty string
		{"(a|b)+c", nil}, // repetition
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			engine, err := Compile(tt.pattern)
			if err != nil {
				t.Fatal(err)
			}
			if got, want := engine.HasLiteralFastPath(), tt.literals != nil; got != want {
				t.Fatalf("HasLiteralFastPath() = %v, want %v", got, want)
			}
			if tt.literals == nil {
				if engine.Literals() != nil {
					t.Errorf("Literals() = %v, want nil", engine.Literals())
				}
				return
			}

			var got []string
			for _, b := range engine.Literals().Bytes() {
				got = append(got, string(b))
			}
			if diff := cmp.Diff(tt.literals, got); diff != "" {
				t.Errorf("Literals() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLiteralFastPathConfig(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   bool
	}{
		{"default", func(*Config) {}, true},
		{"disabled", func(c *Config) { c.EnableLiteralFastPath = false }, false},
		{"anchored", func(c *Config) { c.Anchored = true }, false},
		{"min literals above alternatives", func(c *Config) { c.MinLiterals = 4 }, false},
		{"min literals equal", func(c *Config) { c.MinLiterals = 3 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.modify(&config)
			engine, err := CompileWithConfig("foo|bar|baz", config)
			if err != nil {
				t.Fatal(err)
			}
			if got := engine.HasLiteralFastPath(); got != tt.want {
				t.Errorf("HasLiteralFastPath() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStats(t *testing.T) {
	engine, err := Compile("(a+)(b+)")
	if err != nil {
		t.Fatal(err)
	}

	for range 3 {
		if _, err := engine.IsMatch("aab"); err != nil {
			t.Fatal(err)
		}
	}
	engine.RunAll("aab")

	want := Stats{
		RecursiveSearches: 1,
		LoopSearches:      1,
		BacktrackSearches: 1,
		ThompsonSearches:  1,
		PikeVMSearches:    4,
	}
	if diff := cmp.Diff(want, engine.Stats()); diff != "" {
		t.Errorf("Stats() mismatch (-want +got):\n%s", diff)
	}

	engine.ResetStats()
	if diff := cmp.Diff(Stats{}, engine.Stats()); diff != "" {
		t.Errorf("Stats() after reset mismatch (-want +got):\n%s", diff)
	}
}

func TestStatsFastPathAndThreadLimit(t *testing.T) {
	engine, err := Compile("foo|bar")
	if err != nil {
		t.Fatal(err)
	}
	if matched, _ := engine.IsMatch("xxbarxx"); !matched {
		t.Error("IsMatch(xxbarxx) = false, want true")
	}
	if s := engine.Stats(); s.AhoCorasickSearches != 1 || s.PikeVMSearches != 0 {
		t.Errorf("Stats() = %+v, want one Aho-Corasick search only", s)
	}

	config := DefaultConfig()
	config.Strategy = UseBacktrack
	config.MaxBacktrackThreads = 10
	engine, err = CompileWithConfig("a*", config)
	if err != nil {
		t.Fatal(err)
	}
	_, err = engine.IsMatch(strings.Repeat("a", 100))
	if !errors.Is(err, nfa.ErrThreadLimit) {
		t.Fatalf("IsMatch() error = %v, want ErrThreadLimit", err)
	}
	if s := engine.Stats(); s.BacktrackSearches != 1 || s.ThreadLimitErrors != 1 {
		t.Errorf("Stats() = %+v, want one backtrack search hitting the limit", s)
	}
}

func TestPrefilter(t *testing.T) {
	tests := []struct {
		pattern  string
		required string // "" means none
	}{
		{"(a|b)*needle+", "needl"},
		{"x(abc)+y", "abc"},
		{"hello", "hello"},
		{"a*", ""},
		{"foo|bar", ""}, // literal fast path instead
	}
	for _, tt := range tests {
		engine, err := Compile(tt.pattern)
		if err != nil {
			t.Fatal(err)
		}
		if got := string(engine.RequiredLiteral()); got != tt.required {
			t.Errorf("%q: RequiredLiteral() = %q, want %q", tt.pattern, got, tt.required)
		}
	}

	config := DefaultConfig()
	config.EnablePrefilter = false
	engine, err := CompileWithConfig("hello", config)
	if err != nil {
		t.Fatal(err)
	}
	if engine.RequiredLiteral() != nil {
		t.Error("RequiredLiteral() != nil with the prefilter disabled")
	}
}

func TestPrefilterRejects(t *testing.T) {
	for _, strategy := range EngineStrategies() {
		t.Run(strategy.String(), func(t *testing.T) {
			engine := compileWith(t, "(a|b)*needle", strategy)

			if matched, err := engine.IsMatch("abba haystack"); err != nil || matched {
				t.Errorf("IsMatch(no needle) = %v, %v", matched, err)
			}
			if slots, err := engine.FindSubmatchIndex("abba haystack"); err != nil || slots != nil {
				t.Errorf("FindSubmatchIndex(no needle) = %v, %v", slots, err)
			}
			if s := engine.Stats(); s.PrefilterRejects != 2 {
				t.Errorf("PrefilterRejects = %d, want 2", s.PrefilterRejects)
			}

			slots, err := engine.FindSubmatchIndex("xabneedle")
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff([]int{1, 9, 2, 3}, slots); diff != "" {
				t.Errorf("FindSubmatchIndex mismatch (-want +got):\n%s", diff)
			}
			if s := engine.Stats(); s.PrefilterRejects != 2 {
				t.Errorf("PrefilterRejects = %d after a match, want 2", s.PrefilterRejects)
			}
		})
	}
}

// The prefilter answers before the backtracker can hit its thread limit.
func TestPrefilterBeforeThreadLimit(t *testing.T) {
	config := DefaultConfig()
	config.Strategy = UseBacktrack
	config.MaxBacktrackThreads = 4
	engine, err := CompileWithConfig("(a|b)*zz", config)
	if err != nil {
		t.Fatal(err)
	}
	input := strings.Repeat("ab", 50)
	if matched, err := engine.IsMatch(input); err != nil || matched {
		t.Errorf("IsMatch() = %v, %v, want false, nil", matched, err)
	}
	if r := engine.Run(UseBacktrack, input); !errors.Is(r.Err, nfa.ErrThreadLimit) {
		t.Errorf("Run(backtrack) Err = %v, want ErrThreadLimit", r.Err)
	}
}
