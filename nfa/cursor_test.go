package nfa

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCursorNextChar(t *testing.T) {
	prog := Compile(mustParse("a"))
	c := NewCursor(prog, "é\xffa")

	want := []struct {
		r      rune
		offset int
	}{
		{'é', 2},
		{utf8.RuneError, 3},
		{'a', 4},
	}
	for i, w := range want {
		r, ok := c.NextChar()
		if !ok || r != w.r || c.Offset() != w.offset {
			t.Errorf("char %d = %q, %v at offset %d, want %q at %d", i, r, ok, c.Offset(), w.r, w.offset)
		}
	}
	if _, ok := c.NextChar(); ok {
		t.Error("NextChar() at end of input = true")
	}
	if !c.AtEnd() {
		t.Error("AtEnd() = false")
	}
}

func TestCursorNextInst(t *testing.T) {
	prog := Compile(mustParse("ab"))
	c := NewCursor(prog, "ab")

	for pc := 0; pc < prog.Len(); pc++ {
		if c.PC() != pc {
			t.Fatalf("PC() = %d, want %d", c.PC(), pc)
		}
		if inst := c.NextInst(); inst != prog.Inst(pc) {
			t.Fatalf("NextInst() at %d = %v", pc, inst)
		}
	}
	if inst := c.NextInst(); inst != nil {
		t.Errorf("NextInst() past end = %v, want nil", inst)
	}

	c.Reset(1, 1)
	if c.PC() != 1 || c.Offset() != 1 {
		t.Errorf("Reset(1, 1) -> pc %d offset %d", c.PC(), c.Offset())
	}
}

func TestCursorCopyIsIndependent(t *testing.T) {
	prog := Compile(mustParse("ab"))
	c := NewCursor(prog, "ab")
	fork := c
	fork.NextChar()
	fork.SetPC(2)
	if c.PC() != 0 || c.Offset() != 0 {
		t.Errorf("original moved to pc %d offset %d", c.PC(), c.Offset())
	}
}

func TestCursorString(t *testing.T) {
	prog := Compile(mustParse("a|b"))
	c := NewCursor(prog, "b")
	c.Reset(3, 0)
	if got, want := c.String(), "[offset 0]  3. char b"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	c.Reset(12, 1)
	if got, want := c.String(), "[offset 1] -"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestCursorTrace(t *testing.T) {
	prog := Compile(mustParse("."))
	var sb strings.Builder
	c := NewCursor(prog, "x").WithTrace(&sb)
	c.NextInst()
	c.NextChar()
	c.NextInst()
	want := "[offset 0]  0. any\n[offset 1]  1. match\n"
	if got := sb.String(); got != want {
		t.Errorf("trace =\n%s\nwant\n%s", got, want)
	}
}
