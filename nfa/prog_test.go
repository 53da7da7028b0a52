package nfa

import (
	"errors"
	"strings"
	"testing"
)

func TestProgString(t *testing.T) {
	prog := Compile(mustParse("a|(b)"))
	want := strings.Join([]string{
		" 0. split 1, 3",
		" 1. char a",
		" 2. jmp 6",
		" 3. save 2",
		" 4. char b",
		" 5. save 3",
		" 6. match",
		"",
	}, "\n")
	if got := prog.String(); got != want {
		t.Errorf("String() =\n%s\nwant\n%s", got, want)
	}
}

func TestInstString(t *testing.T) {
	tests := []struct {
		inst Inst
		want string
	}{
		{Inst{Op: OpChar, Rune: 'x'}, "char x"},
		{Inst{Op: OpChar, Rune: 'é'}, "char é"},
		{Inst{Op: OpAny}, "any"},
		{Inst{Op: OpMatch}, "match"},
		{Inst{Op: OpJmp, X: 7}, "jmp 7"},
		{Inst{Op: OpSplit, X: 1, Y: 4}, "split 1, 4"},
		{Inst{Op: OpSave, N: 3}, "save 3"},
		{Inst{Op: Op(42)}, "Op(42)"},
	}
	for _, tt := range tests {
		if got := tt.inst.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestProgValidate(t *testing.T) {
	tests := []struct {
		name  string
		insts []Inst
		slots int
		pc    int
	}{
		{"odd slots", []Inst{{Op: OpMatch}}, 3, -1},
		{"empty", nil, 0, -1},
		{"no trailing match", []Inst{{Op: OpAny}}, 0, 0},
		{"jmp out of range", []Inst{{Op: OpJmp, X: 5}, {Op: OpMatch}}, 0, 0},
		{"split out of range", []Inst{{Op: OpSplit, X: 1, Y: -1}, {Op: OpMatch}}, 0, 0},
		{"save out of range", []Inst{{Op: OpAny}, {Op: OpSave, N: 2}, {Op: OpMatch}}, 2, 1},
		{"unknown op", []Inst{{Op: Op(9)}, {Op: OpMatch}}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewProg(tt.insts, tt.slots).Validate()
			if !errors.Is(err, ErrInvalidProgram) {
				t.Fatalf("Validate() = %v, want ErrInvalidProgram", err)
			}
			var cerr *CompileError
			if !errors.As(err, &cerr) {
				t.Fatalf("Validate() error type = %T, want *CompileError", err)
			}
			if cerr.PC != tt.pc {
				t.Errorf("PC = %d, want %d", cerr.PC, tt.pc)
			}
		})
	}
}

func TestNewProgCopiesInput(t *testing.T) {
	insts := []Inst{{Op: OpChar, Rune: 'a'}, {Op: OpMatch}}
	prog := NewProg(insts, 0)
	insts[0].Rune = 'z'
	if prog.Inst(0).Rune != 'a' {
		t.Error("NewProg() shares the caller's slice")
	}
	if prog.Inst(-1) != nil || prog.Inst(2) != nil {
		t.Error("Inst() out of range should return nil")
	}
	if prog.NumGroups() != 0 {
		t.Errorf("NumGroups() = %d, want 0", prog.NumGroups())
	}
}
