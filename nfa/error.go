// Package nfa compiles a syntax tree into a linear bytecode program and runs
// it with four interchangeable engines:
//
//   - Recursive: recursive backtracking, in a fully recursive form and a loop
//     form that only recurses at branch points
//   - Backtracker: backtracking over an explicit, bounded thread stack
//   - Thompson: lock-step NFA simulation without captures, linear time
//   - PikeVM: lock-step NFA simulation with per-thread captures, linear time
//
// All engines implement leftmost-first (Perl) priority: the first operand of
// a Split is always preferred. They agree on whether a program matches, and
// the engines that track captures agree on every captured offset.
package nfa

import (
	"errors"
	"fmt"
)

// Common engine errors
var (
	// ErrThreadLimit indicates the Backtracker exceeded its thread ceiling.
	// The search space is impractical for that engine; no partial result
	// is produced.
	ErrThreadLimit = errors.New("backtrack thread limit exceeded")

	// ErrInvalidProgram indicates a program failed validation.
	ErrInvalidProgram = errors.New("invalid program")
)

// CompileError reports a program that violates the compiler's invariants.
// Compile never produces one for a well-formed tree; it comes from
// Prog.Validate on hand-built or corrupted programs.
type CompileError struct {
	Message string
	PC      int // -1 when the problem is not tied to one instruction
}

// Error implements the error interface
func (e *CompileError) Error() string {
	if e.PC >= 0 {
		return fmt.Sprintf("nfa: invalid program at pc %d: %s", e.PC, e.Message)
	}
	return fmt.Sprintf("nfa: invalid program: %s", e.Message)
}

// Unwrap returns ErrInvalidProgram so callers can test with errors.Is.
func (e *CompileError) Unwrap() error {
	return ErrInvalidProgram
}

// ResourceError reports that the Backtracker would have queued more than
// Limit deferred threads.
type ResourceError struct {
	Limit  int
	PC     int // pc of the Split that overflowed
	Offset int // input offset at the overflow
}

// Error implements the error interface
func (e *ResourceError) Error() string {
	return fmt.Sprintf("nfa: %v: limit %d reached at pc %d, offset %d",
		ErrThreadLimit, e.Limit, e.PC, e.Offset)
}

// Unwrap returns ErrThreadLimit.
func (e *ResourceError) Unwrap() error {
	return ErrThreadLimit
}
