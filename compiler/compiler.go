// Package compiler implements the native compiler tier: it lowers a
// balanced Brainfuck byte range to an IR (ir.go) and hands it to
// whichever backend the build target supports -- real amd64 machine
// code (exec_amd64.go) or a threaded-code fallback of Go closures
// (exec_generic.go). Both backends satisfy the same bf.Routine entry
// contract, so the JIT coordinator and the ahead-of-time executor
// below don't need to know which one they got.
package compiler

import (
	"fmt"

	"github.com/yurii-vyrovyi/tieredbf/bf"
	"github.com/yurii-vyrovyi/tieredbf/ioadapter"
)

// CompileError reports a region the native compiler could not lower,
// e.g. because the bracket count within it did not balance.
type CompileError struct {
	Reason string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compiler: %s", e.Reason)
}

// Compile lowers region (which must be balanced -- every '[' matched,
// as validated by bf.BuildLoopIndex; an orphan ']' is tolerated) into
// a Routine.
// region may be an entire program (ahead-of-time mode) or a single
// "[...]" loop body including both brackets (JIT promotion).
//
// Both callers (AheadOfTime.Init and jit.Coordinator) only ever pass
// regions already validated by bf.BuildLoopIndex, so the balance check
// below never fires in normal operation; it exists to hold up §4.3's
// "the compiler requires a balanced input" contract for any other
// caller of this exported entry point.
func Compile(region []byte) (bf.Routine, error) {
	if depth := bracketDepth(region); depth != 0 {
		return nil, &CompileError{Reason: fmt.Sprintf("unbalanced brackets in region (depth %d at end)", depth)}
	}

	ops := lower(region)
	return newRoutine(ops)
}

// bracketDepth returns the count of '[' left unmatched at the end of
// region. An orphan ']' (one with no open '[' to close) does not
// affect the count, mirroring bf.BuildLoopIndex's tolerance for orphan
// closes -- only an unmatched '[' makes a region unbalanced.
func bracketDepth(region []byte) int {
	depth := 0
	for _, c := range region {
		switch c {
		case bf.CmdStartLoop:
			depth++
		case bf.CmdEndLoop:
			if depth > 0 {
				depth--
			}
		}
	}
	return depth
}

// AheadOfTime implements bf.Executor by compiling the whole program
// once in Init and running the resulting Routine in Run. Unlike the
// JIT, a failed compilation here is fatal: there is no interpreter to
// fall back to.
type AheadOfTime struct {
	routine bf.Routine
}

// Init validates bracket balance and compiles the full program.
func (a *AheadOfTime) Init(program []byte) error {
	if _, err := bf.BuildLoopIndex(program); err != nil {
		return err
	}

	routine, err := Compile(program)
	if err != nil {
		return fmt.Errorf("ahead-of-time compilation failed: %w", err)
	}

	a.routine = routine
	return nil
}

// Run executes the compiled program to completion.
func (a *AheadOfTime) Run(io ioadapter.IOAdapter, readArg, writeArg any, dataPtr int, tape []byte) (int, error) {
	return a.routine.Run(io, readArg, writeArg, dataPtr, tape)
}

// Close releases the compiled routine's executable memory.
func (a *AheadOfTime) Close() error {
	if a.routine == nil {
		return nil
	}
	return a.routine.Close()
}
