// Package bf holds the data model shared by every execution tier:
// program text, the tape, and the loop index produced by the bracket
// matcher. Interpreter, compiler and JIT packages all consume the types
// defined here.
package bf

import (
	"github.com/yurii-vyrovyi/tieredbf/ioadapter"
	"github.com/yurii-vyrovyi/tieredbf/stack"
)

// Command bytes. All other bytes in a Program are comments and are
// skipped by every executor.
const (
	CmdShiftRight = '>'
	CmdShiftLeft  = '<'
	CmdPlus       = '+'
	CmdMinus      = '-'
	CmdOut        = '.'
	CmdIn         = ','
	CmdStartLoop  = '['
	CmdEndLoop    = ']'
)

// DefaultTapeSize is the tape size mandated by the CLI surface: one
// mebibyte, zero-initialized.
const DefaultTapeSize = 1 << 20

// Program is an immutable, non-owning view of Brainfuck source text.
// Executors hold it for the duration of a single run.
type Program []byte

// NewTape allocates a zero-initialized tape of the given size, or
// DefaultTapeSize if size is 0.
func NewTape(size int) []byte {
	if size == 0 {
		size = DefaultTapeSize
	}
	return make([]byte, size)
}

// LoopRecord is the bracket matcher's bookkeeping for a single '['
// position. HitCount and Compiled are only ever touched by the JIT
// coordinator; the interpreter and ahead-of-time compiler leave them
// at their zero values.
type LoopRecord struct {
	// AfterEnd is the program-text position immediately following the
	// matching ']'.
	AfterEnd int

	// HitCount counts how many times this loop's condition has been
	// evaluated. Monotonically non-decreasing, JIT-only.
	HitCount int

	// Compiled holds the native routine for this loop body once the
	// JIT has promoted it. Never cleared once set.
	Compiled Routine
}

// Routine is the JIT/compiler's entry contract: run a compiled region
// once, starting from dataPtr, and return the new data pointer. The
// io/readArg/writeArg triple matches the interpreter's dispatch
// signature so the two can splice into each other.
//
// Close releases any executable memory backing the routine. It is
// safe to call Close more than once.
type Routine interface {
	Run(io ioadapter.IOAdapter, readArg, writeArg any, dataPtr int, tape []byte) (int, error)
	Close() error
}

// Executor is the contract all three execution tiers honour: prepare
// any index structures in Init, then execute to completion in Run.
type Executor interface {
	Init(program []byte) error
	Run(io ioadapter.IOAdapter, readArg, writeArg any, dataPtr int, tape []byte) (int, error)
}

// LoopIndex maps each '[' position in a Program to its Loop Record.
type LoopIndex map[int]*LoopRecord

// BuildLoopIndex performs the one-pass bracket match described in the
// bracket matcher design: push the position of every unmatched '[' on
// a stack, and on ']' pop the top and record AfterEnd against it. An
// orphan ']' (empty stack) is not an error — it is left unrecorded and
// tolerated by executors as a no-op. A nonempty stack at the end of
// input is a StructuralError naming the offending '['.
func BuildLoopIndex(program Program) (LoopIndex, error) {
	index := make(LoopIndex)
	starts := stack.BuildStack[int]()

	for i, c := range program {
		switch c {
		case CmdStartLoop:
			starts.Push(i)

		case CmdEndLoop:
			if start := starts.Pop(); start != nil {
				index[*start] = &LoopRecord{AfterEnd: i + 1}
			}
		}
	}

	if starts.Len() > 0 {
		pos := *starts.Get()
		return nil, &StructuralError{
			Pos:     pos,
			Program: program,
		}
	}

	return index, nil
}
