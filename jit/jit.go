// Package jit implements the hot-loop JIT coordinator: the same
// dispatch loop as interp, except at '[' it counts condition
// evaluations and promotes a loop to a compiled native routine once
// the threshold is crossed.
//
// Grounded on original_source/bf_jit.cpp's BrainfuckJIT::run -- the
// loop-record lookup, compiled-path invocation, threshold check and
// interpret-and-count fallback below follow that state machine
// exactly, translated from raw iterators/stacks to bf.LoopIndex and
// the teacher's generic stack.Stack.
package jit

import (
	"log"

	"github.com/yurii-vyrovyi/tieredbf/bf"
	"github.com/yurii-vyrovyi/tieredbf/compiler"
	"github.com/yurii-vyrovyi/tieredbf/internal/diag"
	"github.com/yurii-vyrovyi/tieredbf/ioadapter"
	"github.com/yurii-vyrovyi/tieredbf/stack"
)

// CompilationThreshold is the number of condition evaluations a loop
// must accumulate before the coordinator attempts to promote it to
// native code. Hard-coded per the design value in spec; whether it
// should be tunable is an open question the spec leaves unresolved.
const CompilationThreshold = 20

// Coordinator executes a Program with hot-loop promotion. A
// Coordinator is not safe for concurrent use: HitCount and Compiled on
// its LoopIndex are mutated only from the goroutine calling Run.
type Coordinator struct {
	program bf.Program
	loops   bf.LoopIndex

	// failed marks loop-start positions whose compilation has already
	// been attempted and failed, so Run never retries them. Kept out
	// of bf.LoopRecord to avoid adding a field the rest of the data
	// model doesn't need.
	failed map[int]bool

	// Logger receives compilation-downgrade diagnostics. Defaults to
	// a stderr logger if left nil by the zero value caller.
	Logger *log.Logger
}

// Init builds the loop index for program.
func (c *Coordinator) Init(program []byte) error {
	loops, err := bf.BuildLoopIndex(program)
	if err != nil {
		return err
	}

	c.program = program
	c.loops = loops
	c.failed = make(map[int]bool)
	if c.Logger == nil {
		c.Logger = diag.New("jit")
	}

	return nil
}

// Run executes the program, promoting loops to native code as they
// cross CompilationThreshold evaluations.
func (c *Coordinator) Run(io ioadapter.IOAdapter, readArg, writeArg any, dataPtr int, tape []byte) (int, error) {
	returns := stack.BuildStack[int]()
	cmdPtr := 0

	for cmdPtr < len(c.program) {
		switch c.program[cmdPtr] {
		case bf.CmdShiftRight:
			dataPtr++

		case bf.CmdShiftLeft:
			dataPtr--

		case bf.CmdPlus:
			tape[dataPtr]++

		case bf.CmdMinus:
			tape[dataPtr]--

		case bf.CmdOut:
			_ = io.Write(writeArg, tape[dataPtr])

		case bf.CmdIn:
			tape[dataPtr] = io.Read(readArg)

		case bf.CmdStartLoop:
			loop := c.loops[cmdPtr]

			if loop.Compiled == nil && loop.HitCount >= CompilationThreshold && !c.failed[cmdPtr] {
				region := c.program[cmdPtr:loop.AfterEnd]
				routine, err := compiler.Compile(region)
				if err != nil {
					c.failed[cmdPtr] = true
					c.Logger.Printf("jit: compilation failed for loop at %d, falling back to interpretation: %v", cmdPtr, err)
				} else {
					loop.Compiled = routine
				}
			}

			if loop.Compiled != nil {
				newDataPtr, err := loop.Compiled.Run(io, readArg, writeArg, dataPtr, tape)
				if err != nil {
					return 0, err
				}
				dataPtr = newDataPtr
				cmdPtr = loop.AfterEnd
				continue
			}

			loop.HitCount++
			if tape[dataPtr] != 0 {
				returns.Push(cmdPtr)
				cmdPtr++
				continue
			}
			cmdPtr = loop.AfterEnd
			continue

		case bf.CmdEndLoop:
			if ret := returns.Pop(); ret != nil {
				cmdPtr = *ret
				continue
			}
		}

		cmdPtr++
	}

	return dataPtr, nil
}

// Close releases every compiled loop's executable memory.
func (c *Coordinator) Close() error {
	var firstErr error
	for _, loop := range c.loops {
		if loop.Compiled == nil {
			continue
		}
		if err := loop.Compiled.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
