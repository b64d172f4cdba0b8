// Package interp implements the direct dispatch-loop executor: the
// baseline tier every other tier is checked against.
package interp

import (
	"fmt"

	"github.com/yurii-vyrovyi/tieredbf/bf"
	"github.com/yurii-vyrovyi/tieredbf/ioadapter"
	"github.com/yurii-vyrovyi/tieredbf/stack"
)

// Interpreter executes a Program by dispatching on each command byte
// in turn, maintaining a return stack of '[' positions for ']'.
// Grounded on the teacher's BfRunner.processCmd, generalized to
// consume a prebuilt bf.LoopIndex rather than rescanning for the
// matching ']' on every loop entry.
type Interpreter struct {
	program bf.Program
	loops   bf.LoopIndex
}

// Init builds the loop index for program. It must succeed before Run
// is called.
func (p *Interpreter) Init(program []byte) error {
	loops, err := bf.BuildLoopIndex(program)
	if err != nil {
		return err
	}

	p.program = program
	p.loops = loops

	return nil
}

// Run executes the program to completion and returns the final data
// pointer. readArg/writeArg are passed through to io unchanged.
func (p *Interpreter) Run(io ioadapter.IOAdapter, readArg, writeArg any, dataPtr int, tape []byte) (int, error) {
	returns := stack.BuildStack[int]()
	cmdPtr := 0

	for cmdPtr < len(p.program) {
		switch p.program[cmdPtr] {
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
			if tape[dataPtr] != 0 {
				returns.Push(cmdPtr)
				cmdPtr++
				continue
			}

			loop, ok := p.loops[cmdPtr]
			if !ok {
				return 0, fmt.Errorf("interp: no loop record for '[' at %d", cmdPtr)
			}
			cmdPtr = loop.AfterEnd
			continue

		case bf.CmdEndLoop:
			if ret := returns.Pop(); ret != nil {
				cmdPtr = *ret
				continue
			}
			// Orphan ']': tolerated no-op, fall through to advance.
		}

		cmdPtr++
	}

	return dataPtr, nil
}
