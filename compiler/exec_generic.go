//go:build !(amd64 && unix)

package compiler

import (
	"github.com/yurii-vyrovyi/tieredbf/bf"
	"github.com/yurii-vyrovyi/tieredbf/ioadapter"
)

// threadedRoutine is the portable fallback backend: it runs the same
// lowered op slice the amd64 backend consumes, but by direct
// interpretation rather than native code. Grounded on lcox74/bfcc's
// internal/vm.VM.Run switch-dispatch loop, adapted to the Routine
// entry contract (single call per invocation, returns the final data
// pointer) rather than owning its own memory/io for a whole program.
type threadedRoutine struct {
	ops []op
}

func newRoutine(ops []op) (bf.Routine, error) {
	return &threadedRoutine{ops: ops}, nil
}

func (r *threadedRoutine) Run(io ioadapter.IOAdapter, readArg, writeArg any, dataPtr int, tape []byte) (int, error) {
	pc := 0
	for pc < len(r.ops) {
		o := r.ops[pc]
		switch o.kind {
		case opShift:
			dataPtr += o.arg

		case opAdd:
			tape[dataPtr] += byte(o.arg)

		case opIn:
			tape[dataPtr] = io.Read(readArg)

		case opOut:
			_ = io.Write(writeArg, tape[dataPtr])

		case opJz:
			if tape[dataPtr] == 0 {
				pc = o.arg
				continue
			}

		case opJnz:
			if tape[dataPtr] != 0 {
				pc = o.arg
				continue
			}
		}
		pc++
	}
	return dataPtr, nil
}

// Close is a no-op: threadedRoutine holds no executable memory.
func (r *threadedRoutine) Close() error {
	return nil
}
