//go:build amd64 && unix

package compiler

import (
	"encoding/binary"
	"unsafe"

	"github.com/yurii-vyrovyi/tieredbf/bf"
	"github.com/yurii-vyrovyi/tieredbf/compiler/execbuf"
	"github.com/yurii-vyrovyi/tieredbf/ioadapter"
)

// Native routine status codes, written into nativeCtx.status by the
// generated code. Mirrors wazero's jitCallStatusCode exit/resume
// pattern: the routine never calls back into Go directly -- it stops
// and reports what it needs, the Go side performs the I/O, and calls
// back in at the recorded resume point.
const (
	statusDone  = 0
	statusRead  = 1
	statusWrite = 2
)

// nativeCtx is shared between Go and the generated machine code. Field
// offsets below are baked into the emitted instructions by
// emitPrologue/emitIO/emitEpilogue -- keep them in sync.
type nativeCtx struct {
	dataPtr     int64   // offset 0
	tapeBase    uintptr // offset 8
	status      int64   // offset 16
	resumeIndex int64   // offset 24
	resumeAddr  uintptr // offset 32
}

const (
	ctxOffDataPtr     = 0
	ctxOffTapeBase    = 8
	ctxOffStatus      = 16
	ctxOffResumeIndex = 24
	ctxOffResumeAddr  = 32
)

// amd64Generator emits x86-64 machine code for a lowered op slice.
// Grounded on other_examples' lcox74-bfcc X86_64Generator (the
// targets/labelAddr/fixups bookkeeping), retargeted from a
// freestanding ELF entry point to an in-process calling convention
// (ctx pointer in RDI) grounded on launix-de-memcp's scm-jit_amd64.go
// raw-byte-emission style.
type amd64Generator struct {
	ops       []op
	code      []byte
	labelAddr []int // one entry per op index, plus a trailing sentinel for len(ops)
	fixups    []jumpFixup
}

type jumpFixup struct {
	offset    int // offset of the rel32 field
	targetIdx int // op index the jump targets
}

func newAmd64Routine(ops []op) (bf.Routine, error) {
	g := &amd64Generator{
		ops:       ops,
		code:      make([]byte, 0, 256+64*len(ops)),
		labelAddr: make([]int, len(ops)+1),
	}
	g.generate()

	buf, err := execbuf.Alloc(len(g.code))
	if err != nil {
		return nil, err
	}
	copy(buf.Bytes(), g.code)
	if err := buf.MakeExecutable(); err != nil {
		_ = buf.Close()
		return nil, err
	}

	base := uintptr(buf.EntryPointer())
	return &nativeRoutine{
		buf:         buf,
		entry:       base,
		prologueLen: uintptr(g.labelAddr[0]),
		labelAddr:   g.labelAddr,
		base:        base,
	}, nil
}

func (g *amd64Generator) generate() {
	g.emitPrologue()

	for i, o := range g.ops {
		g.labelAddr[i] = len(g.code)
		switch o.kind {
		case opShift:
			g.emitShift(o.arg)
		case opAdd:
			g.emitAdd(o.arg)
		case opIn:
			g.emitIO(i, statusRead)
		case opOut:
			g.emitIO(i, statusWrite)
		case opJz:
			g.emitJz(o.arg)
		case opJnz:
			g.emitJnz(o.arg)
		}
	}
	g.labelAddr[len(g.ops)] = len(g.code)

	g.emitEpilogue()
	g.resolveFixups()
}

func (g *amd64Generator) emit(b ...byte) {
	g.code = append(g.code, b...)
}

func (g *amd64Generator) emitImm32(v int32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	g.code = append(g.code, buf[:]...)
}

// emitPrologue: mov r12,[rdi]; mov r13,[rdi+8]; mov rax,[rdi+32]; jmp rax
func (g *amd64Generator) emitPrologue() {
	g.emit(0x4C, 0x8B, 0x27)             // mov r12, [rdi]
	g.emit(0x4C, 0x8B, 0x6F, ctxOffTapeBase) // mov r13, [rdi+8]
	g.emit(0x48, 0x8B, 0x47, ctxOffResumeAddr) // mov rax, [rdi+32]
	g.emit(0xFF, 0xE0)                   // jmp rax
}

// emitShift: add/sub r12, imm32
func (g *amd64Generator) emitShift(delta int) {
	if delta == 0 {
		return
	}
	if delta > 0 {
		g.emit(0x49, 0x81, 0xC4)
		g.emitImm32(int32(delta))
	} else {
		g.emit(0x49, 0x81, 0xEC)
		g.emitImm32(int32(-delta))
	}
}

// emitAdd: add byte ptr [r13+r12], imm8. delta is already folded mod 256.
func (g *amd64Generator) emitAdd(delta int) {
	if delta == 0 {
		return
	}
	g.emit(0x43, 0x80, 0x44, 0x25, 0x00, byte(delta))
}

// emitIO: mov [rdi], r12; mov qword [rdi+16], status; mov qword [rdi+24], nextIdx; ret
func (g *amd64Generator) emitIO(opIdx int, status int32) {
	g.emit(0x4C, 0x89, 0x27) // mov [rdi], r12

	g.emit(0x48, 0xC7, 0x47, ctxOffStatus)
	g.emitImm32(status)

	g.emit(0x48, 0xC7, 0x47, ctxOffResumeIndex)
	g.emitImm32(int32(opIdx + 1))

	g.emit(0xC3) // ret
}

// emitJz: cmp byte [r13+r12], 0; je rel32
func (g *amd64Generator) emitJz(target int) {
	g.emit(0x43, 0x80, 0x7C, 0x25, 0x00, 0x00) // cmp byte [r13+r12], 0
	g.emit(0x0F, 0x84)                         // je rel32
	g.fixups = append(g.fixups, jumpFixup{offset: len(g.code), targetIdx: target})
	g.emitImm32(0)
}

// emitJnz: cmp byte [r13+r12], 0; jne rel32
func (g *amd64Generator) emitJnz(target int) {
	g.emit(0x43, 0x80, 0x7C, 0x25, 0x00, 0x00) // cmp byte [r13+r12], 0
	g.emit(0x0F, 0x85)                         // jne rel32
	g.fixups = append(g.fixups, jumpFixup{offset: len(g.code), targetIdx: target})
	g.emitImm32(0)
}

// emitEpilogue: mov [rdi], r12; mov qword [rdi+16], 0 (done); ret
func (g *amd64Generator) emitEpilogue() {
	g.emit(0x4C, 0x89, 0x27)
	g.emit(0x48, 0xC7, 0x47, ctxOffStatus)
	g.emitImm32(statusDone)
	g.emit(0xC3)
}

func (g *amd64Generator) resolveFixups() {
	for _, f := range g.fixups {
		target := g.labelAddr[f.targetIdx]
		instrEnd := f.offset + 4
		rel32 := int32(target - instrEnd)
		binary.LittleEndian.PutUint32(g.code[f.offset:], uint32(rel32))
	}
}

// nativeRoutine is the Routine implementation backing an amd64
// compiled region. Run drives the exit/resume protocol: invoke the
// native code, and whenever it reports statusRead/statusWrite, do the
// I/O in Go (the only place the adapter can safely be called from)
// and re-enter at the recorded resume point.
type nativeRoutine struct {
	buf         *execbuf.Buffer
	entry       uintptr // prologue address, fixed
	prologueLen uintptr
	labelAddr   []int
	base        uintptr
}

func (r *nativeRoutine) Run(io ioadapter.IOAdapter, readArg, writeArg any, dataPtr int, tape []byte) (int, error) {
	var tapeBase uintptr
	if len(tape) > 0 {
		tapeBase = uintptr(unsafe.Pointer(&tape[0]))
	}

	ctx := &nativeCtx{
		dataPtr:     int64(dataPtr),
		tapeBase:    tapeBase,
		resumeIndex: 0,
	}

	for {
		ctx.resumeAddr = r.base + uintptr(r.labelAddr[ctx.resumeIndex])
		nativeCall(r.entry, unsafe.Pointer(ctx))

		switch ctx.status {
		case statusDone:
			return int(ctx.dataPtr), nil

		case statusRead:
			tape[ctx.dataPtr] = io.Read(readArg)

		case statusWrite:
			_ = io.Write(writeArg, tape[ctx.dataPtr])
		}
	}
}

// Close releases the routine's executable memory.
func (r *nativeRoutine) Close() error {
	return r.buf.Close()
}

func newRoutine(ops []op) (bf.Routine, error) {
	return newAmd64Routine(ops)
}
