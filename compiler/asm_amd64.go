//go:build amd64 && unix

package compiler

import "unsafe"

// nativeCall transfers control to the native routine at entry,
// passing ctx in RDI per the System V AMD64 calling convention. The
// routine's own prologue (emitted by newAmd64Routine) reloads the
// data pointer and tape base from ctx and jumps to ctx.resumeAddr, so
// entry is always the same prologue address regardless of where
// execution actually resumes. Implemented in asm_amd64.s.
func nativeCall(entry uintptr, ctx unsafe.Pointer)
