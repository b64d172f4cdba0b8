//go:build amd64 && unix

// Package execbuf allocates small pages of executable memory for the
// amd64 native compiler backend. Grounded on the mmap/mprotect
// allocator in other_examples' launix-de-memcp scm-jit.go (execBuf,
// allocExec, makeRX).
package execbuf

import (
	"fmt"
	"syscall"
	"unsafe"
)

// Buffer is a page-aligned region of memory, writable until MakeExecutable
// is called and read-execute thereafter.
type Buffer struct {
	mem []byte
}

// Alloc reserves size bytes (rounded up to a full page) of
// read-write anonymous memory.
func Alloc(size int) (*Buffer, error) {
	page := syscall.Getpagesize()
	n := (size + page - 1) &^ (page - 1)
	if n == 0 {
		n = page
	}

	mem, err := syscall.Mmap(-1, 0, n, syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_PRIVATE|syscall.MAP_ANON)
	if err != nil {
		return nil, fmt.Errorf("execbuf: mmap: %w", err)
	}

	return &Buffer{mem: mem}, nil
}

// Bytes exposes the buffer's backing slice for code emission, valid
// only before MakeExecutable is called.
func (b *Buffer) Bytes() []byte {
	return b.mem
}

// MakeExecutable switches the buffer's protection from read-write to
// read-execute. After this call the buffer must not be written to.
func (b *Buffer) MakeExecutable() error {
	if err := syscall.Mprotect(b.mem, syscall.PROT_READ|syscall.PROT_EXEC); err != nil {
		return fmt.Errorf("execbuf: mprotect: %w", err)
	}
	return nil
}

// EntryPointer returns an unsafe.Pointer to the start of the buffer.
// exec_amd64.go converts it to a uintptr entry address and jumps to it
// through the nativeCall assembly trampoline.
func (b *Buffer) EntryPointer() unsafe.Pointer {
	return unsafe.Pointer(&b.mem[0])
}

// Close releases the underlying mapping. Safe to call more than once:
// calls after the first are no-ops that return nil.
func (b *Buffer) Close() error {
	if b.mem == nil {
		return nil
	}
	mem := b.mem
	b.mem = nil
	return syscall.Munmap(mem)
}
