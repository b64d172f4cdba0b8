// Package diag holds the ambient diagnostics logger shared by the JIT
// coordinator, the frame pacer and the CLI driver. It is a thin
// wrapper over the standard library's log.Logger: the pack's
// brainfuck/VM repos diagnose to stderr with fmt/log directly, and
// nothing in the retrieval pack reaches for a structured logging
// library at this scale, so this module doesn't either.
package diag

import (
	"log"
	"os"
)

// New returns a Logger writing prefixed lines to stderr. prefix is
// typically the component name ("jit", "pacer", "bf").
func New(prefix string) *log.Logger {
	if prefix != "" {
		prefix += ": "
	}
	return log.New(os.Stderr, prefix, 0)
}

// Discard returns a Logger that drops every line, for callers (tests,
// library embedders) that want the diagnostic call sites exercised
// without stderr noise.
func Discard() *log.Logger {
	return log.New(discardWriter{}, "", 0)
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) {
	return len(p), nil
}
