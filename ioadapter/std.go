package ioadapter

import (
	"bufio"
	"io"
	"os"

	"golang.org/x/term"
)

// Std implements IOAdapter over the process's stdin/stdout. It puts
// the terminal into raw mode so that ',' reads exactly one byte
// without waiting for the user to press Enter, matching the teacher's
// reader.StdInReader/writer.StdOutWriter pair.
//
// The Write/Read args are ignored; Std is a singleton-style adapter
// bound to the process's own standard streams.
type Std struct {
	in           *bufio.Reader
	out          io.Writer
	initialState *term.State
	raw          bool
}

// NewStd creates a Std adapter. If the process's stdin is a terminal,
// it is switched to raw mode; Close restores it.
func NewStd() (*Std, error) {
	s := &Std{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stdout,
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		state, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			return nil, err
		}
		s.initialState = state
		s.raw = true
	}

	return s, nil
}

// Close restores the terminal's original state, if it was changed.
func (s *Std) Close() error {
	if !s.raw {
		return nil
	}
	return term.Restore(int(os.Stdin.Fd()), s.initialState)
}

// Write writes b to stdout.
func (s *Std) Write(_ any, b byte) bool {
	_, err := s.out.Write([]byte{b})
	return err == nil
}

// Read reads one byte from stdin, returning 0 on EOF.
func (s *Std) Read(_ any) byte {
	b, err := s.in.ReadByte()
	if err != nil {
		return 0
	}
	return b
}
