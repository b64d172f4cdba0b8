// Package pacer implements the frame pacer adapter: it wraps an
// ioadapter.IOAdapter's write primitive and throttles output at ANSI
// cursor-home escape sequences to approximate a target frame rate.
//
// Grounded on original_source/bf_io_game.cpp's BrainfuckIOGame::bf_write.
// The recognizer's state there lived in function-local C statics;
// spec.md's design notes call that out as something a clean
// re-architecture should move onto the adapter instance, which is
// exactly what the Writer struct below does.
package pacer

import (
	"log"
	"time"

	"github.com/yurii-vyrovyi/tieredbf/ioadapter"
)

// recognizer states for the ANSI cursor-home sequence ESC '[' ('H'|'f').
const (
	stateIdle = iota
	stateSawEsc
	stateSawBracket
)

const (
	esc = 0x1b
)

// Writer wraps an IOAdapter, throttling the byte stream at each
// cursor-home escape sequence so that frames arrive no faster than
// 1e6/fps microseconds apart. Every byte still reaches the
// underlying adapter unchanged; only timing is altered.
type Writer struct {
	ioadapter.IOAdapter

	frameLimit time.Duration
	logger     *log.Logger

	state       int
	frameCount  int
	lastFrame   time.Time
	lag         time.Duration
}

// New wraps next with a pacer limiting output to fps frames per
// second. If logger is non-nil, every recognized frame is logged with
// its delta, limit and accumulated lag (the --fps-log CLI option).
func New(next ioadapter.IOAdapter, fps int, logger *log.Logger) *Writer {
	return &Writer{
		IOAdapter:  next,
		frameLimit: time.Duration(1e6/fps) * time.Microsecond,
		logger:     logger,
		lastFrame:  time.Now(),
	}
}

// Write passes b through to the wrapped adapter unchanged, then
// advances the recognizer. On a completed cursor-home sequence, it
// sleeps or accumulates lag before returning.
func (w *Writer) Write(arg any, b byte) bool {
	ok := w.IOAdapter.Write(arg, b)

	switch w.state {
	case stateIdle:
		if b == esc {
			w.state = stateSawEsc
		}

	case stateSawEsc:
		if b == '[' {
			w.state = stateSawBracket
		} else {
			w.state = stateIdle
		}

	case stateSawBracket:
		if b == 'H' || b == 'f' {
			w.onFrame()
		}
		w.state = stateIdle
	}

	return ok
}

func (w *Writer) onFrame() {
	w.frameCount++

	now := time.Now()
	delta := now.Sub(w.lastFrame)

	if delta < w.frameLimit {
		time.Sleep(w.frameLimit - delta)
	} else {
		w.lag += delta - w.frameLimit
	}

	w.lastFrame = time.Now()

	if w.logger != nil {
		w.logger.Printf("frame %d delta %s limit %s lag %s", w.frameCount, delta, w.frameLimit, w.lag)
	}
}
