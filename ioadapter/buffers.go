package ioadapter

import "bytes"

// Buffers implements IOAdapter over in-memory buffers. It is the
// adapter the test suite uses to assert backend equivalence: feed the
// same input bytes through Interpreter, AheadOfTime and Coordinator
// and compare the Output buffers byte-for-byte.
//
// Like Std, the Write/Read args are ignored — a single Buffers value
// is bound to its own In/Out.
type Buffers struct {
	In  *bytes.Reader
	Out *bytes.Buffer
}

// NewBuffers creates a Buffers adapter reading from in and collecting
// writes into a fresh Out buffer.
func NewBuffers(in []byte) *Buffers {
	return &Buffers{
		In:  bytes.NewReader(in),
		Out: &bytes.Buffer{},
	}
}

// Write appends b to Out. Buffers never fails to write.
func (b *Buffers) Write(_ any, v byte) bool {
	_ = b.Out.WriteByte(v)
	return true
}

// Read reads the next byte of In, returning 0 once it is exhausted.
func (b *Buffers) Read(_ any) byte {
	v, err := b.In.ReadByte()
	if err != nil {
		return 0
	}
	return v
}
