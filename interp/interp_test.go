package interp_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yurii-vyrovyi/tieredbf/bf"
	"github.com/yurii-vyrovyi/tieredbf/interp"
	"github.com/yurii-vyrovyi/tieredbf/ioadapter"
)

// Test_Interpreter_LiteralScenarios covers spec.md §8's end-to-end
// scenarios table (rows 1, 2, 3 and 6 -- row 4 is an intentional
// infinite loop and row 5 is covered by Test_Interpreter_InitRejectsUnmatchedOpen).
func Test_Interpreter_LiteralScenarios(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		program string
		input   string
		want    string
	}{
		{"add-eight-times-eight-plus-one", "++++++++[>++++++++<-]>+.", "", "A"},
		{"echo-three-bytes", ",.,.,.", "abc", "abc"},
		{"echo-until-eof", ",[.,]", "Hi!", "Hi!"},
		{"orphan-close-tolerated", "]+.", "", "\x01"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			p := &interp.Interpreter{}
			require.NoError(t, p.Init([]byte(tc.program)))

			io := ioadapter.NewBuffers([]byte(tc.input))
			tape := bf.NewTape(0)

			_, err := p.Run(io, nil, nil, 0, tape)
			require.NoError(t, err)
			require.Equal(t, tc.want, io.Out.String())
		})
	}
}

func Test_Interpreter_InitRejectsUnmatchedOpen(t *testing.T) {
	t.Parallel()

	p := &interp.Interpreter{}
	err := p.Init([]byte("++["))

	var structErr *bf.StructuralError
	require.ErrorAs(t, err, &structErr)
	require.Equal(t, 2, structErr.Pos)
}

func Test_Interpreter_CellWrap(t *testing.T) {
	t.Parallel()

	p := &interp.Interpreter{}
	require.NoError(t, p.Init([]byte("-.")))

	io := ioadapter.NewBuffers(nil)
	tape := bf.NewTape(0)

	_, err := p.Run(io, nil, nil, 0, tape)
	require.NoError(t, err)
	require.Equal(t, []byte{0xff}, io.Out.Bytes())
}

func Test_Interpreter_ReadAfterEOFYieldsZero(t *testing.T) {
	t.Parallel()

	p := &interp.Interpreter{}
	require.NoError(t, p.Init([]byte(",.,.")))

	io := ioadapter.NewBuffers([]byte{0x07})
	tape := bf.NewTape(0)

	_, err := p.Run(io, nil, nil, 0, tape)
	require.NoError(t, err)
	require.Equal(t, []byte{0x07, 0x00}, io.Out.Bytes())
}

func Test_Interpreter_ReturnsFinalDataPointer(t *testing.T) {
	t.Parallel()

	p := &interp.Interpreter{}
	require.NoError(t, p.Init([]byte(">>>")))

	io := ioadapter.NewBuffers(nil)
	tape := bf.NewTape(0)

	ptr, err := p.Run(io, nil, nil, 0, tape)
	require.NoError(t, err)
	require.Equal(t, 3, ptr)
}
