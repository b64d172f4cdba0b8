package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yurii-vyrovyi/tieredbf/bf"
	"github.com/yurii-vyrovyi/tieredbf/compiler"
	"github.com/yurii-vyrovyi/tieredbf/ioadapter"
)

func Test_AheadOfTime_LiteralScenarios(t *testing.T) {
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

			a := &compiler.AheadOfTime{}
			require.NoError(t, a.Init([]byte(tc.program)))
			t.Cleanup(func() { _ = a.Close() })

			io := ioadapter.NewBuffers([]byte(tc.input))
			tape := bf.NewTape(0)

			_, err := a.Run(io, nil, nil, 0, tape)
			require.NoError(t, err)
			require.Equal(t, tc.want, io.Out.String())
		})
	}
}

func Test_AheadOfTime_InitRejectsUnmatchedOpen(t *testing.T) {
	t.Parallel()

	a := &compiler.AheadOfTime{}
	err := a.Init([]byte("[["))

	var structErr *bf.StructuralError
	require.ErrorAs(t, err, &structErr)
}

func Test_Compile_RejectsUnbalancedRegion(t *testing.T) {
	t.Parallel()

	_, err := compiler.Compile([]byte("[>+"))
	require.Error(t, err)

	var compileErr *compiler.CompileError
	require.ErrorAs(t, err, &compileErr)
}

func Test_Compile_EmptyLoopBodyBalances(t *testing.T) {
	t.Parallel()

	// "[]" is the balanced-but-never-entered loop body from spec.md
	// §8 row 4: compiling it must succeed even though running it with
	// a nonzero cell would loop forever.
	routine, err := compiler.Compile([]byte("[]"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = routine.Close() })

	io := ioadapter.NewBuffers(nil)
	tape := bf.NewTape(0)

	ptr, err := routine.Run(io, nil, nil, 0, tape)
	require.NoError(t, err)
	require.Equal(t, 0, ptr)
}

func Test_Compile_RunsShiftsAndArithmetic(t *testing.T) {
	t.Parallel()

	routine, err := compiler.Compile([]byte(">>+++<-"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = routine.Close() })

	io := ioadapter.NewBuffers(nil)
	tape := bf.NewTape(0)

	ptr, err := routine.Run(io, nil, nil, 0, tape)
	require.NoError(t, err)
	require.Equal(t, 1, ptr)
	require.Equal(t, byte(0xff), tape[1])
	require.Equal(t, byte(3), tape[2])
}
