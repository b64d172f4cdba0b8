package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Lower_FoldsRunsOfShiftAndAdd(t *testing.T) {
	t.Parallel()

	ops := lower([]byte(">>>+++---<"))

	require.Equal(t, []op{
		{kind: opShift, arg: 3},
		{kind: opAdd, arg: 3},
		{kind: opAdd, arg: (-3) & 0xff},
		{kind: opShift, arg: -1},
	}, ops)
}

func Test_Lower_ResolvesLoopJumpTargets(t *testing.T) {
	t.Parallel()

	ops := lower([]byte("[-]"))

	require.Len(t, ops, 3)
	require.Equal(t, opJz, ops[0].kind)
	require.Equal(t, opAdd, ops[1].kind)
	require.Equal(t, opJnz, ops[2].kind)

	// Jz skips past the Jnz on exit; Jnz returns to the body start.
	require.Equal(t, 3, ops[0].arg)
	require.Equal(t, 1, ops[2].arg)
}

func Test_Lower_DropsOrphanClose(t *testing.T) {
	t.Parallel()

	ops := lower([]byte("]+"))
	require.Equal(t, []op{{kind: opAdd, arg: 1}}, ops)
}
