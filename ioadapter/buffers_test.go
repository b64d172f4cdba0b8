package ioadapter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yurii-vyrovyi/tieredbf/ioadapter"
)

func Test_Buffers_ReadReturnsZeroOnEOF(t *testing.T) {
	t.Parallel()

	b := ioadapter.NewBuffers([]byte{0x41})

	require.Equal(t, byte(0x41), b.Read(nil))
	require.Equal(t, byte(0), b.Read(nil))
	require.Equal(t, byte(0), b.Read(nil))
}

func Test_Buffers_WriteNeverFails(t *testing.T) {
	t.Parallel()

	b := ioadapter.NewBuffers(nil)

	for _, v := range []byte("abc") {
		require.True(t, b.Write(nil, v))
	}
	require.Equal(t, "abc", b.Out.String())
}
