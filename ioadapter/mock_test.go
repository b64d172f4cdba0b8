package ioadapter_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/yurii-vyrovyi/tieredbf/bf"
	"github.com/yurii-vyrovyi/tieredbf/interp"
	"github.com/yurii-vyrovyi/tieredbf/ioadapter"
)

// Test_WriteFailureIsTolerated exercises spec.md §7's "I/O write
// failure" rule: a false return from Write is absorbed and execution
// continues, using the generated mock rather than a real buffer so
// the failure can be forced deterministically.
func Test_WriteFailureIsTolerated(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mock := ioadapter.NewMockIOAdapter(ctrl)
	mock.EXPECT().Write(gomock.Any(), byte(1)).Return(false)

	p := &interp.Interpreter{}
	require.NoError(t, p.Init([]byte("+.")))

	tape := bf.NewTape(0)
	ptr, err := p.Run(mock, nil, nil, 0, tape)
	require.NoError(t, err)
	require.Equal(t, 0, ptr)
}

// Test_ReadDeliversMockedBytes exercises the mock's Read expectation
// sequencing, which a plain Buffers adapter can't express (distinct
// per-call return values without an explicit slice cursor).
func Test_ReadDeliversMockedBytes(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mock := ioadapter.NewMockIOAdapter(ctrl)
	gomock.InOrder(
		mock.EXPECT().Read(gomock.Any()).Return(byte('x')),
		mock.EXPECT().Read(gomock.Any()).Return(byte('y')),
	)

	p := &interp.Interpreter{}
	require.NoError(t, p.Init([]byte(",>,")))

	tape := bf.NewTape(0)
	_, err := p.Run(mock, nil, nil, 0, tape)
	require.NoError(t, err)
	require.Equal(t, byte('x'), tape[0])
	require.Equal(t, byte('y'), tape[1])
}
