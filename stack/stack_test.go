package stack

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Stack(t *testing.T) {
	t.Parallel()

	s := BuildStack[int32]()

	src := []int32{1, 2, 3, 4, 5}

	for _, v := range src {
		s.Push(v)
	}

	lenSrc := s.Len()
	require.Equal(t, len(src), lenSrc)

	for i := lenSrc - 1; i >= 0; i-- {
		top := s.Get()
		require.Equal(t, src[i], *top)

		popped := s.Pop()
		require.Equal(t, src[i], *popped)
	}

	require.Equal(t, 0, s.Len())

	nilGet := s.Get()
	require.Nil(t, nilGet)

	nilPop := s.Pop()
	require.Nil(t, nilPop)
}

func Test_Stack_PopOrder(t *testing.T) {
	t.Parallel()

	s := BuildStack[int]()
	s.Push(10)
	s.Push(20)
	s.Push(30)

	require.Equal(t, 30, *s.Pop())
	require.Equal(t, 20, *s.Pop())
	require.Equal(t, 10, *s.Pop())
	require.Nil(t, s.Pop())
}
