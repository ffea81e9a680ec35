package seq

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertRemove(t *testing.T) {
	s := New(1, 2, 3)
	require.NoError(t, s.Insert(0, 0))
	require.NoError(t, s.Insert(4, 4))
	require.NoError(t, s.Insert(2, 9))
	assert.Equal(t, []int{0, 1, 9, 2, 3, 4}, s.Items())

	require.NoError(t, s.RemoveAt(2))
	require.NoError(t, s.RemoveAt(0))
	require.NoError(t, s.RemoveAt(s.Len()-1))
	assert.Equal(t, []int{1, 2, 3}, s.Items())
}

func TestInsertThenRemoveRoundTrip(t *testing.T) {
	orig := []string{"a", "b", "c"}
	for i := 0; i <= len(orig); i++ {
		s := New(orig...)
		require.NoError(t, s.Insert(i, "x"))
		require.NoError(t, s.RemoveAt(i))
		assert.Equal(t, orig, s.Items())
	}
}

func TestOutOfRange(t *testing.T) {
	s := New(1, 2)

	_, err := s.At(2)
	var ie *IndexError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "at", ie.Op)
	assert.Equal(t, 2, ie.Index)
	assert.Equal(t, 2, ie.Len)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	assert.ErrorIs(t, s.Set(-1, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Insert(3, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.Insert(-1, 0), ErrIndexOutOfRange)
	assert.ErrorIs(t, s.RemoveAt(2), ErrIndexOutOfRange)
	assert.Equal(t, []int{1, 2}, s.Items())
}

func TestRemoveFromEmptyIsNoop(t *testing.T) {
	s := New[int]()
	assert.NoError(t, s.RemoveAt(0))
	assert.NoError(t, s.RemoveAt(5))
	assert.Equal(t, 0, s.Len())
}

func TestItemsIsSnapshot(t *testing.T) {
	s := New(1, 2, 3)
	snap := s.Items()
	require.NoError(t, s.Set(0, 10))
	require.NoError(t, s.Insert(1, 20))
	assert.Equal(t, []int{1, 2, 3}, snap)
	v, err := s.At(0)
	require.NoError(t, err)
	assert.Equal(t, 10, v)
}

func TestIndexFuncAndAll(t *testing.T) {
	s := New("a", "b", "c")
	assert.Equal(t, 1, s.IndexFunc(func(v string) bool { return v == "b" }))
	assert.Equal(t, -1, s.IndexFunc(func(v string) bool { return v == "z" }))

	var got []string
	for i, v := range s.All() {
		if i == 2 {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []string{"a", "b"}, got)
}
