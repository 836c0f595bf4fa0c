package fn

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptionSomeNone(t *testing.T) {
	require.True(t, Some(5).IsSome())
	require.False(t, Some(5).IsNone())
	require.True(t, None[int]().IsNone())
}

func TestOptionUnwrapOr(t *testing.T) {
	require.Equal(t, 5, Some(5).UnwrapOr(9))
	require.Equal(t, 9, None[int]().UnwrapOr(9))
}

func TestOptionWhenSome(t *testing.T) {
	var got int
	Some(42).WhenSome(func(a int) { got = a })
	require.Equal(t, 42, got)

	got = 0
	None[int]().WhenSome(func(a int) { got = a })
	require.Equal(t, 0, got)
}

func TestOptionUnsafeFromSomePanicsOnNone(t *testing.T) {
	require.Panics(t, func() {
		None[int]().UnsafeFromSome()
	})
}

func TestOptionUnwrapOrErr(t *testing.T) {
	sentinel := errors.New("empty")

	v, err := Some(7).UnwrapOrErr(sentinel)
	require.NoError(t, err)
	require.Equal(t, 7, v)

	_, err = None[int]().UnwrapOrErr(sentinel)
	require.ErrorIs(t, err, sentinel)
}

func TestOptionAlt(t *testing.T) {
	require.Equal(t, Some(1), Some(1).Alt(Some(2)))
	require.Equal(t, Some(2), None[int]().Alt(Some(2)))
}

func TestFlattenOption(t *testing.T) {
	require.True(t, FlattenOption(Some(Some(1))).IsSome())
	require.True(t, FlattenOption(Some(None[int]())).IsNone())
	require.True(t, FlattenOption(None[Option[int]]()).IsNone())
}

func TestMapOption(t *testing.T) {
	double := MapOption(func(a int) int { return a * 2 })

	require.Equal(t, Some(10), double(Some(5)))
	require.True(t, double(None[int]()).IsNone())
}
