package layouts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	scalar := ScalarLayout
	require.Equal(t, 0, scalar.Rank())
	require.True(t, scalar.IsScalar())
	require.Equal(t, 1, scalar.Size())
	require.True(t, scalar.IsContiguous())

	l := Make(4, 3, 2)
	require.Equal(t, 3, l.Rank())
	require.False(t, l.IsScalar())
	require.Equal(t, 4*3*2, l.Size())
	require.Equal(t, 4, l.Extent(0))
	require.Equal(t, 3, l.Extent(1))
	require.Equal(t, 2, l.Extent(2))
	require.Equal(t, 6, l.CumulativeIncrement(0))
	require.Equal(t, 2, l.CumulativeIncrement(1))
	require.Equal(t, 1, l.CumulativeIncrement(2))
	require.True(t, l.IsContiguous())

	require.Panics(t, func() { Make(3, 0) })
	require.Panics(t, func() { Make(-1) })
	require.Panics(t, func() { _ = l.Extent(3) })
	require.Panics(t, func() { _ = l.CumulativeIncrement(-1) })
}

func TestFlatIndex(t *testing.T) {
	l := Make(3, 4)
	require.Equal(t, 0, l.FlatIndex(0, 0))
	require.Equal(t, 5, l.FlatIndex(1, 1))
	require.Equal(t, 11, l.FlatIndex(2, 3))
	require.Panics(t, func() { l.FlatIndex(1) })
	require.Panics(t, func() { l.FlatIndex(3, 0) })
}

func TestSlice(t *testing.T) {
	matrix := Make(3, 4)
	row := matrix.Slice(1)
	require.Equal(t, 1, row.Rank())
	require.Equal(t, 4, row.Extent(0))
	require.Equal(t, 1, row.CumulativeIncrement(0))

	column := matrix.Slice(0)
	require.Equal(t, 3, column.Extent(0))
	require.Equal(t, 4, column.CumulativeIncrement(0))
	require.False(t, column.IsContiguous())
	require.Equal(t, "[3]:{4}", column.String())
}

func TestEqual(t *testing.T) {
	require.True(t, Make(2, 3).Equal(Make(2, 3)))
	require.False(t, Make(2, 3).Equal(Make(3, 2)))
	require.False(t, Make(2, 3).Equal(Make(2, 3, 1)))
	require.False(t, Make(3).Equal(Make(3, 4).Slice(0)))
	require.True(t, ScalarLayout.Equal(Make()))
}

func TestIter(t *testing.T) {
	var got [][]int
	for coords := range Make(2, 3).Iter() {
		got = append(got, append([]int(nil), coords...))
	}
	want := [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	require.Equal(t, want, got)

	count := 0
	for coords := range ScalarLayout.Iter() {
		require.Empty(t, coords)
		count++
	}
	require.Equal(t, 1, count)
}
