package compute

import (
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"

	"github.com/emlift/emlift/backends"
	"github.com/emlift/emlift/types/layouts"
)

func newTestContext() *Context {
	return New("").(*Context)
}

func TestForOrder(t *testing.T) {
	c := newTestContext()
	var visited [][2]int
	c.For(layouts.Make(2, 3), func(coords []backends.Op) {
		require.Len(t, coords, 2)
		visited = append(visited, [2]int{
			int(ScalarOf[int32](coords[0])),
			int(ScalarOf[int32](coords[1])),
		})
	})
	want := [][2]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}
	require.Equal(t, want, visited)

	visits := 0
	c.For(layouts.ScalarLayout, func(coords []backends.Op) {
		require.Empty(t, coords)
		visits++
	})
	require.Equal(t, 1, visits)
}

func TestAllocateZeroInitialized(t *testing.T) {
	c := newTestContext()
	op := c.Allocate(dtypes.Float32, layouts.Make(3))
	require.Equal(t, []float32{0, 0, 0}, FlatOf[float32](op))

	// Pooled storage must come back zeroed even after being dirtied.
	flat := FlatOf[float32](op)
	flat[1] = 7
	c.Release(op)
	op = c.Allocate(dtypes.Float32, layouts.Make(3))
	require.Equal(t, []float32{0, 0, 0}, FlatOf[float32](op))
}

func TestImportAliases(t *testing.T) {
	c := newTestContext()
	data := []float64{1, 2, 3, 4}
	op := c.Import(dtypes.Float64, layouts.Make(4), data)

	idx := c.Constant(dtypes.Int32, 2)
	loaded := c.Load(op, layouts.Make(4), []backends.Op{idx})
	require.Equal(t, 3.0, ScalarOf[float64](loaded))

	// Stores through the handle are visible in the caller-owned slice.
	c.Store(op, layouts.Make(4), []backends.Op{idx}, c.Constant(dtypes.Float64, -1))
	require.Equal(t, []float64{1, 2, -1, 4}, data)

	err := exceptions.TryCatch[error](func() {
		c.Import(dtypes.Float64, layouts.Make(5), data)
	})
	require.True(t, errors.Is(err, backends.ErrInvalidArgument))
}

func TestStridedLoad(t *testing.T) {
	c := newTestContext()
	data := []float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	matrix := layouts.Make(3, 4)
	column := matrix.Slice(0) // extent 3, increment 4
	op := c.Import(dtypes.Float32, column, data)
	idx := c.Constant(dtypes.Int32, 2)
	loaded := c.Load(op, column, []backends.Op{idx})
	require.Equal(t, float32(8), ScalarOf[float32](loaded))
}

func TestBinary(t *testing.T) {
	c := newTestContext()
	sum := c.Binary(backends.BinaryOpAdd, c.Constant(dtypes.Int32, 3), c.Constant(dtypes.Int32, 4))
	assert.Equal(t, int32(7), ScalarOf[int32](sum))

	quot := c.Binary(backends.BinaryOpDiv, c.Constant(dtypes.Float64, 1), c.Constant(dtypes.Float64, 4))
	assert.Equal(t, 0.25, ScalarOf[float64](quot))

	// Integer division truncates.
	intQuot := c.Binary(backends.BinaryOpDiv, c.Constant(dtypes.Int64, 7), c.Constant(dtypes.Int64, 2))
	assert.Equal(t, int64(3), ScalarOf[int64](intQuot))

	// Float16 arithmetic widens to float32.
	halfSum := c.Binary(backends.BinaryOpMul,
		c.Constant(dtypes.Float16, 1.5), c.Constant(dtypes.Float16, 2))
	assert.Equal(t, float32(3), ScalarOf[float16.Float16](halfSum).Float32())

	err := exceptions.TryCatch[error](func() {
		c.Binary(backends.BinaryOpAdd, c.Constant(dtypes.Int32, 1), c.Constant(dtypes.Float32, 1))
	})
	require.True(t, errors.Is(err, backends.ErrTypeMismatch))
}

func TestCallNative(t *testing.T) {
	c := newTestContext()
	xLayout := layouts.Make(3)
	x := c.Import(dtypes.Float32, xLayout, []float32{1, 2, 3})
	y := c.Import(dtypes.Float32, xLayout, []float32{4, 5, 6})
	fn := backends.Declare("cblas_sdot").
		Returns(dtypes.Float32, layouts.ScalarLayout).
		Parameter(dtypes.Int32, layouts.ScalarLayout).
		Parameter(dtypes.Float32, xLayout).
		Parameter(dtypes.Int32, layouts.ScalarLayout).
		Parameter(dtypes.Float32, xLayout).
		Parameter(dtypes.Int32, layouts.ScalarLayout)
	one := c.Constant(dtypes.Int32, 1)
	result, ok := c.CallNative(fn, []backends.Op{c.Constant(dtypes.Int32, 3), x, one, y, one})
	require.True(t, ok)
	require.Equal(t, float32(1*4+2*5+3*6), ScalarOf[float32](result))

	// Unknown symbols decline, they don't fail.
	_, ok = c.CallNative(backends.Declare("cblas_zdotu"), nil)
	require.False(t, ok)
}

func TestCallNativeDdotStrided(t *testing.T) {
	c := newTestContext()
	// Dot of the two columns of a 3x2 row-major matrix.
	data := []float64{1, 10, 2, 20, 3, 30}
	column := layouts.Make(3, 2).Slice(0)
	x := c.Import(dtypes.Float64, column, data)
	y := c.Import(dtypes.Float64, column, data[1:])
	fn := backends.Declare("cblas_ddot").
		Returns(dtypes.Float64, layouts.ScalarLayout).
		Parameter(dtypes.Int32, layouts.ScalarLayout).
		Parameter(dtypes.Float64, column).
		Parameter(dtypes.Int32, layouts.ScalarLayout).
		Parameter(dtypes.Float64, column).
		Parameter(dtypes.Int32, layouts.ScalarLayout)
	inc := c.Constant(dtypes.Int32, column.CumulativeIncrement(0))
	result, ok := c.CallNative(fn, []backends.Op{c.Constant(dtypes.Int32, 3), x, inc, y, inc})
	require.True(t, ok)
	require.Equal(t, 1.0*10+2*20+3*30, ScalarOf[float64](result))
}

func TestReleaseInvalidates(t *testing.T) {
	c := newTestContext()
	op := c.Allocate(dtypes.Int32, layouts.Make(2))
	c.Release(op)
	require.Panics(t, func() {
		c.Load(op, layouts.Make(2), []backends.Op{c.Constant(dtypes.Int32, 0)})
	})
}
