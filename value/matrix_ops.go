package value

import (
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/emlift/emlift/backends"
	"github.com/emlift/emlift/types/layouts"
)

// ForMatrix enumerates the coordinates of m in row-major order, invoking fn
// once per element with the row and column indices as non-addressable Int32
// Scalars, usable directly with Matrix.Get and Matrix.Set.
func ForMatrix(m Matrix, fn func(row, column Scalar)) {
	if m.value.layout.Rank() != 2 {
		backends.Raise(backends.ErrInvalidArgument, "ForMatrix: value must be rank-2, got layout %s", m.value.layout)
	}
	backends.Current().For(m.value.layout, func(coords []backends.Op) {
		fn(Scalar{value: Value{dtype: dtypes.Int32, layout: layouts.ScalarLayout, op: coords[0]}},
			Scalar{value: Value{dtype: dtypes.Int32, layout: layouts.ScalarLayout, op: coords[1]}})
	})
}

// Sum returns the sum of all elements of m, accumulated in row-major order
// from a zero-initialized accumulator. m is not mutated.
func Sum(m Matrix) Scalar {
	result := NewScalar(Allocate(m.value.dtype, layouts.ScalarLayout))
	ForMatrix(m, func(row, column Scalar) {
		result.AddAssign(m.Get(row, column))
	})
	return result
}

// Gemm computes general matrix-matrix multiplication: c = a*b.
//
// No realization exists yet; it always panics with a not-implemented error.
// TODO: dispatch to cblas_sgemm/cblas_dgemm the way Dot dispatches to
// cblas_sdot/cblas_ddot.
func Gemm(a, b, c Matrix) {
	if a.Columns() != b.Rows() || c.Rows() != a.Rows() || c.Columns() != b.Columns() {
		backends.Raise(backends.ErrShapeMismatch, "Gemm: incompatible shapes %dx%d * %dx%d -> %dx%d",
			a.Rows(), a.Columns(), b.Rows(), b.Columns(), c.Rows(), c.Columns())
	}
	backends.Raise(backends.ErrNotImplemented, "Gemm: matrix-matrix product is not implemented")
}

// Gemv computes general matrix-vector multiplication: y = m*x.
//
// No realization exists yet; it always panics with a not-implemented error.
func Gemv(m Matrix, x, y Vector) {
	if m.Columns() != x.Size() || y.Size() != m.Rows() {
		backends.Raise(backends.ErrShapeMismatch, "Gemv: incompatible shapes %dx%d * %d -> %d",
			m.Rows(), m.Columns(), x.Size(), y.Size())
	}
	backends.Raise(backends.ErrNotImplemented, "Gemv: matrix-vector product is not implemented")
}
