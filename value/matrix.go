package value

import (
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/emlift/emlift/backends"
	"github.com/emlift/emlift/types/layouts"
)

// Matrix wraps exactly one rank-2 Value with row-major addressing.
type Matrix struct {
	value Value
}

// NewMatrix wraps a rank-2 Value. It panics with an invalid-argument error
// for any other rank.
func NewMatrix(v Value) Matrix {
	if v.layout.Rank() != 2 {
		backends.Raise(backends.ErrInvalidArgument, "NewMatrix: value must be rank-2, got layout %s", v.layout)
	}
	return Matrix{value: v}
}

// MatrixOf wraps the given caller-owned row-major slice as a rows x columns
// Matrix, without copying.
func MatrixOf[T dtypes.Supported](rows, columns int, values []T) Matrix {
	return Matrix{value: Import(values, layouts.Make(rows, columns))}
}

// Value returns the wrapped Value.
func (m Matrix) Value() Value { return m.value }

// DType returns the element type tag.
func (m Matrix) DType() dtypes.DType { return m.value.dtype }

// Rows returns the number of rows.
func (m Matrix) Rows() int { return m.value.layout.Extent(0) }

// Columns returns the number of columns.
func (m Matrix) Columns() int { return m.value.layout.Extent(1) }

// Get returns the element at (row, column).
func (m Matrix) Get(row, column Scalar) Scalar {
	op := backends.Current().Load(m.value.op, m.value.layout,
		[]backends.Op{readScalar(row.value), readScalar(column.value)})
	return Scalar{value: Value{dtype: m.value.dtype, layout: layouts.ScalarLayout, op: op}}
}

// Set writes the element at (row, column).
func (m Matrix) Set(row, column Scalar, x Scalar) {
	if m.value.dtype != x.value.dtype {
		backends.Raise(backends.ErrTypeMismatch, "Matrix.Set: storing %s into %s matrix", x.value.dtype, m.value.dtype)
	}
	backends.Current().Store(m.value.op, m.value.layout,
		[]backends.Op{readScalar(row.value), readScalar(column.value)}, readScalar(x.value))
}

// Copy returns a private deep copy in context-allocated storage.
func (m Matrix) Copy() Matrix {
	return Matrix{value: copyValue(m.value)}
}

// AddAssign performs m += o elementwise, in place, and returns m for
// chaining.
func (m Matrix) AddAssign(o Matrix) Matrix {
	binaryAssign(backends.BinaryOpAdd, "Matrix.AddAssign", m.value, o.value)
	return m
}

// SubAssign performs m -= o in place.
func (m Matrix) SubAssign(o Matrix) Matrix {
	binaryAssign(backends.BinaryOpSub, "Matrix.SubAssign", m.value, o.value)
	return m
}

// MulAssign performs m *= o elementwise, in place.
func (m Matrix) MulAssign(o Matrix) Matrix {
	binaryAssign(backends.BinaryOpMul, "Matrix.MulAssign", m.value, o.value)
	return m
}

// DivAssign performs m /= o elementwise, in place.
func (m Matrix) DivAssign(o Matrix) Matrix {
	binaryAssign(backends.BinaryOpDiv, "Matrix.DivAssign", m.value, o.value)
	return m
}

// AddAssignScalar performs m += s on every element, in place.
func (m Matrix) AddAssignScalar(s Scalar) Matrix {
	binaryAssign(backends.BinaryOpAdd, "Matrix.AddAssignScalar", m.value, s.value)
	return m
}

// SubAssignScalar performs m -= s on every element, in place.
func (m Matrix) SubAssignScalar(s Scalar) Matrix {
	binaryAssign(backends.BinaryOpSub, "Matrix.SubAssignScalar", m.value, s.value)
	return m
}

// MulAssignScalar performs m *= s on every element, in place.
func (m Matrix) MulAssignScalar(s Scalar) Matrix {
	binaryAssign(backends.BinaryOpMul, "Matrix.MulAssignScalar", m.value, s.value)
	return m
}

// DivAssignScalar performs m /= s on every element, in place.
func (m Matrix) DivAssignScalar(s Scalar) Matrix {
	binaryAssign(backends.BinaryOpDiv, "Matrix.DivAssignScalar", m.value, s.value)
	return m
}

// Add returns m + o elementwise.
func (m Matrix) Add(o Matrix) Matrix { return m.Copy().AddAssign(o) }

// Sub returns m - o elementwise.
func (m Matrix) Sub(o Matrix) Matrix { return m.Copy().SubAssign(o) }

// Mul returns m * o elementwise.
func (m Matrix) Mul(o Matrix) Matrix { return m.Copy().MulAssign(o) }

// Div returns m / o elementwise.
func (m Matrix) Div(o Matrix) Matrix { return m.Copy().DivAssign(o) }

// AddScalar returns m + s elementwise.
func (m Matrix) AddScalar(s Scalar) Matrix { return m.Copy().AddAssignScalar(s) }

// SubScalar returns m - s elementwise.
func (m Matrix) SubScalar(s Scalar) Matrix { return m.Copy().SubAssignScalar(s) }

// MulScalar returns m * s elementwise.
func (m Matrix) MulScalar(s Scalar) Matrix { return m.Copy().MulAssignScalar(s) }

// DivScalar returns m / s elementwise.
func (m Matrix) DivScalar(s Scalar) Matrix { return m.Copy().DivAssignScalar(s) }
