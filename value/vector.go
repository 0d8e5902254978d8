package value

import (
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/emlift/emlift/backends"
	"github.com/emlift/emlift/types/layouts"
)

// Vector wraps exactly one rank-1 Value, adding shape-checked elementwise
// arithmetic. It either aliases caller-owned storage (see VectorOf) or owns a
// private copy produced by Copy.
type Vector struct {
	value Value
}

// NewVector wraps a rank-1 Value. It panics with an invalid-argument error
// for any other rank.
func NewVector(v Value) Vector {
	if v.layout.Rank() != 1 {
		backends.Raise(backends.ErrInvalidArgument, "NewVector: value must be rank-1, got layout %s", v.layout)
	}
	return Vector{value: v}
}

// VectorOf wraps the given caller-owned slice as a dense Vector, without
// copying: mutations through the Vector are visible in values.
func VectorOf[T dtypes.Supported](values ...T) Vector {
	return Vector{value: Import(values, layouts.Make(len(values)))}
}

// Value returns the wrapped Value.
func (v Vector) Value() Value { return v.value }

// DType returns the element type tag.
func (v Vector) DType() dtypes.DType { return v.value.dtype }

// Size returns the number of elements.
func (v Vector) Size() int { return v.value.layout.Extent(0) }

// Get returns the element addressed by index, itself a Scalar so the same
// expression works with concrete indices and loop induction variables.
func (v Vector) Get(index Scalar) Scalar {
	op := backends.Current().Load(v.value.op, v.value.layout, []backends.Op{readScalar(index.value)})
	return Scalar{value: Value{dtype: v.value.dtype, layout: layouts.ScalarLayout, op: op}}
}

// Set writes the element addressed by index.
func (v Vector) Set(index Scalar, x Scalar) {
	if v.value.dtype != x.value.dtype {
		backends.Raise(backends.ErrTypeMismatch, "Vector.Set: storing %s into %s vector", x.value.dtype, v.value.dtype)
	}
	backends.Current().Store(v.value.op, v.value.layout, []backends.Op{readScalar(index.value)}, readScalar(x.value))
}

// Copy returns a private deep copy in context-allocated storage.
func (v Vector) Copy() Vector {
	return Vector{value: copyValue(v.value)}
}

// AddAssign performs v += o elementwise, in place, and returns v for
// chaining.
func (v Vector) AddAssign(o Vector) Vector {
	binaryAssign(backends.BinaryOpAdd, "Vector.AddAssign", v.value, o.value)
	return v
}

// SubAssign performs v -= o in place.
func (v Vector) SubAssign(o Vector) Vector {
	binaryAssign(backends.BinaryOpSub, "Vector.SubAssign", v.value, o.value)
	return v
}

// MulAssign performs v *= o elementwise, in place.
func (v Vector) MulAssign(o Vector) Vector {
	binaryAssign(backends.BinaryOpMul, "Vector.MulAssign", v.value, o.value)
	return v
}

// DivAssign performs v /= o elementwise, in place.
func (v Vector) DivAssign(o Vector) Vector {
	binaryAssign(backends.BinaryOpDiv, "Vector.DivAssign", v.value, o.value)
	return v
}

// AddAssignScalar performs v += s on every element, in place.
func (v Vector) AddAssignScalar(s Scalar) Vector {
	binaryAssign(backends.BinaryOpAdd, "Vector.AddAssignScalar", v.value, s.value)
	return v
}

// SubAssignScalar performs v -= s on every element, in place.
func (v Vector) SubAssignScalar(s Scalar) Vector {
	binaryAssign(backends.BinaryOpSub, "Vector.SubAssignScalar", v.value, s.value)
	return v
}

// MulAssignScalar performs v *= s on every element, in place.
func (v Vector) MulAssignScalar(s Scalar) Vector {
	binaryAssign(backends.BinaryOpMul, "Vector.MulAssignScalar", v.value, s.value)
	return v
}

// DivAssignScalar performs v /= s on every element, in place.
func (v Vector) DivAssignScalar(s Scalar) Vector {
	binaryAssign(backends.BinaryOpDiv, "Vector.DivAssignScalar", v.value, s.value)
	return v
}

// The non-mutating operators copy the receiver and compound-assign into the
// copy, so inputs are never mutated.

// Add returns v + o elementwise.
func (v Vector) Add(o Vector) Vector { return v.Copy().AddAssign(o) }

// Sub returns v - o elementwise.
func (v Vector) Sub(o Vector) Vector { return v.Copy().SubAssign(o) }

// Mul returns v * o elementwise.
func (v Vector) Mul(o Vector) Vector { return v.Copy().MulAssign(o) }

// Div returns v / o elementwise.
func (v Vector) Div(o Vector) Vector { return v.Copy().DivAssign(o) }

// AddScalar returns v + s elementwise.
func (v Vector) AddScalar(s Scalar) Vector { return v.Copy().AddAssignScalar(s) }

// SubScalar returns v - s elementwise. For the scalar-left form see
// Scalar.SubVector, which is not its mirror.
func (v Vector) SubScalar(s Scalar) Vector { return v.Copy().SubAssignScalar(s) }

// MulScalar returns v * s elementwise.
func (v Vector) MulScalar(s Scalar) Vector { return v.Copy().MulAssignScalar(s) }

// DivScalar returns v / s elementwise. For the scalar-left form see
// Scalar.DivVector.
func (v Vector) DivScalar(s Scalar) Vector { return v.Copy().DivAssignScalar(s) }
