package value

import (
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/emlift/emlift/backends"
	"github.com/emlift/emlift/types/layouts"
)

// Scalar wraps exactly one rank-0 Value and adds type-checked arithmetic. It
// carries no state beyond the Value.
type Scalar struct {
	value Value
}

// NewScalar wraps a rank-0 Value. It panics with an invalid-argument error
// for any other rank.
func NewScalar(v Value) Scalar {
	if v.layout.Rank() != 0 {
		backends.Raise(backends.ErrInvalidArgument, "NewScalar: value must be rank-0, got layout %s", v.layout)
	}
	return Scalar{value: v}
}

// Const returns a Scalar immediate; the dtype is inferred from the Go type.
func Const[T dtypes.Supported](value T) Scalar {
	return Scalar{value: Constant(dtypes.FromGenericsType[T](), value)}
}

// Value returns the wrapped Value.
func (s Scalar) Value() Value { return s.value }

// DType returns the element type tag.
func (s Scalar) DType() dtypes.DType { return s.value.dtype }

// Copy returns a private, writable copy of the scalar in context-allocated
// storage.
func (s Scalar) Copy() Scalar {
	return Scalar{value: copyValue(s.value)}
}

// Add returns s + o without mutating either operand.
func (s Scalar) Add(o Scalar) Scalar { return s.binary(backends.BinaryOpAdd, "Scalar.Add", o) }

// Sub returns s - o.
func (s Scalar) Sub(o Scalar) Scalar { return s.binary(backends.BinaryOpSub, "Scalar.Sub", o) }

// Mul returns s * o.
func (s Scalar) Mul(o Scalar) Scalar { return s.binary(backends.BinaryOpMul, "Scalar.Mul", o) }

// Div returns s / o.
func (s Scalar) Div(o Scalar) Scalar { return s.binary(backends.BinaryOpDiv, "Scalar.Div", o) }

func (s Scalar) binary(opType backends.BinaryOpType, opName string, o Scalar) Scalar {
	checkBinaryOperands(opName, s.value, o.value)
	op := backends.Current().Binary(opType, readScalar(s.value), readScalar(o.value))
	return Scalar{value: Value{dtype: s.value.dtype, layout: layouts.ScalarLayout, op: op}}
}

// AddAssign performs s += o in place; s must refer to writable storage.
func (s Scalar) AddAssign(o Scalar) { binaryAssign(backends.BinaryOpAdd, "Scalar.AddAssign", s.value, o.value) }

// SubAssign performs s -= o in place.
func (s Scalar) SubAssign(o Scalar) { binaryAssign(backends.BinaryOpSub, "Scalar.SubAssign", s.value, o.value) }

// MulAssign performs s *= o in place.
func (s Scalar) MulAssign(o Scalar) { binaryAssign(backends.BinaryOpMul, "Scalar.MulAssign", s.value, o.value) }

// DivAssign performs s /= o in place.
func (s Scalar) DivAssign(o Scalar) { binaryAssign(backends.BinaryOpDiv, "Scalar.DivAssign", s.value, o.value) }

// AddVector returns s + v, elementwise. Addition commutes: it is v + s.
func (s Scalar) AddVector(v Vector) Vector { return v.AddScalar(s) }

// MulVector returns s * v, elementwise.
func (s Scalar) MulVector(v Vector) Vector { return v.MulScalar(s) }

// SubVector returns the elementwise s - v[i]. This is deliberately not the
// mirror of Vector.SubScalar: the scalar stays on the left of every element.
func (s Scalar) SubVector(v Vector) Vector {
	copy := v.Copy()
	binaryAssignReversed(backends.BinaryOpSub, "Scalar.SubVector", copy.value, s.value)
	return copy
}

// DivVector returns the elementwise s / v[i], the scalar staying on the left
// of every element.
func (s Scalar) DivVector(v Vector) Vector {
	copy := v.Copy()
	binaryAssignReversed(backends.BinaryOpDiv, "Scalar.DivVector", copy.value, s.value)
	return copy
}
