// Package value implements the typed numeric value abstraction at the center
// of the lowering core: Value, its rank-specialized wrappers Scalar, Vector
// and Matrix, and the operation library built on them.
//
// Every operation is realized through the ambient execution context (see
// package backends): under an interpreting context (backends/compute) it runs
// immediately, under an emitting context (backends/emitter) the same call
// emits instructions of the generated program. Operation code never names a
// concrete context type; where an accelerated external routine may apply, it
// runs an ordered list of dispatch attempts, each of which a context can
// decline.
//
// Violations (shape, type, rank) panic with errors wrapping the sentinel kinds
// of package backends, before any operand is mutated.
package value

import (
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/emlift/emlift/backends"
	"github.com/emlift/emlift/types/layouts"
)

// Value is a typed handle to memory or to an immediate: an element type tag,
// a Layout, and a context-owned storage reference. A Value owns nothing by
// itself; storage belongs either to the caller (see VectorOf) or to the
// execution context that allocated it (see Allocate), which releases it when
// told to.
//
// A Value is "addressable" when it refers to storage that can be read and
// written elementwise; immediates and deferred operation results are not.
type Value struct {
	dtype  dtypes.DType
	layout layouts.Layout
	op     backends.Op

	// addressable marks storage handles (allocated or imported), as opposed
	// to immediates and operation results.
	addressable bool
}

// Allocate returns a Value backed by fresh zero-initialized storage owned by
// the ambient execution context.
func Allocate(dtype dtypes.DType, layout layouts.Layout) Value {
	return Value{
		dtype:       dtype,
		layout:      layout,
		op:          backends.Current().Allocate(dtype, layout),
		addressable: true,
	}
}

// Constant returns a scalar immediate Value of the given dtype.
func Constant(dtype dtypes.DType, value any) Value {
	return Value{
		dtype:  dtype,
		layout: layouts.ScalarLayout,
		op:     backends.Current().Constant(dtype, value),
	}
}

// Import wraps caller-owned flat storage in a Value without copying; the
// dtype is taken from the slice's element type. Mutations through the Value
// alias the caller's storage. The context never releases it.
func Import[T dtypes.Supported](flat []T, layout layouts.Layout) Value {
	dtype := dtypes.FromGenericsType[T]()
	return Value{
		dtype:       dtype,
		layout:      layout,
		op:          backends.Current().Import(dtype, layout, flat),
		addressable: true,
	}
}

// DType returns the element type tag.
func (v Value) DType() dtypes.DType { return v.dtype }

// Layout describing the value's shape.
func (v Value) Layout() layouts.Layout { return v.layout }

// Op is the context-owned handle backing this value.
func (v Value) Op() backends.Op { return v.op }

// IsValid returns whether the value was properly constructed.
func (v Value) IsValid() bool { return v.op != nil }

// Release returns the value's storage to the ambient execution context. Only
// meaningful for context-allocated values; the value must not be used after.
func (v Value) Release() {
	backends.Current().Release(v.op)
}

// String implements fmt.Stringer.
func (v Value) String() string {
	if !v.IsValid() {
		return "Value(invalid)"
	}
	return v.dtype.String() + v.layout.String()
}
