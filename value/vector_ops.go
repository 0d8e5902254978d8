package value

import (
	"github.com/gomlx/gopjrt/dtypes"

	"github.com/emlift/emlift/backends"
	"github.com/emlift/emlift/types/layouts"
)

// ForVector enumerates the indices of v in order, invoking fn once per
// element with the index as a non-addressable Int32 Scalar, usable directly
// with Vector.Get and Vector.Set.
func ForVector(v Vector, fn func(index Scalar)) {
	if v.value.layout.Rank() != 1 {
		backends.Raise(backends.ErrInvalidArgument, "ForVector: value must be rank-1, got layout %s", v.value.layout)
	}
	backends.Current().For(v.value.layout, func(coords []backends.Op) {
		fn(Scalar{value: Value{dtype: dtypes.Int32, layout: layouts.ScalarLayout, op: coords[0]}})
	})
}

// Accumulate returns initial plus the sum of all elements of input,
// accumulated in index order. Neither argument is mutated.
func Accumulate(input Vector, initial Scalar) Scalar {
	if input.value.dtype != initial.value.dtype {
		backends.Raise(backends.ErrTypeMismatch, "Accumulate: summing %s vector into %s accumulator",
			input.value.dtype, initial.value.dtype)
	}
	result := initial.Copy()
	ForVector(input, func(index Scalar) {
		result.AddAssign(input.Get(index))
	})
	return result
}

// BLAS dot-product entry points, by element type. Other element types use the
// generic multiply-accumulate loop.
var dotRoutines = map[dtypes.DType]string{
	dtypes.Float32: "cblas_sdot",
	dtypes.Float64: "cblas_ddot",
}

// dotDecl declares the BLAS dot-product routine for the two operand vectors:
// an element count, then each vector with its stride.
func dotDecl(symbol string, v1, v2 Vector) backends.FuncDecl {
	dtype := v1.value.dtype
	return backends.Declare(symbol).
		Returns(dtype, layouts.ScalarLayout).
		Parameter(dtypes.Int32, layouts.ScalarLayout).
		Parameter(dtype, v1.value.layout).
		Parameter(dtypes.Int32, layouts.ScalarLayout).
		Parameter(dtype, v2.value.layout).
		Parameter(dtypes.Int32, layouts.ScalarLayout)
}

// Dot returns the inner product of v1 and v2 as a Scalar. The vectors must
// agree in size and element type; neither is mutated.
//
// Float32 and Float64 operands dispatch to the BLAS routines cblas_sdot and
// cblas_ddot: an interpreting context resolves them against its native
// routine table, an emitting context emits an undecorated call for the linker
// to satisfy. Every other element type accumulates with the generic
// elementwise loop.
func Dot(v1, v2 Vector) Scalar {
	if v1.Size() != v2.Size() {
		backends.Raise(backends.ErrShapeMismatch, "Dot: vector sizes %d and %d differ", v1.Size(), v2.Size())
	}
	dtype := v1.value.dtype
	if dtype != v2.value.dtype {
		backends.Raise(backends.ErrTypeMismatch, "Dot: element types %s and %s differ", dtype, v2.value.dtype)
	}

	symbol, accelerated := dotRoutines[dtype]
	if !accelerated {
		return dotGeneric(v1, v2)
	}

	ctx := backends.Current()
	fn := dotDecl(symbol, v1, v2)
	args := []backends.Op{
		ctx.Constant(dtypes.Int32, int32(v1.Size())),
		v1.value.op,
		ctx.Constant(dtypes.Int32, int32(v1.value.layout.CumulativeIncrement(0))),
		v2.value.op,
		ctx.Constant(dtypes.Int32, int32(v2.value.layout.CumulativeIncrement(0))),
	}

	// Dispatch in order of preference; each capability may decline.
	if caller, ok := ctx.(backends.NativeCaller); ok {
		if op, ok := caller.CallNative(fn, args); ok {
			return Scalar{value: Value{dtype: dtype, layout: layouts.ScalarLayout, op: op}}
		}
	}
	if em, ok := ctx.(backends.CallEmitter); ok {
		if op, ok := em.EmitCall(fn.Undecorated(), args); ok {
			return Scalar{value: Value{dtype: dtype, layout: layouts.ScalarLayout, op: op}}
		}
	}
	backends.Raise(backends.ErrNoContext, "Dot: context %q can neither execute nor emit a call to %s",
		ctx.Name(), symbol)
	return Scalar{}
}

func dotGeneric(v1, v2 Vector) Scalar {
	result := NewScalar(Allocate(v1.value.dtype, layouts.ScalarLayout))
	ForVector(v1, func(index Scalar) {
		result.AddAssign(v1.Get(index).Mul(v2.Get(index)))
	})
	return result
}
