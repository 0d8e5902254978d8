package value

import (
	"github.com/emlift/emlift/backends"
	"github.com/emlift/emlift/types/layouts"
)

// Internal elementwise machinery. All non-mutating binary operations are
// "copy then compound-assign", so operands are never mutated; binaryAssign is
// the single compound-assignment primitive they funnel through.

// readScalar returns a handle to the current content of a scalar Value:
// addressable scalars are loaded, immediates and operation results are used
// as-is.
func readScalar(v Value) backends.Op {
	if v.addressable {
		return backends.Current().Load(v.op, v.layout, nil)
	}
	return v.op
}

// checkBinaryOperands raises before any mutation if the element types, or
// the layouts of two non-scalar operands, disagree.
func checkBinaryOperands(opName string, dst, src Value) {
	if dst.dtype != src.dtype {
		backends.Raise(backends.ErrTypeMismatch, "%s: operands have element types %s and %s",
			opName, dst.dtype, src.dtype)
	}
	if !src.layout.IsScalar() && !dst.layout.Equal(src.layout) {
		backends.Raise(backends.ErrShapeMismatch, "%s: operands have layouts %s and %s",
			opName, dst.layout, src.layout)
	}
}

// binaryAssign performs dst = dst OP src elementwise, in place. src is
// either a scalar (applied to every element) or has a layout equal to dst's.
func binaryAssign(opType backends.BinaryOpType, opName string, dst, src Value) {
	checkBinaryOperands(opName, dst, src)
	if !dst.addressable {
		backends.Raise(backends.ErrInvalidArgument, "%s: target does not refer to writable storage", opName)
	}
	ctx := backends.Current()
	srcIsScalar := src.layout.IsScalar()
	var srcElem backends.Op
	if srcIsScalar {
		// The source is not mutated by the loop, one read suffices.
		srcElem = readScalar(src)
	}
	ctx.For(dst.layout, func(coords []backends.Op) {
		elem := srcElem
		if !srcIsScalar {
			elem = ctx.Load(src.op, src.layout, coords)
		}
		lhs := ctx.Load(dst.op, dst.layout, coords)
		ctx.Store(dst.op, dst.layout, coords, ctx.Binary(opType, lhs, elem))
	})
}

// binaryAssignReversed performs dst = src OP dst elementwise, in place, with
// a scalar src: the primitive behind scalar-minus-vector and
// scalar-divided-by-vector, which are not the mirror of the vector-left
// forms.
func binaryAssignReversed(opType backends.BinaryOpType, opName string, dst, src Value) {
	checkBinaryOperands(opName, dst, src)
	if !dst.addressable {
		backends.Raise(backends.ErrInvalidArgument, "%s: target does not refer to writable storage", opName)
	}
	ctx := backends.Current()
	srcElem := readScalar(src)
	ctx.For(dst.layout, func(coords []backends.Op) {
		rhs := ctx.Load(dst.op, dst.layout, coords)
		ctx.Store(dst.op, dst.layout, coords, ctx.Binary(opType, srcElem, rhs))
	})
}

// copyValue returns a deep copy of v in fresh dense storage allocated by the
// ambient context.
func copyValue(v Value) Value {
	var dst layouts.Layout
	if !v.layout.IsScalar() {
		dst = layouts.Make(v.layout.Extents()...)
	}
	out := Allocate(v.dtype, dst)
	ctx := backends.Current()
	ctx.For(v.layout, func(coords []backends.Op) {
		ctx.Store(out.op, out.layout, coords, ctx.Load(v.op, v.layout, coords))
	})
	return out
}

// Apply computes a OP b elementwise into a freshly allocated Value, mutating
// neither operand. Operands must have equal element types and either equal
// layouts or a scalar on one side; a scalar left operand applies as
// result[i] = a OP b[i].
func Apply(opType backends.BinaryOpType, a, b Value) Value {
	if a.layout.IsScalar() && !b.layout.IsScalar() {
		out := copyValue(b)
		binaryAssignReversed(opType, "Apply", out, a)
		return out
	}
	out := copyValue(a)
	binaryAssign(opType, "Apply", out, b)
	return out
}
