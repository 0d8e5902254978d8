// Package compute implements the interpreting execution context: every
// operation is performed immediately, in-process, on host memory.
//
// It is not fast -- element access goes through boxed scalar buffers -- but it
// is portable and deterministic, and it doubles as the reference semantics the
// emitting context is measured against.
//
// Supported element types: Int32, Int64, Float32, Float64 and Float16
// (computed by widening to float32, using github.com/x448/float16).
package compute

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"k8s.io/klog/v2"

	"github.com/emlift/emlift/backends"
	"github.com/emlift/emlift/types/layouts"
)

// ContextName to be used in EMLIFT_CONTEXT to select this context.
const ContextName = "compute"

func init() {
	backends.Register(ContextName, New)
}

// New constructs an interpreting Context with the default native routine
// table (the BLAS dot products). There are no configurations, the string is
// ignored.
func New(_ string) backends.Context {
	c := &Context{routines: make(map[string]Routine)}
	registerBlasRoutines(c)
	return c
}

// Context is the interpreting execution context.
//
// It implements backends.Context and backends.NativeCaller. The zero value is
// not usable, construct it with New.
type Context struct {
	buffers  bufferPools
	routines map[string]Routine
}

// Compile-time check that the capability interfaces are satisfied.
var (
	_ backends.Context      = (*Context)(nil)
	_ backends.NativeCaller = (*Context)(nil)
)

// Name implements backends.Context.
func (c *Context) Name() string { return ContextName }

// For implements backends.Context: it drives an in-process loop over every
// coordinate tuple of layout in row-major order, passing the concrete indices
// as Int32 scalar handles.
func (c *Context) For(layout layouts.Layout, visitor func(coords []backends.Op)) {
	rank := layout.Rank()
	ops := make([]backends.Op, rank)
	for coords := range layout.Iter() {
		for axis, coord := range coords {
			ops[axis] = c.Constant(dtypes.Int32, coord)
		}
		visitor(ops)
	}
}

// Allocate implements backends.Context, returning a zero-initialized Buffer
// owned by this context.
func (c *Context) Allocate(dtype dtypes.DType, layout layouts.Layout) backends.Op {
	buf := c.buffers.get(dtype, storageLen(layout))
	buf.layout = layout
	zeroFlat(buf.flat)
	return buf
}

// Release implements backends.Context, returning the buffer's storage to the
// context. Imported (caller-owned) storage is only marked invalid.
func (c *Context) Release(op backends.Op) {
	c.buffers.put(c.buffer(op, "Release"))
}

// Constant implements backends.Context, returning an immediate scalar.
func (c *Context) Constant(dtype dtypes.DType, value any) backends.Op {
	buf := c.buffers.get(dtype, 1)
	buf.layout = layouts.ScalarLayout
	writeElement(buf, 0, convertTo(dtype, value))
	return buf
}

// Import implements backends.Context, wrapping caller-owned flat storage
// without copying. Mutations through the returned handle are visible in flat.
func (c *Context) Import(dtype dtypes.DType, layout layouts.Layout, flat any) backends.Op {
	if got, want := flatLen(dtype, flat), storageLen(layout); got < want {
		backends.Raise(backends.ErrInvalidArgument,
			"compute.Import: flat storage has %d elements, layout %s needs %d", got, layout, want)
	}
	return &Buffer{dtype: dtype, layout: layout, flat: flat, valid: true}
}

// Load implements backends.Context, reading one element.
func (c *Context) Load(src backends.Op, layout layouts.Layout, coords []backends.Op) backends.Op {
	buf := c.buffer(src, "Load")
	out := c.buffers.get(buf.dtype, 1)
	out.layout = layouts.ScalarLayout
	writeElement(out, 0, readElement(buf, c.offsetOf(layout, coords)))
	return out
}

// Store implements backends.Context, writing one element.
func (c *Context) Store(dst backends.Op, layout layouts.Layout, coords []backends.Op, value backends.Op) {
	buf := c.buffer(dst, "Store")
	v := c.buffer(value, "Store")
	if buf.dtype != v.dtype {
		backends.Raise(backends.ErrTypeMismatch, "compute.Store: storing %s into %s storage", v.dtype, buf.dtype)
	}
	writeElement(buf, c.offsetOf(layout, coords), readElement(v, 0))
}

// Binary implements backends.Context on two scalar handles of the same dtype.
func (c *Context) Binary(opType backends.BinaryOpType, lhs, rhs backends.Op) backends.Op {
	a := c.buffer(lhs, "Binary")
	b := c.buffer(rhs, "Binary")
	if a.dtype != b.dtype {
		backends.Raise(backends.ErrTypeMismatch, "compute.Binary(%s): operands are %s and %s", opType, a.dtype, b.dtype)
	}
	out := c.buffers.get(a.dtype, 1)
	out.layout = layouts.ScalarLayout
	writeElement(out, 0, binaryElement(opType, a.dtype, readElement(a, 0), readElement(b, 0)))
	return out
}

// CallNative implements backends.NativeCaller: it resolves the declared name
// in the context's routine table and executes it immediately. An unknown name
// is a decline (the accelerated routine is unavailable for this
// configuration), never an error.
func (c *Context) CallNative(fn backends.FuncDecl, args []backends.Op) (backends.Op, bool) {
	routine, found := c.routines[fn.Name()]
	if !found {
		klog.V(2).Infof("compute: no native routine %q, declining", fn.Name())
		return nil, false
	}
	if len(args) != fn.NumParameters() {
		backends.Raise(backends.ErrInvalidArgument,
			"compute.CallNative(%s): %d arguments for %d parameters", fn.Name(), len(args), fn.NumParameters())
	}
	klog.V(2).Infof("compute: invoking native routine %q", fn.Name())
	return routine(c, args), true
}

// Routine is the native implementation of a declared external function.
type Routine func(c *Context, args []backends.Op) backends.Op

// RegisterRoutine adds (or replaces) a native routine resolvable by
// CallNative under the given name.
func (c *Context) RegisterRoutine(name string, routine Routine) {
	c.routines[name] = routine
}

// buffer asserts an Op into this context's live Buffer.
func (c *Context) buffer(op backends.Op, opName string) *Buffer {
	buf, ok := op.(*Buffer)
	if !ok {
		exceptions.Panicf("compute.%s: op %T does not belong to the compute context", opName, op)
	}
	if !buf.valid {
		exceptions.Panicf("compute.%s: buffer used after release", opName)
	}
	return buf
}

// offsetOf resolves index handles against a layout's cumulative increments.
func (c *Context) offsetOf(layout layouts.Layout, coords []backends.Op) int {
	if len(coords) != layout.Rank() {
		backends.Raise(backends.ErrInvalidArgument,
			"compute: %d index handles for layout %s of rank %d", len(coords), layout, layout.Rank())
	}
	offset := 0
	for axis, coord := range coords {
		offset += indexOf(c.buffer(coord, "index")) * layout.CumulativeIncrement(axis)
	}
	return offset
}
