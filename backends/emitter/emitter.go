// Package emitter implements the compiling execution context: instead of
// performing operations, it emits them as instructions of a Program for later
// execution by a native code-generation backend.
//
// The emitted Program is a flat instruction stream (see Instr) that a backend
// translates to its own representation; this package does not run it. Handles
// returned by the context are deferred results: references to the emitting
// instruction.
package emitter

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"k8s.io/klog/v2"

	"github.com/emlift/emlift/backends"
	"github.com/emlift/emlift/types/layouts"
)

// ContextName to be used in EMLIFT_CONTEXT to select this context.
const ContextName = "emitter"

func init() {
	backends.Register(ContextName, New)
}

// New constructs an emitting Context. The configuration string, if not
// empty, names the program being built.
func New(config string) backends.Context {
	name := config
	if name == "" {
		name = "main"
	}
	c := &Context{prog: NewProgram(name)}
	klog.V(1).Infof("emitter: new program %q (%s)", name, c.prog.ID())
	return c
}

// Context is the compiling execution context.
//
// It implements backends.Context and backends.CallEmitter.
type Context struct {
	prog *Program
}

var (
	_ backends.Context     = (*Context)(nil)
	_ backends.CallEmitter = (*Context)(nil)
)

// Name implements backends.Context.
func (c *Context) Name() string { return ContextName }

// Program returns the instruction stream emitted so far.
func (c *Context) Program() *Program { return c.prog }

// For implements backends.Context: it emits one loop instruction per
// dimension of layout, in order, invokes the visitor exactly once with the
// loop induction variables as index handles, and closes the loops innermost
// first. The emitted nest enumerates coordinates in the same row-major order
// the interpreting context uses.
func (c *Context) For(layout layouts.Layout, visitor func(coords []backends.Op)) {
	rank := layout.Rank()
	loops := make([]Ref, rank)
	coords := make([]backends.Op, rank)
	for axis := 0; axis < rank; axis++ {
		loops[axis] = c.prog.add(Instr{Code: OpLoopStart, DType: dtypes.Int32, Imm: layout.Extent(axis)})
		coords[axis] = loops[axis]
	}
	visitor(coords)
	for axis := rank - 1; axis >= 0; axis-- {
		c.prog.add(Instr{Code: OpLoopEnd, Args: []Ref{loops[axis]}})
	}
}

// Allocate implements backends.Context, emitting a zero-initialized storage
// allocation into the generated program.
func (c *Context) Allocate(dtype dtypes.DType, layout layouts.Layout) backends.Op {
	return c.prog.add(Instr{Code: OpAlloc, DType: dtype, Layout: layout})
}

// Release implements backends.Context, emitting the storage release so the
// generated program reclaims it at the same point of the computation.
func (c *Context) Release(op backends.Op) {
	c.prog.add(Instr{Code: OpFree, Args: []Ref{c.ref(op, "Release")}})
}

// Constant implements backends.Context.
func (c *Context) Constant(dtype dtypes.DType, value any) backends.Op {
	return c.prog.add(Instr{Code: OpConst, DType: dtype, Imm: value})
}

// Import implements backends.Context: caller-owned storage becomes constant
// data of the generated program.
func (c *Context) Import(dtype dtypes.DType, layout layouts.Layout, flat any) backends.Op {
	return c.prog.add(Instr{Code: OpConst, DType: dtype, Layout: layout, Imm: flat})
}

// Load implements backends.Context, emitting an element load.
func (c *Context) Load(src backends.Op, layout layouts.Layout, coords []backends.Op) backends.Op {
	if len(coords) != layout.Rank() {
		backends.Raise(backends.ErrInvalidArgument,
			"emitter.Load: %d index handles for layout %s of rank %d", len(coords), layout, layout.Rank())
	}
	srcRef := c.ref(src, "Load")
	return c.prog.add(Instr{
		Code:   OpLoad,
		DType:  c.prog.Instruction(srcRef).DType,
		Layout: layout,
		Args:   append([]Ref{srcRef}, c.refs(coords, "Load")...),
	})
}

// Store implements backends.Context, emitting an element store.
func (c *Context) Store(dst backends.Op, layout layouts.Layout, coords []backends.Op, value backends.Op) {
	if len(coords) != layout.Rank() {
		backends.Raise(backends.ErrInvalidArgument,
			"emitter.Store: %d index handles for layout %s of rank %d", len(coords), layout, layout.Rank())
	}
	args := []Ref{c.ref(dst, "Store"), c.ref(value, "Store")}
	c.prog.add(Instr{Code: OpStore, Layout: layout, Args: append(args, c.refs(coords, "Store")...)})
}

// Binary implements backends.Context, emitting a scalar arithmetic
// instruction.
func (c *Context) Binary(opType backends.BinaryOpType, lhs, rhs backends.Op) backends.Op {
	lhsRef := c.ref(lhs, "Binary")
	rhsRef := c.ref(rhs, "Binary")
	lhsType := c.prog.Instruction(lhsRef).DType
	rhsType := c.prog.Instruction(rhsRef).DType
	if lhsType != rhsType {
		backends.Raise(backends.ErrTypeMismatch, "emitter.Binary(%s): operands are %s and %s", opType, lhsType, rhsType)
	}
	return c.prog.add(Instr{Code: OpBinary, DType: lhsType, BinOp: opType, Args: []Ref{lhsRef, rhsRef}})
}

// EmitCall implements backends.CallEmitter: it emits a call instruction to
// the declared symbol -- exactly as declared when undecorated -- and returns
// the deferred-result handle. It never declines a well-formed declaration.
func (c *Context) EmitCall(fn backends.FuncDecl, args []backends.Op) (backends.Op, bool) {
	if len(args) != fn.NumParameters() {
		backends.Raise(backends.ErrInvalidArgument,
			"emitter.EmitCall(%s): %d arguments for %d parameters", fn.Name(), len(args), fn.NumParameters())
	}
	return c.prog.add(Instr{
		Code:   OpCall,
		DType:  fn.Return().DType,
		Layout: fn.Return().Layout,
		Symbol: fn.Name(),
		Args:   c.refs(args, "EmitCall"),
	}), true
}

func (c *Context) ref(op backends.Op, opName string) Ref {
	ref, ok := op.(Ref)
	if !ok {
		exceptions.Panicf("emitter.%s: op %T does not belong to the emitter context", opName, op)
	}
	if int(ref) < 0 || int(ref) >= c.prog.NumInstructions() {
		exceptions.Panicf("emitter.%s: ref %%%d out of range for program with %d instructions",
			opName, ref, c.prog.NumInstructions())
	}
	return ref
}

func (c *Context) refs(ops []backends.Op, opName string) []Ref {
	out := make([]Ref, len(ops))
	for i, op := range ops {
		out[i] = c.ref(op, opName)
	}
	return out
}
