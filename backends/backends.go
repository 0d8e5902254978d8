// Package backends defines the Execution Context capability interface that a
// realization backend needs to implement to run or lower the operations of the
// value package.
//
// Two kinds of contexts exist: interpreting ones perform every operation
// immediately in-process (see backends/compute), emitting ones translate every
// operation into instructions of a program to be executed later (see
// backends/emitter). The operation library in package value is written against
// this interface only and works unchanged on either kind.
//
// To simplify error handling, all functions are expected to panic with an
// error on failure; the error wraps one of the Err* sentinels of this package
// so the condition stays identifiable. See package github.com/gomlx/exceptions
// for recovering them as errors.
package backends

import (
	"os"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"k8s.io/klog/v2"

	"github.com/emlift/emlift/types/layouts"
)

// Op is an opaque handle to a context-owned value: storage, an immediate, or
// the deferred result of an emitted instruction. It is only meaningful to the
// Context that produced it.
type Op any

// Context is the single abstraction through which all operations are
// realized. Exactly one Context is ambient at a time for a compilation unit;
// see Use and Current.
type Context interface {
	// Name is the short registered name of the context kind, e.g. "compute".
	Name() string

	// For enumerates every coordinate tuple of layout in row-major order
	// exactly once, invoking visitor with one index handle per dimension.
	// Interpreting contexts run the visitor once per element with concrete
	// indices; emitting contexts emit a loop nest and run the visitor a
	// single time with the loop induction variables as index handles.
	//
	// The deterministic visit order is load-bearing: accumulating operations
	// rely on it for reproducible floating-point results.
	For(layout layouts.Layout, visitor func(coords []Op))

	// Allocate returns a handle to new zero-initialized storage for
	// layout.Size() elements of dtype, owned by the context until Release.
	Allocate(dtype dtypes.DType, layout layouts.Layout) Op

	// Release returns previously allocated storage to the context. The
	// handle must not be used afterwards.
	Release(op Op)

	// Constant returns a handle to an immediate scalar of the given dtype.
	// The value is converted from any compatible Go number.
	Constant(dtype dtypes.DType, value any) Op

	// Import wraps caller-owned flat storage (a slice of dtype's Go type)
	// without copying. The context never releases imported storage.
	Import(dtype dtypes.DType, layout layouts.Layout, flat any) Op

	// Load reads one element of src, addressed by one index handle per
	// dimension of layout (none for a scalar), and returns its handle.
	Load(src Op, layout layouts.Layout, coords []Op) Op

	// Store writes the element of dst addressed by coords.
	Store(dst Op, layout layouts.Layout, coords []Op, value Op)

	// Binary applies an arithmetic operation to two scalar handles of the
	// same dtype and returns the result handle.
	Binary(opType BinaryOpType, lhs, rhs Op) Op
}

// NativeCaller is the capability of contexts that can resolve a declared
// external routine and execute it immediately, in-process. CallNative returns
// ok=false to decline: the routine is not registered for this configuration.
// Declining is a normal, non-fatal outcome that triggers the caller's next
// dispatch attempt.
type NativeCaller interface {
	CallNative(fn FuncDecl, args []Op) (result Op, ok bool)
}

// CallEmitter is the capability of contexts that emit a call instruction to a
// named symbol into the generated program, returning a deferred-result
// handle. EmitCall must succeed for any well-formed declaration; it returns
// ok=false only to decline calls it cannot express at all.
type CallEmitter interface {
	EmitCall(fn FuncDecl, args []Op) (result Op, ok bool)
}

// Constructor takes a config string (possibly empty) and returns a Context.
type Constructor func(config string) Context

var (
	registeredConstructors = make(map[string]Constructor)
	firstRegistered        string
)

// Register a context kind under the given name with a constructor taking a
// kind-specific configuration string.
//
// To be safe, call Register during initialization of a package.
func Register(name string, constructor Constructor) {
	if len(registeredConstructors) == 0 {
		firstRegistered = name
	}
	registeredConstructors[name] = constructor
	klog.V(1).Infof("backends: registered execution context %q", name)
}

// DefaultConfig is the context configuration to use if not overridden by the
// EMLIFT_CONTEXT environment variable.
var DefaultConfig string

// EMLIFT_CONTEXT is the environment variable with the default execution
// context configuration, formatted as "<context_name>:<context_config>".
const EMLIFT_CONTEXT = "EMLIFT_CONTEXT"

// New returns a new Context built from the default configuration:
//
//  1. The environment variable EMLIFT_CONTEXT, if defined.
//  2. The DefaultConfig variable, if set.
//  3. The first registered context kind, with an empty configuration.
//
// It panics if no context kind was registered.
func New() Context {
	if config, found := os.LookupEnv(EMLIFT_CONTEXT); found {
		return NewWithConfig(config)
	}
	if DefaultConfig != "" {
		return NewWithConfig(DefaultConfig)
	}
	return NewWithConfig("")
}

// NewWithConfig builds a Context from a "<context_name>:<context_config>"
// string. An empty name selects the first registered kind.
func NewWithConfig(config string) Context {
	if len(registeredConstructors) == 0 {
		exceptions.Panicf(`no registered execution contexts -- import one, e.g. _ "github.com/emlift/emlift/backends/compute"`)
	}
	name := firstRegistered
	contextConfig := config
	if idx := strings.Index(config, ":"); idx != -1 {
		name = config[:idx]
		contextConfig = config[idx+1:]
	} else if config != "" {
		name = config
		contextConfig = ""
	}
	constructor, found := registeredConstructors[name]
	if !found {
		exceptions.Panicf("can't find execution context %q for configuration %q", name, config)
	}
	return constructor(contextConfig)
}
