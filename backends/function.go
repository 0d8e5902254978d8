package backends

import (
	"fmt"
	"strings"

	"github.com/gomlx/gopjrt/dtypes"

	"github.com/emlift/emlift/types/layouts"
)

// ValueSpec declares the element type and layout of one function parameter or
// return value.
type ValueSpec struct {
	DType  dtypes.DType
	Layout layouts.Layout
}

// FuncDecl declares an external routine: a name, a return spec and an ordered
// parameter spec list. It is built fluently:
//
//	fn := backends.Declare("cblas_sdot").
//		Returns(dtypes.Float32, layouts.ScalarLayout).
//		Parameter(dtypes.Int32, layouts.ScalarLayout).
//		...
//
// A FuncDecl carries no implementation: an interpreting context resolves the
// name against its table of native routines (see NativeCaller), an emitting
// context emits a call to the symbol (see CallEmitter).
type FuncDecl struct {
	name        string
	returns     ValueSpec
	params      []ValueSpec
	undecorated bool
}

// Declare starts the declaration of an external routine with the given name.
func Declare(name string) FuncDecl {
	return FuncDecl{name: name}
}

// Returns sets the return value spec.
func (f FuncDecl) Returns(dtype dtypes.DType, layout layouts.Layout) FuncDecl {
	f.returns = ValueSpec{DType: dtype, Layout: layout}
	return f
}

// Parameter appends one parameter spec.
func (f FuncDecl) Parameter(dtype dtypes.DType, layout layouts.Layout) FuncDecl {
	f.params = append(append([]ValueSpec(nil), f.params...), ValueSpec{DType: dtype, Layout: layout})
	return f
}

// Undecorated marks the symbol as externally linked: emitting contexts must
// use the name exactly as declared, with no decoration.
func (f FuncDecl) Undecorated() FuncDecl {
	f.undecorated = true
	return f
}

// Name of the declared routine.
func (f FuncDecl) Name() string { return f.name }

// Return spec of the declared routine.
func (f FuncDecl) Return() ValueSpec { return f.returns }

// Parameters returns the ordered parameter specs.
func (f FuncDecl) Parameters() []ValueSpec { return f.params }

// NumParameters returns the number of declared parameters.
func (f FuncDecl) NumParameters() int { return len(f.params) }

// IsUndecorated reports whether the symbol must be emitted undecorated.
func (f FuncDecl) IsUndecorated() bool { return f.undecorated }

// String implements fmt.Stringer, printing a C-like signature.
func (f FuncDecl) String() string {
	parts := make([]string, 0, len(f.params))
	for _, p := range f.params {
		parts = append(parts, fmt.Sprintf("%s%s", p.DType, p.Layout))
	}
	return fmt.Sprintf("%s%s %s(%s)", f.returns.DType, f.returns.Layout, f.name, strings.Join(parts, ", "))
}
