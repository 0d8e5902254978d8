package backends

import (
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emlift/emlift/types/layouts"
)

// testContext is a do-nothing Context used to exercise the registry and the
// ambient scope stack.
type testContext struct{ name string }

func (c *testContext) Name() string { return c.name }

func (c *testContext) For(_ layouts.Layout, _ func([]Op)) {}

func (c *testContext) Allocate(_ dtypes.DType, _ layouts.Layout) Op { return nil }

func (c *testContext) Release(_ Op) {}

func (c *testContext) Constant(_ dtypes.DType, _ any) Op { return nil }

func (c *testContext) Import(_ dtypes.DType, _ layouts.Layout, _ any) Op { return nil }

func (c *testContext) Load(_ Op, _ layouts.Layout, _ []Op) Op { return nil }

func (c *testContext) Store(_ Op, _ layouts.Layout, _ []Op, _ Op) {}

func (c *testContext) Binary(_ BinaryOpType, _, _ Op) Op { return nil }

func TestScope(t *testing.T) {
	require.False(t, HasCurrent())
	err := exceptions.TryCatch[error](func() { _ = Current() })
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrNoContext))

	outer := &testContext{name: "outer"}
	inner := &testContext{name: "inner"}

	doneOuter := Use(outer)
	require.True(t, HasCurrent())
	require.Equal(t, outer, Current())

	doneInner := Use(inner)
	require.Equal(t, inner, Current())
	doneInner()
	require.Equal(t, outer, Current())

	doneOuter()
	require.False(t, HasCurrent())
}

func TestRegistry(t *testing.T) {
	Register("test", func(config string) Context { return &testContext{name: "test:" + config} })
	ctx := NewWithConfig("test:abc")
	require.Equal(t, "test:abc", ctx.Name())

	ctx = NewWithConfig("test")
	require.Equal(t, "test:", ctx.Name())

	require.Panics(t, func() { NewWithConfig("no-such-context") })
}

func TestFuncDecl(t *testing.T) {
	fn := Declare("cblas_sdot").
		Returns(dtypes.Float32, layouts.ScalarLayout).
		Parameter(dtypes.Int32, layouts.ScalarLayout).
		Parameter(dtypes.Float32, layouts.Make(8)).
		Parameter(dtypes.Int32, layouts.ScalarLayout).
		Parameter(dtypes.Float32, layouts.Make(8)).
		Parameter(dtypes.Int32, layouts.ScalarLayout)
	require.Equal(t, "cblas_sdot", fn.Name())
	require.Equal(t, 5, fn.NumParameters())
	require.Equal(t, dtypes.Float32, fn.Return().DType)
	require.False(t, fn.IsUndecorated())
	require.True(t, fn.Undecorated().IsUndecorated())

	// The builder copies on each step: deriving a variant must not change
	// the original declaration.
	variant := fn.Parameter(dtypes.Int32, layouts.ScalarLayout)
	assert.Equal(t, 5, fn.NumParameters())
	assert.Equal(t, 6, variant.NumParameters())
}

func TestBinaryOpTypeString(t *testing.T) {
	assert.Equal(t, "Add", BinaryOpAdd.String())
	assert.Equal(t, "Div", BinaryOpDiv.String())
	op, err := BinaryOpTypeString("Mul")
	require.NoError(t, err)
	assert.Equal(t, BinaryOpMul, op)
}
