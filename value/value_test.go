package value

import (
	"testing"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emlift/emlift/backends"
	"github.com/emlift/emlift/backends/compute"
	"github.com/emlift/emlift/backends/emitter"
	"github.com/emlift/emlift/types/layouts"
)

func useCompute(t *testing.T) {
	done := backends.Use(compute.New(""))
	t.Cleanup(done)
}

func TestScalarArithmetic(t *testing.T) {
	useCompute(t)
	a, b := Const[float64](3), Const[float64](4)

	require.Equal(t, 7.0, compute.ScalarOf[float64](a.Add(b).Value().Op()))
	require.Equal(t, -1.0, compute.ScalarOf[float64](a.Sub(b).Value().Op()))
	require.Equal(t, 12.0, compute.ScalarOf[float64](a.Mul(b).Value().Op()))
	require.Equal(t, 0.75, compute.ScalarOf[float64](a.Div(b).Value().Op()))

	// Immediates are not writable storage.
	err := exceptions.TryCatch[error](func() { a.AddAssign(b) })
	require.ErrorIs(t, err, backends.ErrInvalidArgument)

	acc := NewScalar(Allocate(dtypes.Float64, layouts.ScalarLayout))
	acc.AddAssign(a)
	acc.MulAssign(b)
	require.Equal(t, 12.0, compute.ScalarOf[float64](acc.Value().Op()))
}

func TestVectorGetSet(t *testing.T) {
	useCompute(t)
	data := []int32{10, 20, 30}
	v := VectorOf(data...)
	require.Equal(t, 3, v.Size())

	require.Equal(t, int32(20), compute.ScalarOf[int32](v.Get(Const[int32](1)).Value().Op()))

	v.Set(Const[int32](2), Const[int32](99))
	assert.Equal(t, []int32{10, 20, 99}, data, "Set must write through to the imported storage")
}

func TestAccumulate(t *testing.T) {
	useCompute(t)
	v := VectorOf[float32](1, 2, 3, 4)
	initial := Const[float32](10)

	sum := Accumulate(v, initial)
	require.Equal(t, float32(20), compute.ScalarOf[float32](sum.Value().Op()))

	// Neither argument is mutated.
	assert.Equal(t, []float32{1, 2, 3, 4}, compute.FlatOf[float32](v.Value().Op()))
}

func TestDot(t *testing.T) {
	useCompute(t)

	t.Run("float32 resolves cblas_sdot", func(t *testing.T) {
		v1 := VectorOf[float32](1, 2, 3)
		v2 := VectorOf[float32](4, 5, 6)
		require.Equal(t, float32(32), compute.ScalarOf[float32](Dot(v1, v2).Value().Op()))
	})

	t.Run("float64 resolves cblas_ddot", func(t *testing.T) {
		v1 := VectorOf[float64](1, 2, 3)
		v2 := VectorOf[float64](4, 5, 6)
		require.Equal(t, 32.0, compute.ScalarOf[float64](Dot(v1, v2).Value().Op()))
	})

	t.Run("accelerated agrees with the generic loop", func(t *testing.T) {
		v1 := VectorOf[float32](0.5, -1.25, 3.75, 2)
		v2 := VectorOf[float32](4, 0.25, -2, 1.5)
		want := compute.ScalarOf[float32](dotGeneric(v1, v2).Value().Op())
		got := compute.ScalarOf[float32](Dot(v1, v2).Value().Op())
		assert.InDelta(t, float64(want), float64(got), 1e-5)
	})

	t.Run("integers use the generic loop", func(t *testing.T) {
		v1 := VectorOf[int32](1, 2, 3)
		v2 := VectorOf[int32](4, 5, 6)
		require.Equal(t, int32(32), compute.ScalarOf[int32](Dot(v1, v2).Value().Op()))
	})

	t.Run("strided operands", func(t *testing.T) {
		// The two columns of a 3x2 row-major matrix.
		flat := []float64{1, 10, 2, 20, 3, 30}
		column := layouts.MakeWithIncrements([]int{3}, []int{2})
		v1 := NewVector(Import(flat, column))
		v2 := NewVector(Import(flat[1:], column))
		require.Equal(t, 1.0*10+2*20+3*30, compute.ScalarOf[float64](Dot(v1, v2).Value().Op()))
	})

	t.Run("size mismatch", func(t *testing.T) {
		err := exceptions.TryCatch[error](func() { Dot(VectorOf[float32](1, 2), VectorOf[float32](1, 2, 3)) })
		require.ErrorIs(t, err, backends.ErrShapeMismatch)
	})

	t.Run("type mismatch", func(t *testing.T) {
		err := exceptions.TryCatch[error](func() { Dot(VectorOf[float32](1, 2), VectorOf[float64](1, 2)) })
		require.ErrorIs(t, err, backends.ErrTypeMismatch)
	})
}

func TestDotEmitsCall(t *testing.T) {
	ctx := emitter.New("dot").(*emitter.Context)
	done := backends.Use(ctx)
	defer done()

	v1 := VectorOf[float32](1, 2, 3)
	v2 := VectorOf[float32](4, 5, 6)
	Dot(v1, v2)

	prog := ctx.Program()
	var calls []emitter.Instr
	for ref := range prog.NumInstructions() {
		if instr := prog.Instruction(emitter.Ref(ref)); instr.Code == emitter.OpCall {
			calls = append(calls, instr)
		}
	}
	require.Len(t, calls, 1)
	assert.Equal(t, "cblas_sdot", calls[0].Symbol)
	assert.Equal(t, dtypes.Float32, calls[0].DType)
	assert.Len(t, calls[0].Args, 5)
}

func TestVectorScalarRoundTrip(t *testing.T) {
	useCompute(t)
	v := VectorOf[float64](1.5, -2, 7, 0)
	s := Const[float64](3.25)

	addSub := v.AddScalar(s).SubScalar(s)
	mulDiv := v.MulScalar(s).DivScalar(s)
	for i, want := range compute.FlatOf[float64](v.Value().Op()) {
		assert.InDelta(t, want, compute.FlatOf[float64](addSub.Value().Op())[i], 1e-12)
		assert.InDelta(t, want, compute.FlatOf[float64](mulDiv.Value().Op())[i], 1e-12)
	}
}

func TestScalarVectorAsymmetry(t *testing.T) {
	useCompute(t)
	v := VectorOf[float64](1, 2, 4)
	s := Const[float64](8)

	// s - v keeps the scalar on the left of every element.
	require.Equal(t, []float64{7, 6, 4}, compute.FlatOf[float64](s.SubVector(v).Value().Op()))
	require.Equal(t, []float64{-7, -6, -4}, compute.FlatOf[float64](v.SubScalar(s).Value().Op()))

	require.Equal(t, []float64{8, 4, 2}, compute.FlatOf[float64](s.DivVector(v).Value().Op()))
	require.Equal(t, []float64{1.0 / 8, 2.0 / 8, 4.0 / 8}, compute.FlatOf[float64](v.DivScalar(s).Value().Op()))

	// Addition and multiplication commute.
	require.Equal(t, []float64{9, 10, 12}, compute.FlatOf[float64](s.AddVector(v).Value().Op()))
	require.Equal(t, []float64{8, 16, 32}, compute.FlatOf[float64](s.MulVector(v).Value().Op()))

	// The operand vector stays untouched throughout.
	assert.Equal(t, []float64{1, 2, 4}, compute.FlatOf[float64](v.Value().Op()))
}

func TestVectorElementwise(t *testing.T) {
	useCompute(t)
	a := VectorOf[float32](1, 2, 3)
	b := VectorOf[float32](4, 5, 6)

	assert.Equal(t, []float32{5, 7, 9}, compute.FlatOf[float32](a.Add(b).Value().Op()))
	assert.Equal(t, []float32{-3, -3, -3}, compute.FlatOf[float32](a.Sub(b).Value().Op()))
	assert.Equal(t, []float32{4, 10, 18}, compute.FlatOf[float32](a.Mul(b).Value().Op()))
	assert.Equal(t, []float32{0.25, 0.4, 0.5}, compute.FlatOf[float32](a.Div(b).Value().Op()))

	// The non-mutating forms leave both operands alone.
	assert.Equal(t, []float32{1, 2, 3}, compute.FlatOf[float32](a.Value().Op()))
	assert.Equal(t, []float32{4, 5, 6}, compute.FlatOf[float32](b.Value().Op()))

	a.AddAssign(b).MulAssign(b)
	assert.Equal(t, []float32{20, 35, 54}, compute.FlatOf[float32](a.Value().Op()))
}

func TestVectorChecks(t *testing.T) {
	useCompute(t)

	err := exceptions.TryCatch[error](func() { NewVector(Import([]float32{1, 2, 3, 4}, layouts.Make(2, 2))) })
	require.ErrorIs(t, err, backends.ErrInvalidArgument)

	err = exceptions.TryCatch[error](func() { VectorOf[float32](1, 2).AddAssign(VectorOf[float32](1, 2, 3)) })
	require.ErrorIs(t, err, backends.ErrShapeMismatch)

	err = exceptions.TryCatch[error](func() { VectorOf[float32](1, 2).AddAssign(VectorOf[float64](1, 2)) })
	require.ErrorIs(t, err, backends.ErrTypeMismatch)

	// A malformed wrapper is caught at iteration time.
	badRank := Vector{value: Import([]float32{1, 2, 3, 4}, layouts.Make(2, 2))}
	err = exceptions.TryCatch[error](func() { ForVector(badRank, func(Scalar) {}) })
	require.ErrorIs(t, err, backends.ErrInvalidArgument)
}

func TestMatrixSum(t *testing.T) {
	useCompute(t)

	zeros := NewMatrix(Allocate(dtypes.Float64, layouts.Make(3, 4)))
	require.Equal(t, 0.0, compute.ScalarOf[float64](Sum(zeros).Value().Op()))

	flat := make([]float64, 12)
	for i := range flat {
		flat[i] = float64(i + 1)
	}
	m := MatrixOf(3, 4, flat)
	require.Equal(t, 78.0, compute.ScalarOf[float64](Sum(m).Value().Op()))
}

func TestMatrixElementwise(t *testing.T) {
	useCompute(t)
	m := MatrixOf(2, 2, []int64{1, 2, 3, 4})
	s := Const[int64](10)

	sum := m.AddScalar(s)
	assert.Equal(t, []int64{11, 12, 13, 14}, compute.FlatOf[int64](sum.Value().Op()))
	assert.Equal(t, []int64{1, 2, 3, 4}, compute.FlatOf[int64](m.Value().Op()))

	m.MulAssign(m)
	assert.Equal(t, []int64{1, 4, 9, 16}, compute.FlatOf[int64](m.Value().Op()))

	require.Equal(t, int64(16), compute.ScalarOf[int64](m.Get(Const[int32](1), Const[int32](1)).Value().Op()))
	m.Set(Const[int32](0), Const[int32](1), Const[int64](-4))
	require.Equal(t, int64(-4), compute.ScalarOf[int64](m.Get(Const[int32](0), Const[int32](1)).Value().Op()))
}

func TestMatrixChecks(t *testing.T) {
	useCompute(t)

	err := exceptions.TryCatch[error](func() { NewMatrix(Import([]float32{1, 2, 3}, layouts.Make(3))) })
	require.ErrorIs(t, err, backends.ErrInvalidArgument)

	badRank := Matrix{value: Import([]float32{1, 2, 3}, layouts.Make(3))}
	err = exceptions.TryCatch[error](func() { ForMatrix(badRank, func(Scalar, Scalar) {}) })
	require.ErrorIs(t, err, backends.ErrInvalidArgument)

	a := MatrixOf(2, 3, make([]float32, 6))
	b := MatrixOf(3, 2, make([]float32, 6))
	err = exceptions.TryCatch[error](func() { a.AddAssign(b) })
	require.ErrorIs(t, err, backends.ErrShapeMismatch)
}

func TestGemmGemvNotImplemented(t *testing.T) {
	useCompute(t)

	a := MatrixOf(2, 3, make([]float32, 6))
	b := MatrixOf(3, 2, make([]float32, 6))
	c := MatrixOf(2, 2, make([]float32, 4))
	err := exceptions.TryCatch[error](func() { Gemm(a, b, c) })
	require.ErrorIs(t, err, backends.ErrNotImplemented)

	x := VectorOf(make([]float32, 3)...)
	y := VectorOf(make([]float32, 2)...)
	err = exceptions.TryCatch[error](func() { Gemv(a, x, y) })
	require.ErrorIs(t, err, backends.ErrNotImplemented)

	// Shape validation still runs first.
	err = exceptions.TryCatch[error](func() { Gemm(a, a, c) })
	require.ErrorIs(t, err, backends.ErrShapeMismatch)
	require.False(t, errors.Is(err, backends.ErrNotImplemented))
}

func TestApplyScalarLeft(t *testing.T) {
	useCompute(t)
	s := Constant(dtypes.Float64, 100.0)
	v := Import([]float64{1, 2, 3}, layouts.Make(3))

	out := Apply(backends.BinaryOpSub, s, v)
	assert.Equal(t, []float64{99, 98, 97}, compute.FlatOf[float64](out.Op()))

	out = Apply(backends.BinaryOpSub, v, s)
	assert.Equal(t, []float64{-99, -98, -97}, compute.FlatOf[float64](out.Op()))
}
