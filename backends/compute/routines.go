package compute

import (
	"github.com/gomlx/gopjrt/dtypes"
	"gonum.org/v1/gonum/blas/blas32"
	"gonum.org/v1/gonum/blas/blas64"

	"github.com/emlift/emlift/backends"
)

// The optimized linear-algebra collaborator. The routine names and the
// (count, pointer, stride, pointer, stride) parameter order follow the CBLAS
// ABI and must not be altered: the emitting context links the same symbols
// externally.
//
// The registered implementation is whatever gonum's blas32/blas64 packages
// currently use; swap in an accelerated one with blas64.Use (see
// gonum.org/v1/netlib).
func registerBlasRoutines(c *Context) {
	c.RegisterRoutine("cblas_sdot", sdot)
	c.RegisterRoutine("cblas_ddot", ddot)
}

func sdot(c *Context, args []backends.Op) backends.Op {
	n := indexOf(c.buffer(args[0], "cblas_sdot"))
	x := FlatOf[float32](args[1])
	incX := indexOf(c.buffer(args[2], "cblas_sdot"))
	y := FlatOf[float32](args[3])
	incY := indexOf(c.buffer(args[4], "cblas_sdot"))
	return c.Constant(dtypes.Float32, blas32.Implementation().Sdot(n, x, incX, y, incY))
}

func ddot(c *Context, args []backends.Op) backends.Op {
	n := indexOf(c.buffer(args[0], "cblas_ddot"))
	x := FlatOf[float64](args[1])
	incX := indexOf(c.buffer(args[2], "cblas_ddot"))
	y := FlatOf[float64](args[3])
	incY := indexOf(c.buffer(args[4], "cblas_ddot"))
	return c.Constant(dtypes.Float64, blas64.Implementation().Ddot(n, x, incX, y, incY))
}
