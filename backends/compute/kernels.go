package compute

import (
	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/x448/float16"
	"golang.org/x/exp/constraints"

	"github.com/emlift/emlift/backends"
)

// The scalar kernels below are the whole arithmetic surface of the
// interpreter. Float16 has no native Go arithmetic: it is widened to float32,
// computed, and narrowed back.

func binaryScalar[T constraints.Integer | constraints.Float](opType backends.BinaryOpType, lhs, rhs T) T {
	switch opType {
	case backends.BinaryOpAdd:
		return lhs + rhs
	case backends.BinaryOpSub:
		return lhs - rhs
	case backends.BinaryOpMul:
		return lhs * rhs
	case backends.BinaryOpDiv:
		return lhs / rhs
	}
	exceptions.Panicf("compute: unsupported binary operation %s", opType)
	return lhs
}

// binaryElement applies opType to two elements of the given dtype, boxed as
// produced by readElement.
func binaryElement(opType backends.BinaryOpType, dtype dtypes.DType, lhs, rhs any) any {
	switch dtype {
	case dtypes.Int32:
		return binaryScalar(opType, lhs.(int32), rhs.(int32))
	case dtypes.Int64:
		return binaryScalar(opType, lhs.(int64), rhs.(int64))
	case dtypes.Float32:
		return binaryScalar(opType, lhs.(float32), rhs.(float32))
	case dtypes.Float64:
		return binaryScalar(opType, lhs.(float64), rhs.(float64))
	case dtypes.Float16:
		wide := binaryScalar(opType, lhs.(float16.Float16).Float32(), rhs.(float16.Float16).Float32())
		return float16.Fromfloat32(wide)
	}
	exceptions.Panicf("compute: unsupported dtype %s", dtype)
	return nil
}

func readElement(buf *Buffer, offset int) any {
	switch flat := buf.flat.(type) {
	case []int32:
		return flat[offset]
	case []int64:
		return flat[offset]
	case []float32:
		return flat[offset]
	case []float64:
		return flat[offset]
	case []float16.Float16:
		return flat[offset]
	}
	exceptions.Panicf("compute: unsupported dtype %s", buf.dtype)
	return nil
}

func writeElement(buf *Buffer, offset int, value any) {
	switch flat := buf.flat.(type) {
	case []int32:
		flat[offset] = value.(int32)
	case []int64:
		flat[offset] = value.(int64)
	case []float32:
		flat[offset] = value.(float32)
	case []float64:
		flat[offset] = value.(float64)
	case []float16.Float16:
		flat[offset] = value.(float16.Float16)
	default:
		exceptions.Panicf("compute: unsupported dtype %s", buf.dtype)
	}
}

func zeroFlat(flat any) {
	switch flat := flat.(type) {
	case []int32:
		clear(flat)
	case []int64:
		clear(flat)
	case []float32:
		clear(flat)
	case []float64:
		clear(flat)
	case []float16.Float16:
		clear(flat)
	default:
		exceptions.Panicf("compute: unsupported flat storage %T", flat)
	}
}

// indexOf reads a scalar integer buffer as a Go int, for coordinate handles
// and BLAS count/stride arguments.
func indexOf(buf *Buffer) int {
	switch flat := buf.flat.(type) {
	case []int32:
		return int(flat[0])
	case []int64:
		return int(flat[0])
	}
	backends.Raise(backends.ErrTypeMismatch, "compute: index handle must be an integer scalar, got %s", buf.dtype)
	return 0
}

// convertTo converts any compatible Go number into dtype's element
// representation.
func convertTo(dtype dtypes.DType, value any) any {
	switch dtype {
	case dtypes.Int32:
		return int32(toInt64(value))
	case dtypes.Int64:
		return toInt64(value)
	case dtypes.Float32:
		return float32(toFloat64(value))
	case dtypes.Float64:
		return toFloat64(value)
	case dtypes.Float16:
		return float16.Fromfloat32(float32(toFloat64(value)))
	}
	exceptions.Panicf("compute: unsupported dtype %s", dtype)
	return nil
}

func toFloat64(value any) float64 {
	switch v := value.(type) {
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case float32:
		return float64(v)
	case float64:
		return v
	case float16.Float16:
		return float64(v.Float32())
	}
	exceptions.Panicf("compute: cannot convert %T to a number", value)
	return 0
}

func toInt64(value any) int64 {
	switch v := value.(type) {
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	case float32:
		return int64(v)
	case float64:
		return int64(v)
	case float16.Float16:
		return int64(v.Float32())
	}
	exceptions.Panicf("compute: cannot convert %T to a number", value)
	return 0
}
