package compute

import (
	"reflect"
	"sync"

	"github.com/gomlx/gopjrt/dtypes"

	"github.com/emlift/emlift/backends"
	"github.com/emlift/emlift/types/layouts"
)

// Buffer is the compute context's concrete Op: a layout plus flat host
// storage.
//
// The flat storage is a slice of the dtype's Go type. It is either owned by
// the context (allocated from the buffer pools, reclaimed on Release) or
// caller-owned (wrapped by Import, never reclaimed).
type Buffer struct {
	dtype  dtypes.DType
	layout layouts.Layout
	valid  bool

	// flat is always a slice of the underlying data type (dtype.GoType()).
	flat any

	// pooled storage is owned by the context; imported storage is not.
	pooled bool
}

// DType of the buffer's elements.
func (b *Buffer) DType() dtypes.DType { return b.dtype }

// Layout of the buffer.
func (b *Buffer) Layout() layouts.Layout { return b.layout }

// IsValid returns false after the buffer was released.
func (b *Buffer) IsValid() bool { return b.valid }

// Flat returns the underlying flat storage slice. Mutating it mutates the
// buffer.
func (b *Buffer) Flat() any { return b.flat }

type bufferPoolKey struct {
	dtype  dtypes.DType
	length int
}

// bufferPools keeps reusable buffers keyed by dtype and flat length, so the
// interpreter's many short-lived scalar handles don't thrash the allocator.
// The underlying type is map[bufferPoolKey]*sync.Pool.
type bufferPools struct {
	pools sync.Map
}

func (p *bufferPools) pool(dtype dtypes.DType, length int) *sync.Pool {
	key := bufferPoolKey{dtype: dtype, length: length}
	poolInterface, ok := p.pools.Load(key)
	if !ok {
		poolInterface, _ = p.pools.LoadOrStore(key, &sync.Pool{
			New: func() any {
				return &Buffer{
					dtype:  dtype,
					flat:   reflect.MakeSlice(reflect.SliceOf(dtype.GoType()), length, length).Interface(),
					pooled: true,
				}
			},
		})
	}
	return poolInterface.(*sync.Pool)
}

func (p *bufferPools) get(dtype dtypes.DType, length int) *Buffer {
	buf := p.pool(dtype, length).Get().(*Buffer)
	buf.valid = true
	return buf
}

// put returns a buffer to its pool. Imported (caller-owned) buffers are only
// invalidated. After this any references to the buffer should be dropped.
func (p *bufferPools) put(buf *Buffer) {
	buf.valid = false
	if !buf.pooled {
		return
	}
	p.pool(buf.dtype, flatLen(buf.dtype, buf.flat)).Put(buf)
}

// storageLen returns the number of flat elements needed to back a layout:
// one past its largest addressable offset.
func storageLen(layout layouts.Layout) int {
	length := 1
	for axis := 0; axis < layout.Rank(); axis++ {
		length += (layout.Extent(axis) - 1) * layout.CumulativeIncrement(axis)
	}
	return length
}

// flatLen returns the length of a flat storage slice of the given dtype.
func flatLen(dtype dtypes.DType, flat any) int {
	rv := reflect.ValueOf(flat)
	if rv.Kind() != reflect.Slice || rv.Type().Elem() != dtype.GoType() {
		backends.Raise(backends.ErrInvalidArgument,
			"compute: flat storage must be a %s slice, got %T", dtype, flat)
	}
	return rv.Len()
}

// FlatOf returns the typed flat storage of a compute Op.
// It panics if T does not match the buffer's dtype.
func FlatOf[T dtypes.Supported](op backends.Op) []T {
	buf := op.(*Buffer)
	return buf.flat.([]T)
}

// ScalarOf returns the single element of a scalar compute Op.
func ScalarOf[T dtypes.Supported](op backends.Op) T {
	return FlatOf[T](op)[0]
}
