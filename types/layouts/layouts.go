// Package layouts defines Layout, the shape and stride description of a
// multi-dimensional value.
//
// A Layout holds one extent and one cumulative increment (stride, measured in
// elements) per dimension. It is pure data: it carries no element type and no
// storage, only the geometry needed to enumerate or address elements. Layouts
// are immutable once constructed; derived layouts (see Layout.Slice) share no
// mutable state with their origin.
//
// A rank-0 Layout describes a scalar and has exactly one addressable element.
package layouts

import (
	"fmt"
	"strings"

	"github.com/gomlx/exceptions"
)

// Layout describes the geometry of a multi-dimensional value: the extent of
// each dimension and the cumulative increment (stride, in elements) used to
// convert a coordinate on that dimension into a linear offset.
//
// Construct it with Make (dense row-major) or MakeWithIncrements. The zero
// value is ScalarLayout, a valid rank-0 layout.
type Layout struct {
	extents    []int
	increments []int
}

// ScalarLayout is the layout of a scalar: rank 0, a single element.
var ScalarLayout = Layout{}

// Make returns a dense row-major Layout with the given extents: the last
// dimension is contiguous and each preceding dimension strides over the
// product of the extents that follow it.
//
// It panics if any extent is <= 0.
func Make(extents ...int) Layout {
	for _, extent := range extents {
		if extent <= 0 {
			exceptions.Panicf("layouts.Make(%v): cannot create a layout with a dimension extent <= 0", extents)
		}
	}
	l := Layout{
		extents:    append([]int(nil), extents...),
		increments: make([]int, len(extents)),
	}
	stride := 1
	for axis := len(extents) - 1; axis >= 0; axis-- {
		l.increments[axis] = stride
		stride *= extents[axis]
	}
	return l
}

// MakeWithIncrements returns a Layout with explicitly given cumulative
// increments, one per extent. Used to describe non-contiguous views, e.g.
// a column of a row-major matrix.
//
// It panics if the slices have different lengths or any extent is <= 0.
func MakeWithIncrements(extents, increments []int) Layout {
	if len(extents) != len(increments) {
		exceptions.Panicf("layouts.MakeWithIncrements: %d extents but %d increments", len(extents), len(increments))
	}
	for _, extent := range extents {
		if extent <= 0 {
			exceptions.Panicf("layouts.MakeWithIncrements(%v): cannot create a layout with a dimension extent <= 0", extents)
		}
	}
	return Layout{
		extents:    append([]int(nil), extents...),
		increments: append([]int(nil), increments...),
	}
}

// Rank is the dimensionality of the layout: the number of dimensions.
func (l Layout) Rank() int { return len(l.extents) }

// IsScalar returns whether the layout is rank-0, describing a single element.
func (l Layout) IsScalar() bool { return l.Rank() == 0 }

// Extent returns the number of elements along the given axis.
// It panics for an out-of-range axis: that is a programming error.
func (l Layout) Extent(axis int) int {
	l.checkAxis("Extent", axis)
	return l.extents[axis]
}

// CumulativeIncrement returns the stride, in elements, of the given axis: the
// linear distance between two elements that differ by one on that axis. It is
// what gets passed as the "inc" argument of strided external routines.
//
// It panics for an out-of-range axis.
func (l Layout) CumulativeIncrement(axis int) int {
	l.checkAxis("CumulativeIncrement", axis)
	return l.increments[axis]
}

func (l Layout) checkAxis(op string, axis int) {
	if axis < 0 || axis >= l.Rank() {
		exceptions.Panicf("Layout.%s(%d) out-of-range for rank %d (layout=%s)", op, axis, l.Rank(), l)
	}
}

// Size returns the number of addressable elements: the product of all
// extents, 1 for a scalar layout.
func (l Layout) Size() int {
	size := 1
	for _, extent := range l.extents {
		size *= extent
	}
	return size
}

// FlatIndex converts a full coordinate tuple into a linear element offset
// using the cumulative increments. It panics if the number of coordinates
// does not match the rank, or a coordinate is out of range.
func (l Layout) FlatIndex(coords ...int) int {
	if len(coords) != l.Rank() {
		exceptions.Panicf("Layout.FlatIndex(%v): got %d coordinates for rank %d", coords, len(coords), l.Rank())
	}
	offset := 0
	for axis, coord := range coords {
		if coord < 0 || coord >= l.extents[axis] {
			exceptions.Panicf("Layout.FlatIndex(%v): coordinate %d out-of-range for extent %d on axis %d",
				coords, coord, l.extents[axis], axis)
		}
		offset += coord * l.increments[axis]
	}
	return offset
}

// Slice derives the rank-1 layout of a single dimension: the extent and
// increment of the given axis. E.g. Slice(1) of a row-major matrix layout is
// the layout of one of its rows; Slice(0) the layout of one of its columns.
func (l Layout) Slice(axis int) Layout {
	l.checkAxis("Slice", axis)
	return Layout{
		extents:    []int{l.extents[axis]},
		increments: []int{l.increments[axis]},
	}
}

// Extents returns a copy of the per-dimension extents.
func (l Layout) Extents() []int { return append([]int(nil), l.extents...) }

// Equal compares extents and increments.
func (l Layout) Equal(o Layout) bool {
	if l.Rank() != o.Rank() {
		return false
	}
	for axis := range l.extents {
		if l.extents[axis] != o.extents[axis] || l.increments[axis] != o.increments[axis] {
			return false
		}
	}
	return true
}

// IsContiguous returns whether the layout is dense row-major, i.e. equal to
// Make(extents...).
func (l Layout) IsContiguous() bool {
	stride := 1
	for axis := l.Rank() - 1; axis >= 0; axis-- {
		if l.increments[axis] != stride {
			return false
		}
		stride *= l.extents[axis]
	}
	return true
}

// String implements fmt.Stringer. Dense layouts print as "[2 3]", strided
// ones append the increments, as in "[3]:{4}".
func (l Layout) String() string {
	if l.IsScalar() {
		return "[scalar]"
	}
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "%v", l.extents)
	if !l.IsContiguous() {
		b.WriteString(":{")
		for axis, inc := range l.increments {
			if axis > 0 {
				b.WriteByte(' ')
			}
			_, _ = fmt.Fprintf(&b, "%d", inc)
		}
		b.WriteByte('}')
	}
	return b.String()
}
