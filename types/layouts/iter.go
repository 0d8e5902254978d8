package layouts

import "iter"

// Iter enumerates every coordinate tuple of the layout exactly once, in
// row-major order: the last axis changes fastest. A scalar layout yields one
// empty tuple.
//
// To avoid allocating per step, the yielded slice is owned by Iter: don't
// retain or change it inside the loop.
func (l Layout) Iter() iter.Seq[[]int] {
	return func(yield func([]int) bool) {
		rank := l.Rank()
		if rank == 0 {
			_ = yield(make([]int, 0))
			return
		}
		coords := make([]int, rank)
		for {
			if !yield(coords) {
				return
			}
			// Increment coords to the next tuple, carrying over from the
			// last axis towards the first.
			axis := rank - 1
			for ; axis >= 0; axis-- {
				coords[axis]++
				if coords[axis] < l.extents[axis] {
					break
				}
				coords[axis] = 0
			}
			if axis < 0 {
				// The first axis overflowed: enumeration is complete.
				return
			}
		}
	}
}
