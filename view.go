package fmtbuf

// View is a non-owning window over the unwritten tail of a fixed buffer.
// It pairs the remaining free space with the number of units committed so
// far in the current chain of appends. Views are values: each successful
// append returns a new, smaller view, and a failed append returns the view
// the caller already held, so failure commits nothing.
type View[U CodeUnit] struct {
	free []U
	n    int
}

// NewView returns a view over the whole of buf with nothing written.
func NewView[U CodeUnit](buf []U) View[U] {
	return View[U]{free: buf}
}

// Written returns the number of units committed through this view's chain.
func (v View[U]) Written() int { return v.n }

// Free returns the number of units still available.
func (v View[U]) Free() int { return len(v.free) }

// Remaining returns the unwritten tail itself.
func (v View[U]) Remaining() []U { return v.free }

// take commits n units of the free window.
func (v View[U]) take(n int) View[U] {
	return View[U]{free: v.free[n:], n: v.n + n}
}
