// Package viewport computes the visible row window of a listing from the
// total item count, the available rows and the selection position. Pure
// arithmetic, no I/O.
package viewport

// Window returns the half-open range [from, to) of rows to render.
//
// When everything fits the whole range is returned. Otherwise the window is
// pinned to the start while the selection is in the top half, pinned to the
// end while it is in the bottom half, and centered on the selection in
// between. Whenever n > rows the result satisfies from <= sel < to and
// to-from == rows.
func Window(n, rows, sel int) (from, to int) {
	if rows <= 0 || n <= 0 {
		return 0, 0
	}
	if n <= rows {
		return 0, n
	}

	half := rows / 2
	switch {
	case sel < half:
		return 0, rows
	case sel >= n-half:
		return n - rows, n
	default:
		return sel - half, sel - half + rows
	}
}
