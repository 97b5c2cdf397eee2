package dataset

// View is an immutable subset of the rows of a frame. Partition never
// copies feature data; it only splits the row index list.
type View struct {
	frame *Frame
	rows  []int
}

// NewView returns a view over the given frame rows. The slice is copied.
func NewView(f *Frame, rows []int) View {
	return View{frame: f, rows: append([]int(nil), rows...)}
}

// Frame returns the frame the view reads from.
func (v View) Frame() *Frame { return v.frame }

// Len returns the number of rows in the view.
func (v View) Len() int { return len(v.rows) }

// Rows returns a copy of the frame row indices of the view.
func (v View) Rows() []int { return append([]int(nil), v.rows...) }

// Row returns the encoded feature vector of the i-th row of the view.
// The returned slice must not be modified.
func (v View) Row(i int) []float64 { return v.frame.X[v.rows[i]] }

// Value returns feature f of the i-th row of the view.
func (v View) Value(i, f int) float64 { return v.frame.X[v.rows[i]][f] }

// Label returns the label of the i-th row of the view.
func (v View) Label(i int) float64 { return v.frame.Y[v.rows[i]] }

// Labels returns the labels of the view in row order.
func (v View) Labels() []float64 {
	out := make([]float64, len(v.rows))
	for i, r := range v.rows {
		out[i] = v.frame.Y[r]
	}
	return out
}

// Partition routes every row to left when goLeft reports true and to right
// otherwise. Row order is preserved on both sides.
func (v View) Partition(goLeft func(x []float64) bool) (left, right View) {
	var l, r []int
	for _, row := range v.rows {
		if goLeft(v.frame.X[row]) {
			l = append(l, row)
		} else {
			r = append(r, row)
		}
	}
	return View{frame: v.frame, rows: l}, View{frame: v.frame, rows: r}
}

// Distinct returns the number of distinct values of feature f in the view.
func (v View) Distinct(f int) int {
	seen := make(map[float64]struct{})
	for _, row := range v.rows {
		seen[v.frame.X[row][f]] = struct{}{}
	}
	return len(seen)
}
