package fx

// Matrix is a dense row-major result of a rate lookup.
// Row i corresponds to the i-th requested date, column j to the j-th
// requested base currency.
type Matrix struct {
	rows   int
	cols   int
	values []float64
}

func newMatrix(rows, cols int) *Matrix {
	return &Matrix{rows: rows, cols: cols, values: make([]float64, rows*cols)}
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// At returns the value at row i, column j.
func (m *Matrix) At(i, j int) float64 {
	return m.values[i*m.cols+j]
}

// Row returns a copy of row i.
func (m *Matrix) Row(i int) []float64 {
	return append([]float64(nil), m.values[i*m.cols:(i+1)*m.cols]...)
}

// Values returns a copy of the matrix as nested rows.
func (m *Matrix) Values() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = m.Row(i)
	}
	return out
}

func (m *Matrix) set(i, j int, v float64) {
	m.values[i*m.cols+j] = v
}
