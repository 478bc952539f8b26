package utils

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Matrix wraps a row-major gonum Dense. Field rows are stored contiguously, so a row of a
// conserved state (one variable across all cells) is a plain []float64 view.
type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if nr <= 0 || nc <= 0 {
		panic(fmt.Errorf("invalid matrix dimensions: NewMatrix nr,nc = %v,%v", nr, nc))
	}
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{m}
	return
}

func (m Matrix) Dims() (r, c int)    { return m.M.Dims() }
func (m Matrix) At(i, j int) float64 { return m.M.At(i, j) }

// Data returns the backing row-major storage
func (m Matrix) Data() []float64 { return m.M.RawMatrix().Data }

// RowView returns the live storage of row i, writes go through to the matrix
func (m Matrix) RowView(i int) []float64 {
	var (
		nr, _ = m.Dims()
	)
	if i < 0 || i > nr-1 {
		panic(fmt.Errorf("row index out of bounds: index = %d, max_bounds = %d", i, nr-1))
	}
	return m.M.RawRowView(i)
}

// Row returns a copy of row i
func (m Matrix) Row(i int) Vector {
	var (
		src   = m.RowView(i)
		_, nc = m.Dims()
		dataV = make([]float64, nc)
	)
	copy(dataV, src)
	return NewVector(nc, dataV)
}

func (m Matrix) Copy() (R Matrix) { // Does not change receiver
	var (
		data   = m.Data()
		nr, nc = m.Dims()
		dataR  = make([]float64, nr*nc)
	)
	copy(dataR, data)
	R = NewMatrix(nr, nc, dataR)
	return
}

func (m Matrix) Add(A Matrix) Matrix { // Changes receiver
	m.checkSameDims(A)
	var (
		dataM, dataA = m.Data(), A.Data()
	)
	for i := range dataM {
		dataM[i] += dataA[i]
	}
	return m
}

// AbsMax is the infinity norm of the flattened matrix
func (m Matrix) AbsMax() (max float64) {
	for _, val := range m.Data() {
		if a := math.Abs(val); a > max {
			max = a
		}
	}
	return
}

func (m Matrix) checkSameDims(A Matrix) {
	var (
		nrM, ncM = m.Dims()
		nrA, ncA = A.Dims()
	)
	if nrM != nrA || ncM != ncA {
		panic(fmt.Errorf("dimension mismatch: [%d,%d] vs [%d,%d]", nrM, ncM, nrA, ncA))
	}
}
