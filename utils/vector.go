package utils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V *mat.VecDense
}

func NewVector(n int, dataO ...[]float64) Vector {
	if len(dataO) != 0 {
		if len(dataO[0]) != n {
			panic(fmt.Errorf("mismatch in allocation: NewVector n = %v, len(data[0]) = %v", n, len(dataO[0])))
		}
		return Vector{mat.NewVecDense(n, dataO[0])}
	}
	return Vector{mat.NewVecDense(n, make([]float64, n))}
}

func (v Vector) Len() int        { return v.V.Len() }
func (v Vector) Data() []float64 { return v.V.RawVector().Data }

func (v Vector) Copy() Vector {
	var (
		data = make([]float64, v.Len())
	)
	copy(data, v.Data())
	return NewVector(v.Len(), data)
}

// Chainable (extended) methods, all change the receiver
func (v Vector) Apply(f func(float64) float64) Vector {
	var (
		data = v.Data()
	)
	for i, val := range data {
		data[i] = f(val)
	}
	return v
}

func (v Vector) Apply2(a Vector, f func(float64, float64) float64) Vector {
	var (
		data, dataA = v.Data(), a.Data()
	)
	if len(data) != len(dataA) {
		panic(fmt.Errorf("dimension mismatch: %d vs %d", len(data), len(dataA)))
	}
	for i, val := range data {
		data[i] = f(val, dataA[i])
	}
	return v
}

func (v Vector) Min() (min float64) {
	var (
		data = v.Data()
	)
	min = data[0]
	for _, val := range data {
		if val < min {
			min = val
		}
	}
	return
}

func (v Vector) Max() (max float64) {
	var (
		data = v.Data()
	)
	max = data[0]
	for _, val := range data {
		if val > max {
			max = val
		}
	}
	return
}
