package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
)

// Triplets is a list of (row, column, value) contributions to a sparse matrix. Contributions sharing a coordinate
// are summed, never overwritten, when the list is compressed.
type Triplets struct {
	I, J []int
	V    []float64
}

func NewTriplets(capacity int) (T *Triplets) {
	T = &Triplets{
		I: make([]int, 0, capacity),
		J: make([]int, 0, capacity),
		V: make([]float64, 0, capacity),
	}
	return
}

func (T *Triplets) Add(i, j int, v float64) {
	T.I = append(T.I, i)
	T.J = append(T.J, j)
	T.V = append(T.V, v)
}

func (T *Triplets) Len() int { return len(T.V) }

// Append concatenates other onto the receiver, preserving contribution order
func (T *Triplets) Append(other *Triplets) {
	T.I = append(T.I, other.I...)
	T.J = append(T.J, other.J...)
	T.V = append(T.V, other.V...)
}

// ToDOK accumulates the contributions in list order into a dictionary of keys matrix
func (T *Triplets) ToDOK(nr, nc int) (D *sparse.DOK, err error) {
	if nr < 1 || nc < 1 {
		err = fmt.Errorf("invalid sparse matrix dimensions: nr, nc = %d, %d", nr, nc)
		return
	}
	D = sparse.NewDOK(nr, nc)
	for k, v := range T.V {
		i, j := T.I[k], T.J[k]
		if i < 0 || i >= nr || j < 0 || j >= nc {
			D = nil
			err = fmt.Errorf("triplet %d at (%d,%d) is outside of a %dx%d matrix", k, i, j, nr, nc)
			return
		}
		D.Set(i, j, D.At(i, j)+v)
	}
	return
}

// ToCSR sums duplicate coordinates and compresses into row storage
func (T *Triplets) ToCSR(nr, nc int) (C *sparse.CSR, err error) {
	var D *sparse.DOK
	if D, err = T.ToDOK(nr, nc); err != nil {
		return
	}
	C = D.ToCSR()
	return
}
