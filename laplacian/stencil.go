package laplacian

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/kabukunz/libigl-legacy/utils"
)

/*
Stencil is the fixed element-local contribution pattern of the Crouzeix-Raviart Laplacian for one simplex type.
Entry c adds sign(c)*Factor*C(f, LV[c]) at (local facet LI[c], local facet LJ[c]) of element f, where sign(c) is
-1 for the first half of the entries and +1 for the second. The first half holds the off-diagonal pairs in both
orders, the second half the matching diagonal terms, so every element contributes a symmetric block with zero row
sums.
*/
type Stencil struct {
	SimplexSize int
	Factor      float64
	LI, LJ, LV  []int
}

var (
	triangleStencil = &Stencil{
		SimplexSize: 3,
		Factor:      4.,
		LI:          []int{0, 1, 2, 1, 2, 0, 0, 1, 2, 1, 2, 0},
		LJ:          []int{1, 2, 0, 0, 1, 2, 0, 1, 2, 1, 2, 0},
		LV:          []int{2, 0, 1, 2, 0, 1, 2, 0, 1, 2, 0, 1},
	}
	tetrahedronStencil = &Stencil{
		SimplexSize: 4,
		Factor:      -2.,
		LI:          []int{0, 3, 3, 3, 1, 2, 1, 0, 1, 2, 2, 0, 0, 3, 3, 3, 1, 2, 1, 0, 1, 2, 2, 0},
		LJ:          []int{1, 0, 1, 2, 2, 0, 0, 3, 3, 3, 1, 2, 0, 3, 3, 3, 1, 2, 1, 0, 1, 2, 2, 0},
		LV:          []int{2, 3, 4, 5, 0, 1, 2, 3, 4, 5, 0, 1, 2, 3, 4, 5, 0, 1, 2, 3, 4, 5, 0, 1},
	}
)

// StencilFor returns the stencil of triangles (ss = 3) or tetrahedra (ss = 4)
func StencilFor(ss int) (st *Stencil, err error) {
	switch ss {
	case 3:
		st = triangleStencil
	case 4:
		st = tetrahedronStencil
	default:
		err = fmt.Errorf("%w: %d", ErrUnsupportedSimplex, ss)
	}
	return
}

// Len is the number of contributions per element, ss*(ss-1)*2
func (st *Stencil) Len() int { return len(st.LI) }

// NumCotangents is the width of the cotangent entries the stencil indexes, ss*(ss-1)/2
func (st *Stencil) NumCotangents() int { return st.SimplexSize * (st.SimplexSize - 1) / 2 }

func (st *Stencil) Sign(c int) float64 {
	if c < st.Len()/2 {
		return -1.
	}
	return 1.
}

// Scatter appends the contributions of elements [kMin, kMax) to T
func (st *Stencil) Scatter(C mat.Matrix, EMAP []int, m, kMin, kMax int, T *utils.Triplets) (err error) {
	for f := kMin; f < kMax; f++ {
		for c := range st.LI {
			cot := C.At(f, st.LV[c])
			if math.IsNaN(cot) || math.IsInf(cot, 0) {
				return fmt.Errorf("%w: non-finite cotangent weight %v in element %d", ErrInvalidInput, cot, f)
			}
			T.Add(EMAP[st.LI[c]*m+f], EMAP[st.LJ[c]*m+f], st.Sign(c)*st.Factor*cot)
		}
	}
	return
}
