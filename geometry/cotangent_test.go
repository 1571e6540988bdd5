package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestCotmatrixEntriesTriangles(t *testing.T) {
	{ // Right triangle with unit legs
		V := mat.NewDense(3, 2, []float64{0, 0, 1, 0, 0, 1})
		C, err := CotmatrixEntries(V, [][]int{{0, 1, 2}})
		require.NoError(t, err)
		r, c := C.Dims()
		assert.Equal(t, [2]int{1, 3}, [2]int{r, c})
		assert.InDeltaSlice(t, []float64{0, 0.5, 0.5}, C.RawRowView(0), 1.e-14)
	}
	{ // Equilateral triangle, embedded in 3D, either orientation
		h := math.Sqrt(3) / 2
		V := mat.NewDense(3, 3, []float64{0, 0, 1, 1, 0, 1, 0.5, h, 1})
		C, err := CotmatrixEntries(V, [][]int{{0, 1, 2}, {0, 2, 1}})
		require.NoError(t, err)
		want := 0.5 / math.Sqrt(3)
		for f := 0; f < 2; f++ {
			assert.InDeltaSlice(t, []float64{want, want, want}, C.RawRowView(f), 1.e-14)
		}
	}
	{ // Obtuse angles give negative weights
		V := mat.NewDense(3, 2, []float64{0, 0, 2, 0, 1, 0.1})
		C, err := CotmatrixEntries(V, [][]int{{0, 1, 2}})
		require.NoError(t, err)
		assert.Less(t, C.At(0, 2), 0.)
	}
	{ // Agrees with the barycentric gradient form, scale invariant
		V := mat.NewDense(3, 2, []float64{0.1, -0.3, 1.7, 0.2, 0.4, 1.1})
		F := [][]int{{0, 1, 2}}
		C, err := CotmatrixEntries(V, F)
		require.NoError(t, err)
		want := gradientEntries(t, V, F[0])
		for e, pair := range TriangleEdges {
			assert.InDelta(t, want[pair[0]][pair[1]], C.At(0, e), 1.e-12)
		}
		var Vs mat.Dense
		Vs.Scale(13.5, V)
		Cs, err := CotmatrixEntries(&Vs, F)
		require.NoError(t, err)
		assert.InDeltaSlice(t, C.RawRowView(0), Cs.RawRowView(0), 1.e-12)
	}
}

func TestCotmatrixEntriesTetrahedra(t *testing.T) {
	{ // Reference tetrahedron
		V := mat.NewDense(4, 3, []float64{
			0, 0, 0,
			1, 0, 0,
			0, 1, 0,
			0, 0, 1,
		})
		C, err := CotmatrixEntries(V, [][]int{{0, 1, 2, 3}})
		require.NoError(t, err)
		r, c := C.Dims()
		assert.Equal(t, [2]int{1, 6}, [2]int{r, c})
		assert.InDeltaSlice(t, []float64{0, 1. / 6, 1. / 6, 1. / 6, 0, 0}, C.RawRowView(0), 1.e-14)
	}
	{ // Agrees with the barycentric gradient form, linear in scale
		V := mat.NewDense(5, 3, []float64{
			0.1, 0.2, -0.1,
			1.3, 0.1, 0.2,
			0.2, 1.1, 0.3,
			0.3, 0.4, 1.4,
			1.2, 1.0, 1.1,
		})
		F := [][]int{{0, 1, 2, 3}, {1, 2, 3, 4}}
		C, err := CotmatrixEntries(V, F)
		require.NoError(t, err)
		for f, elem := range F {
			want := gradientEntries(t, V, elem)
			for e, pair := range TetrahedronEdges {
				assert.InDelta(t, want[pair[0]][pair[1]], C.At(f, e), 1.e-12)
			}
		}
		s := 3.
		var Vs mat.Dense
		Vs.Scale(s, V)
		Cs, err := CotmatrixEntries(&Vs, F)
		require.NoError(t, err)
		var Cscaled mat.Dense
		Cscaled.Scale(s, C)
		assert.True(t, mat.EqualApprox(&Cscaled, Cs, 1.e-12))
	}
}

func TestCotmatrixEntriesErrors(t *testing.T) {
	V2 := mat.NewDense(3, 2, []float64{0, 0, 1, 0, 2, 0})
	_, err := CotmatrixEntries(V2, [][]int{{0, 1, 2}})
	assert.True(t, errors.Is(err, ErrDegenerate))

	V3 := mat.NewDense(4, 3, []float64{0, 0, 0, 1, 0, 0, 0, 1, 0, 1, 1, 0})
	_, err = CotmatrixEntries(V3, [][]int{{0, 1, 2, 3}})
	assert.True(t, errors.Is(err, ErrDegenerate))

	_, err = CotmatrixEntries(V2, [][]int{{0, 1, 3}})
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
	_, err = CotmatrixEntries(V2, nil)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
	_, err = CotmatrixEntries(V3, [][]int{{0, 1, 2, 3, 0}})
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
	_, err = CotmatrixEntries(V3, [][]int{{0, 1, 2}, {0, 1, 2, 3}})
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
	_, err = CotmatrixEntries(mat.NewDense(2, 1, []float64{0, 1}), [][]int{{0, 1, 0}})
	assert.True(t, errors.Is(err, ErrInvalidGeometry))

	_, err = DefaultProvider{}.CotmatrixEntries(V2, [][]int{{0, 1, 2}})
	assert.Error(t, err)
}

// gradientEntries returns -|K| grad(lambda_i).grad(lambda_j) for the barycentric coordinates of one simplex
func gradientEntries(t *testing.T, V mat.Matrix, elem []int) (W [][]float64) {
	var (
		_, d = V.Dims()
		ns   = len(elem)
		T    = mat.NewDense(ns-1, ns-1, nil)
	)
	// Planar triangles and tetrahedra both give a square edge matrix
	require.Equal(t, d, ns-1)
	for i := 1; i < ns; i++ {
		for k := 0; k < d; k++ {
			T.Set(i-1, k, V.At(elem[i], k)-V.At(elem[0], k))
		}
	}
	var Tinv mat.Dense
	require.NoError(t, Tinv.Inverse(T))
	measure := math.Abs(mat.Det(T))
	if ns == 3 {
		measure /= 2
	} else {
		measure /= 6
	}
	grads := make([][]float64, ns)
	grads[0] = make([]float64, d)
	for i := 1; i < ns; i++ {
		grads[i] = make([]float64, d)
		for k := 0; k < d; k++ {
			// lambda = x^T Tinv, so grad(lambda_i) is column i-1 of Tinv
			grads[i][k] = Tinv.At(k, i-1)
			grads[0][k] -= grads[i][k]
		}
	}
	W = make([][]float64, ns)
	for i := range W {
		W[i] = make([]float64, ns)
		for j := range W[i] {
			var dot float64
			for k := 0; k < d; k++ {
				dot += grads[i][k] * grads[j][k]
			}
			W[i][j] = -measure * dot
		}
	}
	return
}
