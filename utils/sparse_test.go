package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriplets(t *testing.T) {
	{ // Duplicates sum
		T := NewTriplets(8)
		T.Add(0, 0, 1.)
		T.Add(1, 2, 2.)
		T.Add(0, 0, 3.)
		T.Add(1, 2, -0.5)
		T.Add(2, 1, 4.)
		assert.Equal(t, 5, T.Len())
		C, err := T.ToCSR(3, 3)
		require.NoError(t, err)
		r, c := C.Dims()
		assert.Equal(t, [2]int{3, 3}, [2]int{r, c})
		assert.Equal(t, 4., C.At(0, 0))
		assert.Equal(t, 1.5, C.At(1, 2))
		assert.Equal(t, 4., C.At(2, 1))
		assert.Equal(t, 0., C.At(2, 2))
		assert.Equal(t, 3, C.NNZ())
	}
	{ // Appending partial lists gives the same matrix as one list
		A, B, All := NewTriplets(0), NewTriplets(0), NewTriplets(0)
		A.Add(0, 1, 1.)
		A.Add(1, 1, 2.)
		B.Add(0, 1, 3.)
		B.Add(1, 0, 4.)
		All.Add(0, 1, 1.)
		All.Add(1, 1, 2.)
		All.Add(0, 1, 3.)
		All.Add(1, 0, 4.)
		A.Append(B)
		assert.Equal(t, All, A)
		CA, err := A.ToCSR(2, 2)
		require.NoError(t, err)
		CAll, err := All.ToCSR(2, 2)
		require.NoError(t, err)
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				assert.Equal(t, CAll.At(i, j), CA.At(i, j))
			}
		}
	}
	{ // Out of range coordinates and empty dimensions are errors, not panics
		T := NewTriplets(1)
		T.Add(3, 0, 1.)
		_, err := T.ToCSR(3, 3)
		assert.Error(t, err)
		_, err = NewTriplets(0).ToCSR(0, 3)
		assert.Error(t, err)
	}
}
