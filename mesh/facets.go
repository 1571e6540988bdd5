package mesh

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kabukunz/libigl-legacy/types"
)

var (
	// ErrUnsupportedSimplex is returned for elements that are not triangles or tetrahedra, and for rows of mixed width
	ErrUnsupportedSimplex = errors.New("unsupported simplex size")
	// ErrInvalidConnectivity is returned for an empty element list or negative vertex indices
	ErrInvalidConnectivity = errors.New("invalid element connectivity")
)

// FacetResolver extracts the facets of every element and deduplicates them.
// EMAP is slot-major: EMAP[c*m+f] indexes E for local facet c of element f.
type FacetResolver interface {
	ResolveFacets(F [][]int) (oriented, E [][]int, EMAP []int, err error)
}

// Local facet c of an element is the one opposite local vertex c
var (
	triFacets = [3][2]int{{1, 2}, {2, 0}, {0, 1}}
	tetFacets = [4][3]int{
		{1, 3, 2}, // Face 0
		{0, 2, 3}, // Face 1
		{0, 3, 1}, // Face 2
		{0, 1, 2}, // Face 3
	}
)

// SimplexSize returns the common width of the element rows
func SimplexSize(F [][]int) (ss int, err error) {
	if len(F) == 0 {
		err = fmt.Errorf("%w: no elements", ErrInvalidConnectivity)
		return
	}
	ss = len(F[0])
	for f, elem := range F {
		if len(elem) != ss {
			err = fmt.Errorf("%w: element %d has %d vertices, element 0 has %d",
				ErrUnsupportedSimplex, f, len(elem), ss)
			return
		}
	}
	if ss != 3 && ss != 4 {
		err = fmt.Errorf("%w: %d", ErrUnsupportedSimplex, ss)
	}
	return
}

// OrientedFacets returns all m*ss directed facets, slot-major so that facet c*m+f is local facet c of element f
func OrientedFacets(F [][]int) (facets [][]int, err error) {
	var (
		ss int
		m  = len(F)
	)
	if ss, err = SimplexSize(F); err != nil {
		return
	}
	facets = make([][]int, m*ss)
	for c := 0; c < ss; c++ {
		for f, elem := range F {
			var facet []int
			switch ss {
			case 3:
				lf := triFacets[c]
				facet = []int{elem[lf[0]], elem[lf[1]]}
			case 4:
				lf := tetFacets[c]
				facet = []int{elem[lf[0]], elem[lf[1]], elem[lf[2]]}
			}
			for _, v := range facet {
				if v < 0 {
					err = fmt.Errorf("%w: element %d has negative vertex index %d",
						ErrInvalidConnectivity, f, v)
					return nil, err
				}
			}
			facets[c*m+f] = facet
		}
	}
	return
}

/*
UniqueSimplices deduplicates simplices by their vertex sets, regardless of orientation.
The unique list E is ordered lexicographically by sorted vertex indices, each entry keeping the orientation of its
first occurrence in the input. IA[u] is the input row holding that first occurrence, IC[k] is the unique index of
input row k, so that E[IC[k]] and input row k are the same set.
*/
func UniqueSimplices(simplices [][]int) (E [][]int, IA, IC []int, err error) {
	if len(simplices) == 0 {
		return
	}
	width := len(simplices[0])
	for k, s := range simplices {
		if len(s) != width {
			err = fmt.Errorf("%w: simplex %d has %d vertices, simplex 0 has %d",
				ErrUnsupportedSimplex, k, len(s), width)
			return
		}
	}
	switch width {
	case 2:
		E, IA, IC = uniqueBy(simplices,
			func(s []int) types.EdgeKey { return types.NewEdgeKey([2]int{s[0], s[1]}) },
			func(a, b types.EdgeKey) bool { return a < b })
	case 3:
		E, IA, IC = uniqueBy(simplices,
			func(s []int) types.FaceKey { return types.NewFaceKey([3]int{s[0], s[1], s[2]}) },
			func(a, b types.FaceKey) bool { return a.Less(b) })
	default:
		err = fmt.Errorf("%w: facets of width %d", ErrUnsupportedSimplex, width)
	}
	return
}

func uniqueBy[K comparable](simplices [][]int, keyOf func([]int) K,
	less func(a, b K) bool) (E [][]int, IA, IC []int) {
	var (
		first = make(map[K]int, len(simplices))
		keys  []K
	)
	for k, s := range simplices {
		key := keyOf(s)
		if _, exists := first[key]; !exists {
			first[key] = k
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return less(keys[i], keys[j]) })
	unique := make(map[K]int, len(keys))
	E = make([][]int, len(keys))
	IA = make([]int, len(keys))
	for u, key := range keys {
		unique[key] = u
		IA[u] = first[key]
		E[u] = append([]int(nil), simplices[IA[u]]...)
	}
	IC = make([]int, len(simplices))
	for k, s := range simplices {
		IC[k] = unique[keyOf(s)]
	}
	return
}

// ResolveFacets extracts and deduplicates the facets of F
func ResolveFacets(F [][]int) (oriented, E [][]int, EMAP []int, err error) {
	if oriented, err = OrientedFacets(F); err != nil {
		return
	}
	if E, _, EMAP, err = UniqueSimplices(oriented); err != nil {
		oriented = nil
	}
	return
}

// DefaultResolver implements FacetResolver with ResolveFacets
type DefaultResolver struct{}

func (DefaultResolver) ResolveFacets(F [][]int) (oriented, E [][]int, EMAP []int, err error) {
	return ResolveFacets(F)
}
