package mesh

import (
	"sort"

	"github.com/kabukunz/libigl-legacy/types"
)

// ManifoldChecker reports whether a triangle mesh is edge-manifold
type ManifoldChecker interface {
	IsEdgeManifold(F [][]int) bool
}

// NonManifoldEdges returns the undirected edges of a triangle mesh shared by more than two triangles, in
// ascending order. Rows that are not triangles are ignored.
func NonManifoldEdges(F [][]int) (edges [][2]int) {
	count := make(map[types.EdgeKey]int, 3*len(F)/2+1)
	for _, tri := range F {
		if len(tri) != 3 {
			continue
		}
		for _, lf := range triFacets {
			count[types.NewEdgeKey([2]int{tri[lf[0]], tri[lf[1]]})]++
		}
	}
	var keys []types.EdgeKey
	for key, n := range count {
		if n > 2 {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for _, key := range keys {
		edges = append(edges, key.GetVertices())
	}
	return
}

// IsEdgeManifold is true when every undirected edge is incident to at most two triangles
func IsEdgeManifold(F [][]int) bool {
	return len(NonManifoldEdges(F)) == 0
}

// DefaultManifoldChecker implements ManifoldChecker with IsEdgeManifold
type DefaultManifoldChecker struct{}

func (DefaultManifoldChecker) IsEdgeManifold(F [][]int) bool { return IsEdgeManifold(F) }
