package laplacian

import (
	"errors"

	"github.com/kabukunz/libigl-legacy/mesh"
)

var (
	// ErrUnsupportedSimplex is returned when elements are neither triangles nor tetrahedra
	ErrUnsupportedSimplex = mesh.ErrUnsupportedSimplex
	// ErrNotEdgeManifold is returned for triangle meshes with an edge shared by more than two triangles
	ErrNotEdgeManifold = errors.New("triangle mesh is not edge-manifold")
	// ErrInvalidInput is returned for inconsistent vertices, elements, facets or facet maps
	ErrInvalidInput = errors.New("invalid input")
)
