package laplacian

import (
	"fmt"
	"sort"

	"github.com/james-bowman/sparse"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/kabukunz/libigl-legacy/geometry"
	"github.com/kabukunz/libigl-legacy/mesh"
	"github.com/kabukunz/libigl-legacy/utils"
)

// maxReported bounds the number of individual input problems carried in one error
const maxReported = 8

/*
Assembler builds the Crouzeix-Raviart cotangent Laplacian of triangle and tetrahedral meshes.
An Assembler holds no per-mesh state and is safe for concurrent use. Each call allocates its own output.
*/
type Assembler struct {
	ParallelDegree int
	ManifoldCheck  ManifoldCheck
	resolver       mesh.FacetResolver
	provider       geometry.CotangentProvider
	checker        mesh.ManifoldChecker
	logger         *zap.Logger
}

func NewAssembler(opts ...Option) (a *Assembler) {
	a = &Assembler{
		ParallelDegree: 1,
		ManifoldCheck:  ManifoldError,
		resolver:       mesh.DefaultResolver{},
		provider:       geometry.DefaultProvider{},
		checker:        mesh.DefaultManifoldChecker{},
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return
}

// CrouzeixRaviartCotmatrix resolves the unique facets E of F, with the slot-major map EMAP from element facets to
// E, and assembles the |E| x |E| Laplacian L
func CrouzeixRaviartCotmatrix(V mat.Matrix, F [][]int, opts ...Option) (L *sparse.CSR, E [][]int, EMAP []int,
	err error) {
	return NewAssembler(opts...).Assemble(V, F)
}

// CrouzeixRaviartCotmatrixWithFacets assembles L from precomputed facets, so that E and EMAP can be reused while
// only V changes
func CrouzeixRaviartCotmatrixWithFacets(V mat.Matrix, F [][]int, E [][]int, EMAP []int,
	opts ...Option) (L *sparse.CSR, err error) {
	return NewAssembler(opts...).AssembleWithFacets(V, F, E, EMAP)
}

func (a *Assembler) Assemble(V mat.Matrix, F [][]int) (L *sparse.CSR, E [][]int, EMAP []int, err error) {
	var ss int
	if ss, err = a.validateElements(V, F); err != nil {
		return
	}
	if _, E, EMAP, err = a.resolver.ResolveFacets(F); err != nil {
		err = fmt.Errorf("unable to resolve facets: %w", err)
		return nil, nil, nil, err
	}
	if err = validateFacetMap(len(F), ss, E, EMAP); err != nil {
		return nil, nil, nil, err
	}
	if L, err = a.assemble(V, F, ss, len(E), EMAP); err != nil {
		return nil, nil, nil, err
	}
	return
}

func (a *Assembler) AssembleWithFacets(V mat.Matrix, F [][]int, E [][]int, EMAP []int) (L *sparse.CSR, err error) {
	var ss int
	if ss, err = a.validateElements(V, F); err != nil {
		return
	}
	if err = validateFacetMap(len(F), ss, E, EMAP); err != nil {
		return
	}
	if err = validateFacetSets(F, E, EMAP); err != nil {
		return
	}
	return a.assemble(V, F, ss, len(E), EMAP)
}

func (a *Assembler) assemble(V mat.Matrix, F [][]int, ss, nE int, EMAP []int) (L *sparse.CSR, err error) {
	var (
		m  = len(F)
		st *Stencil
		C  *mat.Dense
	)
	if st, err = StencilFor(ss); err != nil {
		return
	}
	if ss == 3 {
		if err = a.checkManifold(F); err != nil {
			return
		}
	}
	if C, err = a.provider.CotmatrixEntries(V, F); err != nil {
		err = fmt.Errorf("unable to compute cotangent entries: %w", err)
		return
	}
	if nr, nc := C.Dims(); nr != m || nc != st.NumCotangents() {
		err = fmt.Errorf("%w: cotangent entries are %dx%d, expected %dx%d",
			ErrInvalidInput, nr, nc, m, st.NumCotangents())
		return
	}
	var (
		pm    = utils.NewPartitionMap(a.ParallelDegree, m)
		NPar  = pm.ParallelDegree
		parts = make([]*utils.Triplets, NPar)
	)
	if NPar == 1 {
		parts[0] = utils.NewTriplets(st.Len() * m)
		err = st.Scatter(C, EMAP, m, 0, m, parts[0])
	} else {
		var g errgroup.Group
		for np := 0; np < NPar; np++ {
			g.Go(func() error {
				kMin, kMax := pm.GetBucketRange(np)
				parts[np] = utils.NewTriplets(st.Len() * pm.GetBucketDimension(np))
				return st.Scatter(C, EMAP, m, kMin, kMax, parts[np])
			})
		}
		err = g.Wait()
	}
	if err != nil {
		return
	}
	// Buckets are contiguous and merged in order, so the summation order matches a serial assembly
	LIJV := parts[0]
	for np := 1; np < NPar; np++ {
		LIJV.Append(parts[np])
	}
	if L, err = LIJV.ToCSR(nE, nE); err != nil {
		err = fmt.Errorf("%w: %v", ErrInvalidInput, err)
		return nil, err
	}
	a.logger.Debug("assembled Crouzeix-Raviart Laplacian",
		zap.Int("elements", m),
		zap.Int("simplexSize", ss),
		zap.Int("facets", nE),
		zap.Int("triplets", LIJV.Len()),
		zap.Int("nnz", L.NNZ()),
		zap.Int("parallelDegree", NPar),
	)
	return
}

func (a *Assembler) checkManifold(F [][]int) (err error) {
	if a.ManifoldCheck == ManifoldSkip || a.checker.IsEdgeManifold(F) {
		return
	}
	edges := mesh.NonManifoldEdges(F)
	if len(edges) > maxReported {
		edges = edges[:maxReported]
	}
	if a.ManifoldCheck == ManifoldWarn {
		a.logger.Warn("triangle mesh is not edge-manifold, the Laplacian is undefined on these edges",
			zap.Any("edges", edges))
		return
	}
	return fmt.Errorf("%w: edges shared by more than two triangles include %v", ErrNotEdgeManifold, edges)
}

// validateElements checks V and F and returns the simplex size
func (a *Assembler) validateElements(V mat.Matrix, F [][]int) (ss int, err error) {
	if ss, err = mesh.SimplexSize(F); err != nil {
		if len(F) == 0 {
			err = fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return
	}
	if V == nil {
		err = fmt.Errorf("%w: no vertex positions", ErrInvalidInput)
		return 0, err
	}
	n, d := V.Dims()
	if d != 2 && d != 3 {
		err = fmt.Errorf("%w: vertex dimension %d, must be 2 or 3", ErrInvalidInput, d)
		return
	}
	var reported int
	for f, elem := range F {
		for _, v := range elem {
			if v < 0 || v >= n {
				if reported < maxReported {
					err = multierr.Append(err, fmt.Errorf("%w: element %d references vertex %d, have %d vertices",
						ErrInvalidInput, f, v, n))
				}
				reported++
			}
		}
	}
	if reported > maxReported {
		err = multierr.Append(err, fmt.Errorf("%w: %d more invalid vertex references",
			ErrInvalidInput, reported-maxReported))
	}
	return
}

func validateFacetMap(m, ss int, E [][]int, EMAP []int) (err error) {
	if len(EMAP) != m*ss {
		return fmt.Errorf("%w: facet map has %d entries, expected %d", ErrInvalidInput, len(EMAP), m*ss)
	}
	for u, facet := range E {
		if len(facet) != ss-1 {
			return fmt.Errorf("%w: facet %d has %d vertices, expected %d", ErrInvalidInput, u, len(facet), ss-1)
		}
	}
	var reported int
	for k, e := range EMAP {
		if e < 0 || e >= len(E) {
			if reported < maxReported {
				err = multierr.Append(err, fmt.Errorf("%w: facet map entry %d is %d, have %d facets",
					ErrInvalidInput, k, e, len(E)))
			}
			reported++
		}
	}
	if reported > maxReported {
		err = multierr.Append(err, fmt.Errorf("%w: %d more invalid facet map entries",
			ErrInvalidInput, reported-maxReported))
	}
	return
}

// validateFacetSets checks that every element facet and the facet it maps to have the same vertices
func validateFacetSets(F [][]int, E [][]int, EMAP []int) (err error) {
	var (
		oriented [][]int
		reported int
	)
	if oriented, err = mesh.OrientedFacets(F); err != nil {
		return
	}
	m := len(F)
	for k, facet := range oriented {
		if !sameVertexSet(facet, E[EMAP[k]]) {
			if reported < maxReported {
				err = multierr.Append(err, fmt.Errorf("%w: local facet %d of element %d is %v, mapped to facet %d %v",
					ErrInvalidInput, k/m, k%m, facet, EMAP[k], E[EMAP[k]]))
			}
			reported++
		}
	}
	if reported > maxReported {
		err = multierr.Append(err, fmt.Errorf("%w: %d more inconsistent facet map entries",
			ErrInvalidInput, reported-maxReported))
	}
	return
}

func sameVertexSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	sa, sb := append([]int(nil), a...), append([]int(nil), b...)
	sort.Ints(sa)
	sort.Ints(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			return false
		}
	}
	return true
}
