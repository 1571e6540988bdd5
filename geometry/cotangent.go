package geometry

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/kabukunz/libigl-legacy/utils"
)

var (
	// ErrDegenerate is returned for elements with (numerically) zero area or volume
	ErrDegenerate = errors.New("degenerate element")
	// ErrInvalidGeometry is returned for unusable vertex arrays or vertex indices
	ErrInvalidGeometry = errors.New("invalid geometry")
)

// CotangentProvider computes one cotangent weight per local edge of every element
type CotangentProvider interface {
	CotmatrixEntries(V mat.Matrix, F [][]int) (*mat.Dense, error)
}

/*
Column conventions of the cotangent entries, by local vertex pair.
Triangle column e holds half the cotangent of the angle at local vertex e, which is opposite the edge
TriangleEdges[e]. Tetrahedron column e holds |l|*cot(theta)/6 for the edge l = tetOpposite[e], which is opposite
the pair TetrahedronEdges[e], theta being the interior dihedral angle at l.
*/
var (
	TriangleEdges    = [3][2]int{{1, 2}, {2, 0}, {0, 1}}
	TetrahedronEdges = [6][2]int{{1, 2}, {2, 0}, {0, 1}, {3, 0}, {3, 1}, {3, 2}}
	tetOpposite      = [6][2]int{{3, 0}, {3, 1}, {3, 2}, {1, 2}, {2, 0}, {0, 1}}
)

// Points converts the rows of an n x 2 or n x 3 matrix into 3D points, planar points having Z = 0
func Points(V mat.Matrix) (P []r3.Vec, err error) {
	n, d := V.Dims()
	if d != 2 && d != 3 {
		err = fmt.Errorf("%w: vertex dimension %d, must be 2 or 3", ErrInvalidGeometry, d)
		return
	}
	P = make([]r3.Vec, n)
	for i := range P {
		P[i].X, P[i].Y = V.At(i, 0), V.At(i, 1)
		if d == 3 {
			P[i].Z = V.At(i, 2)
		}
	}
	return
}

// CotmatrixEntries returns the m x 3 (triangles) or m x 6 (tetrahedra) cotangent entries of F
func CotmatrixEntries(V mat.Matrix, F [][]int) (C *mat.Dense, err error) {
	var (
		P  []r3.Vec
		m  = len(F)
		ss int
		nc int
	)
	if P, err = Points(V); err != nil {
		return
	}
	if m == 0 {
		err = fmt.Errorf("%w: no elements", ErrInvalidGeometry)
		return
	}
	switch ss = len(F[0]); ss {
	case 3:
		nc = 3
	case 4:
		nc = 6
	default:
		err = fmt.Errorf("%w: simplex size %d", ErrInvalidGeometry, ss)
		return
	}
	C = mat.NewDense(m, nc, nil)
	for f, elem := range F {
		if len(elem) != ss {
			return nil, fmt.Errorf("%w: element %d has %d vertices, expected %d",
				ErrInvalidGeometry, f, len(elem), ss)
		}
		for _, v := range elem {
			if v < 0 || v >= len(P) {
				return nil, fmt.Errorf("%w: element %d references vertex %d of %d",
					ErrInvalidGeometry, f, v, len(P))
			}
		}
		row := C.RawRowView(f)
		if ss == 3 {
			err = triangleEntries(P, elem, row)
		} else {
			err = tetrahedronEntries(P, elem, row)
		}
		if err != nil {
			return nil, fmt.Errorf("element %d %v: %w", f, elem, err)
		}
	}
	return
}

func triangleEntries(P []r3.Vec, elem []int, row []float64) error {
	for e, edge := range TriangleEdges {
		apex := P[elem[e]]
		u := r3.Sub(P[elem[edge[0]]], apex)
		w := r3.Sub(P[elem[edge[1]]], apex)
		dblA := r3.Norm(r3.Cross(u, w))
		if dblA <= utils.NODETOL*r3.Norm(u)*r3.Norm(w) {
			return ErrDegenerate
		}
		row[e] = 0.5 * r3.Dot(u, w) / dblA
	}
	return nil
}

func tetrahedronEntries(P []r3.Vec, elem []int, row []float64) error {
	for e, pair := range TetrahedronEdges {
		var (
			base = P[elem[tetOpposite[e][0]]]
			l    = r3.Sub(P[elem[tetOpposite[e][1]]], base)
			// Face normals share the hinge l, so their angle is the dihedral angle at l
			n1 = r3.Cross(l, r3.Sub(P[elem[pair[0]]], base))
			n2 = r3.Cross(l, r3.Sub(P[elem[pair[1]]], base))
		)
		sinScaled := r3.Norm(r3.Cross(n1, n2))
		if sinScaled <= utils.NODETOL*r3.Norm(n1)*r3.Norm(n2) {
			return ErrDegenerate
		}
		row[e] = r3.Norm(l) * r3.Dot(n1, n2) / sinScaled / 6.
	}
	return nil
}

// DefaultProvider implements CotangentProvider with CotmatrixEntries
type DefaultProvider struct{}

func (DefaultProvider) CotmatrixEntries(V mat.Matrix, F [][]int) (*mat.Dense, error) {
	return CotmatrixEntries(V, F)
}
