package types

import (
	"fmt"
	"math"
)

/*
EdgeKey is an always positive number that stores an edge's vertices as indices in a way that can be compared
An edge between vertices [4] and [0] will always be stored as [0,4], in the ascending order of the index values.
The lower index is packed into the high word, so that ordering keys numerically orders edges lexicographically
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	var (
		limit = math.MaxUint32
	)
	for _, vert := range verts {
		if vert < 0 || vert > limit {
			panic(fmt.Errorf("unable to pack two ints into a uint64, have %d and %d as inputs",
				verts[0], verts[1]))
		}
	}
	var i1, i2 int
	if verts[0] <= verts[1] {
		i1, i2 = verts[0], verts[1]
	} else {
		i1, i2 = verts[1], verts[0]
	}
	packed = EdgeKey(uint64(i1)<<32 + uint64(i2))
	return
}

func (ek EdgeKey) GetVertices() (verts [2]int) {
	verts[0] = int(ek >> 32)
	verts[1] = int(ek & math.MaxUint32)
	return
}

/*
FaceKey stores a triangular face's vertex indices in ascending order, so that all traversals of the same
three vertices compare equal. Keys compare lexicographically with Less
*/
type FaceKey [3]int

func NewFaceKey(verts [3]int) (fk FaceKey) {
	for _, vert := range verts {
		if vert < 0 {
			panic(fmt.Errorf("negative vertex index in face %v", verts))
		}
	}
	fk = FaceKey(verts)
	// Three element sorting network
	if fk[0] > fk[1] {
		fk[0], fk[1] = fk[1], fk[0]
	}
	if fk[1] > fk[2] {
		fk[1], fk[2] = fk[2], fk[1]
	}
	if fk[0] > fk[1] {
		fk[0], fk[1] = fk[1], fk[0]
	}
	return
}

func (fk FaceKey) Less(other FaceKey) bool {
	for i := 0; i < 3; i++ {
		if fk[i] != other[i] {
			return fk[i] < other[i]
		}
	}
	return false
}

func (fk FaceKey) GetVertices() [3]int { return fk }
