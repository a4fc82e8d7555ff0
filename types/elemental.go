package types

import (
	"fmt"
	"math"
)

/*
EdgeKey is an always positive number that stores an edge's vertices as indices in a way that can be compared
An edge between vertices [4] and [1] will always be stored as [1,4], in the ascending order of the index values
*/
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (packed EdgeKey) {
	// Two 32 bit unsigned integers packed into one, lower index in the low word
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
	packed = EdgeKey(i1 + i2<<32)
	return
}

func (ek EdgeKey) GetVertices() (verts [2]int) {
	var (
		enTmp EdgeKey
	)
	enTmp = ek >> 32
	verts[1] = int(enTmp)
	verts[0] = int(ek - enTmp*(1<<32))
	return
}

// EdgeCounts tallies how many triangles own each edge
type EdgeCounts map[EdgeKey]int

func NewEdgeCounts(triangles [][3]int) (ec EdgeCounts) {
	ec = make(EdgeCounts, 3*len(triangles)/2+1)
	for _, tri := range triangles {
		ec.AddTriangle(tri)
	}
	return
}

func (ec EdgeCounts) AddTriangle(tri [3]int) {
	for i := 0; i < 3; i++ {
		ec[NewEdgeKey([2]int{tri[i], tri[(i+1)%3]})]++
	}
}

// Count returns the number of triangles sharing the edge between a and b
func (ec EdgeCounts) Count(a, b int) int {
	return ec[NewEdgeKey([2]int{a, b})]
}

// FreeVertices marks every vertex touching an edge owned by exactly one triangle.
// The result is indexed by vertex id and sized numVerts+1.
func (ec EdgeCounts) FreeVertices(numVerts int) (free []bool) {
	free = make([]bool, numVerts+1)
	for ek, count := range ec {
		if count != 1 {
			continue
		}
		verts := ek.GetVertices()
		free[verts[0]], free[verts[1]] = true, true
	}
	return
}
