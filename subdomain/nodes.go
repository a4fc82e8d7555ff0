package subdomain

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/subdomain/geometry2D"
	"github.com/notargets/subdomain/mesh"
)

// NodeMap relates full mesh node ids to subdomain node ids. Both directions are
// dense arrays indexed by 1-based id: FullToSub[f] is zero for nodes outside the
// subdomain and SubToFull[0] is unused.
type NodeMap struct {
	FullToSub []int // [full node count + 1]
	SubToFull []int // [subdomain node count + 1]
}

// NumNodes is the number of retained nodes
func (nm NodeMap) NumNodes() int {
	return len(nm.SubToFull) - 1
}

// Retained reports whether the full mesh node is part of the subdomain
func (nm NodeMap) Retained(fullID int) bool {
	return nm.FullToSub[fullID] != 0
}

// ClassifyNodes numbers the nodes strictly inside shape in ascending full id order
// and returns their coordinates along with the mappings
func ClassifyNodes(full *mesh.Mesh, shape geometry2D.Shape) (vertices [][3]float64, nm NodeMap) {
	nm.FullToSub = make([]int, full.NumVertices+1)
	nm.SubToFull = []int{0}
	for i, v := range full.Vertices {
		if !shape.Contains(r2.Vec{X: v[0], Y: v[1]}) {
			continue
		}
		nm.SubToFull = append(nm.SubToFull, i+1)
		nm.FullToSub[i+1] = len(nm.SubToFull) - 1
		vertices = append(vertices, v)
	}
	return
}
