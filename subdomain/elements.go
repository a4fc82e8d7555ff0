package subdomain

import (
	"github.com/notargets/subdomain/mesh"
)

// ElementMap holds the elements whose three vertices are retained, renumbered to
// subdomain ids, and the retained nodes cut off by the shape
type ElementMap struct {
	EtoV       [][3]int // Retained elements in subdomain node ids, original vertex order
	SubToFull  []int    // [retained element count + 1], index 0 unused
	IsBoundary []bool   // [subdomain node count + 1], true for nodes of straddling elements
}

func (em ElementMap) NumElements() int {
	return len(em.EtoV)
}

// ClassifyElements keeps every full mesh element with all three vertices retained.
// An element with one or two retained vertices straddles the shape boundary and
// marks those vertices as boundary nodes.
func ClassifyElements(full *mesh.Mesh, nm NodeMap) (em ElementMap) {
	em.SubToFull = []int{0}
	em.IsBoundary = make([]bool, nm.NumNodes()+1)
	for k, verts := range full.EtoV {
		var (
			sub    [3]int
			inside int
		)
		for i, v := range verts {
			sub[i] = nm.FullToSub[v]
			if sub[i] != 0 {
				inside++
			}
		}
		switch inside {
		case 3:
			em.EtoV = append(em.EtoV, sub)
			em.SubToFull = append(em.SubToFull, k+1)
		case 1, 2:
			for _, s := range sub {
				if s != 0 {
					em.IsBoundary[s] = true
				}
			}
		}
	}
	return
}

// nodeList returns the ids flagged in mask, ascending
func nodeList(mask []bool) (nodes []int) {
	for id, flagged := range mask {
		if flagged {
			nodes = append(nodes, id)
		}
	}
	return
}
