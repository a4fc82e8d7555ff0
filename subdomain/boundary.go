package subdomain

import (
	"fmt"
	"slices"

	"github.com/notargets/subdomain/types"
)

// Incidence holds, for every boundary node, the retained elements touching it and
// the other vertices of those elements. Rows are indexed by subdomain node id and
// sorted ascending, rows of interior nodes are empty.
type Incidence struct {
	Elements  [][]int
	Neighbors [][]int
}

func BuildIncidence(etov [][3]int, numNodes int, boundary []bool) (inc Incidence) {
	inc.Elements = make([][]int, numNodes+1)
	inc.Neighbors = make([][]int, numNodes+1)
	for k, tri := range etov {
		for i, v := range tri {
			if !boundary[v] {
				continue
			}
			inc.Elements[v] = append(inc.Elements[v], k+1)
			inc.Neighbors[v] = append(inc.Neighbors[v], tri[(i+1)%3], tri[(i+2)%3])
		}
	}
	for v, nbrs := range inc.Neighbors {
		slices.Sort(nbrs)
		inc.Neighbors[v] = slices.Compact(nbrs)
	}
	return
}

// sharedElements counts the retained elements incident to both a and b. An edge
// owned by exactly one retained element lies on the subdomain boundary, interior
// edges are owned by two.
func sharedElements(inc Incidence, a, b int) (count int) {
	ea, eb := inc.Elements[a], inc.Elements[b]
	for i, j := 0, 0; i < len(ea) && j < len(eb); {
		switch {
		case ea[i] < eb[j]:
			i++
		case ea[i] > eb[j]:
			j++
		default:
			count++
			i++
			j++
		}
	}
	return
}

// nextNode returns the lowest numbered unvisited boundary neighbor of tail joined
// to it by a boundary edge
func nextNode(inc Incidence, boundary, visited []bool, tail int) (int, bool) {
	for _, nbr := range inc.Neighbors[tail] {
		if !boundary[nbr] || visited[nbr] {
			continue
		}
		if sharedElements(inc, tail, nbr) == 1 {
			return nbr, true
		}
	}
	return 0, false
}

// OrderBoundary walks the boundary nodes into a closed loop starting from the
// lowest numbered one. boundary is indexed by subdomain node id and sized
// numNodes+1. The returned ring lists each boundary node once; the closing edge
// back to ring[0] is implied.
func OrderBoundary(etov [][3]int, numNodes int, boundary []bool) (ring []int, err error) {
	var (
		start, remaining int
	)
	for v := 1; v <= numNodes; v++ {
		if boundary[v] {
			if start == 0 {
				start = v
			}
			remaining++
		}
	}
	if remaining < 3 {
		return nil, &TopologyError{
			Reason:    fmt.Sprintf("a boundary loop needs at least 3 nodes, have %d", remaining),
			Remaining: remaining,
		}
	}
	total := remaining

	inc := BuildIncidence(etov, numNodes, boundary)
	visited := make([]bool, numNodes+1)

	ring = make([]int, 0, total)
	ring = append(ring, start)
	visited[start] = true
	remaining--

	for remaining > 0 {
		tail := ring[len(ring)-1]
		next, ok := nextNode(inc, boundary, visited, tail)
		if !ok {
			return nil, &TopologyError{
				Reason:    fmt.Sprintf("no unvisited boundary edge leaves node %d", tail),
				Ring:      ring,
				Remaining: remaining,
			}
		}
		ring = append(ring, next)
		visited[next] = true
		remaining--
	}

	if len(ring) != total {
		return nil, &TopologyError{
			Reason: fmt.Sprintf("ordered %d nodes out of %d", len(ring), total),
			Ring:   ring,
		}
	}
	last := ring[len(ring)-1]
	if shared := sharedElements(inc, last, start); shared != 1 {
		return nil, &TopologyError{
			Reason: fmt.Sprintf("loop does not close, nodes %d and %d share %d retained elements",
				last, start, shared),
			Ring: ring,
		}
	}
	return ring, nil
}

// FreeEdgeBoundary marks the nodes on edges owned by exactly one element. It
// bounds a selection that no element straddles, such as a shape enclosing the
// whole mesh.
func FreeEdgeBoundary(etov [][3]int, numNodes int) []bool {
	return types.NewEdgeCounts(etov).FreeVertices(numNodes)
}
