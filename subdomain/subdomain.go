package subdomain

import (
	"fmt"
	"log/slog"

	"github.com/notargets/subdomain/geometry2D"
	"github.com/notargets/subdomain/mesh"
	"github.com/notargets/subdomain/types"
)

// Subdomain is the part of a full mesh retained by a shape, renumbered densely
// from 1 in full mesh order, with the mappings back to the full mesh
type Subdomain struct {
	Mesh *mesh.Mesh // Retained nodes and elements in subdomain ids
	NodeMap
	SubToFullElement []int // [retained element count + 1], index 0 unused

	BoundaryNodes []int // Unordered boundary set, stored ascending
	BoundaryRing  []int // Boundary nodes in walk order, closing edge implied
}

// Extract cuts the subdomain selected by shape out of full. All work happens in
// memory, nothing is written. A nil logger discards log output.
func Extract(full *mesh.Mesh, shape geometry2D.Shape, logger *slog.Logger) (*Subdomain, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if shape == nil {
		return nil, fmt.Errorf("%w: no shape given", ErrInvalidShape)
	}

	vertices, nm := ClassifyNodes(full, shape)
	logger.Debug("classified nodes", "retained", nm.NumNodes(), "full", full.NumVertices)
	if nm.NumNodes() == 0 {
		return nil, fmt.Errorf("%w: the shape contains none of the %d full mesh nodes",
			ErrDegenerateSelection, full.NumVertices)
	}

	em := ClassifyElements(full, nm)
	boundary := em.IsBoundary
	boundaryNodes := nodeList(boundary)
	logger.Debug("classified elements", "retained", em.NumElements(), "full", full.NumElements,
		"boundary_nodes", len(boundaryNodes))
	if em.NumElements() == 0 {
		return nil, fmt.Errorf("%w: none of the %d full mesh elements lies inside the shape",
			ErrDegenerateSelection, full.NumElements)
	}

	enclosed := len(boundaryNodes) == 0
	if enclosed {
		logger.Warn("no element straddles the shape, bounding the subdomain by its free edges")
		boundary = FreeEdgeBoundary(em.EtoV, nm.NumNodes())
		boundaryNodes = nodeList(boundary)
	}

	ring, err := OrderBoundary(em.EtoV, nm.NumNodes(), boundary)
	if err != nil {
		return nil, err
	}
	if !enclosed {
		if err = checkOpenBoundary(full, ring, nm.SubToFull); err != nil {
			return nil, err
		}
	}

	sub := mesh.NewMesh(full.Header, nm.NumNodes(), em.NumElements())
	sub.Vertices, sub.EtoV = vertices, em.EtoV
	sd := &Subdomain{
		Mesh:             sub,
		NodeMap:          nm,
		SubToFullElement: em.SubToFull,
		BoundaryNodes:    boundaryNodes,
		BoundaryRing:     ring,
	}
	if err = sd.Verify(); err != nil {
		return nil, err
	}
	logger.Info("extracted subdomain",
		"nodes", sub.NumVertices, "elements", sub.NumElements, "boundary_nodes", len(ring))
	return sd, nil
}

// checkOpenBoundary rejects a ring running along the outer boundary of the full
// mesh. Every ring edge of a cut must be interior to the full mesh, owned there by
// two elements.
func checkOpenBoundary(full *mesh.Mesh, ring, subToFull []int) error {
	edges := types.NewEdgeCounts(full.EtoV)
	for i, v := range ring {
		next := ring[(i+1)%len(ring)]
		a, b := subToFull[v], subToFull[next]
		if edges.Count(a, b) == 1 {
			return &TopologyError{
				Reason: fmt.Sprintf("ring edge %d-%d lies on the outer boundary of the full mesh (nodes %d-%d)",
					v, next, a, b),
				Ring: ring,
			}
		}
	}
	return nil
}

// Verify checks the mapping, element and boundary ring invariants
func (sd *Subdomain) Verify() error {
	n := sd.NumNodes()
	if sd.Mesh.NumVertices != n {
		return fmt.Errorf("subdomain has %d vertices but maps %d nodes", sd.Mesh.NumVertices, n)
	}
	for s := 1; s <= n; s++ {
		if f := sd.SubToFull[s]; f < 1 || f >= len(sd.FullToSub) || sd.FullToSub[f] != s {
			return fmt.Errorf("node mappings disagree at subdomain node %d", s)
		}
	}
	if len(sd.SubToFullElement) != sd.Mesh.NumElements+1 {
		return fmt.Errorf("element mapping covers %d elements, have %d",
			len(sd.SubToFullElement)-1, sd.Mesh.NumElements)
	}
	if err := sd.Mesh.Validate(); err != nil {
		return err
	}

	if len(sd.BoundaryRing) != len(sd.BoundaryNodes) {
		return &TopologyError{
			Reason: fmt.Sprintf("ring has %d nodes, boundary set has %d",
				len(sd.BoundaryRing), len(sd.BoundaryNodes)),
			Ring: sd.BoundaryRing,
		}
	}
	inSet := make([]bool, n+1)
	for _, v := range sd.BoundaryNodes {
		inSet[v] = true
	}
	seen := make([]bool, n+1)
	edges := types.NewEdgeCounts(sd.Mesh.EtoV)
	for i, v := range sd.BoundaryRing {
		if v < 1 || v > n || !inSet[v] || seen[v] {
			return &TopologyError{
				Reason: fmt.Sprintf("ring entry %d (node %d) is repeated or not a boundary node", i, v),
				Ring:   sd.BoundaryRing,
			}
		}
		seen[v] = true
		next := sd.BoundaryRing[(i+1)%len(sd.BoundaryRing)]
		if count := edges.Count(v, next); count != 1 {
			return &TopologyError{
				Reason: fmt.Sprintf("ring edge %d-%d is owned by %d retained elements", v, next, count),
				Ring:   sd.BoundaryRing,
			}
		}
	}
	return nil
}
