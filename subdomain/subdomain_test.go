package subdomain

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/notargets/subdomain/geometry2D"
	"github.com/notargets/subdomain/mesh"
	"github.com/notargets/subdomain/types"
)

func circle(t *testing.T, x, y, r float64) geometry2D.Shape {
	t.Helper()
	c, err := geometry2D.NewCircle(r2.Vec{X: x, Y: y}, r)
	require.NoError(t, err)
	return c
}

func ellipse(t *testing.T, x, y, a, b, theta float64) geometry2D.Shape {
	t.Helper()
	e, err := geometry2D.NewEllipse(r2.Vec{X: x, Y: y}, a, b, theta)
	require.NoError(t, err)
	return e
}

// checkInvariants tests the subdomain against the full mesh it was cut from
func checkInvariants(t *testing.T, full *mesh.Mesh, sd *Subdomain) {
	t.Helper()
	n := sd.NumNodes()
	for s := 1; s <= n; s++ {
		require.Equal(t, s, sd.FullToSub[sd.SubToFull[s]])
		assert.Equal(t, full.Vertex(sd.SubToFull[s]), sd.Mesh.Vertex(s))
	}
	for f := 1; f <= full.NumVertices; f++ {
		if s := sd.FullToSub[f]; s != 0 {
			require.Equal(t, f, sd.SubToFull[s])
		}
	}
	for k, tri := range sd.Mesh.EtoV {
		fullTri := full.Element(sd.SubToFullElement[k+1])
		for i, v := range tri {
			require.True(t, v >= 1 && v <= n)
			// Vertex order survives the renumbering
			assert.Equal(t, fullTri[i], sd.SubToFull[v])
		}
	}

	ring := sd.BoundaryRing
	require.Len(t, ring, len(sd.BoundaryNodes))
	sorted := slices.Clone(ring)
	slices.Sort(sorted)
	assert.Equal(t, sd.BoundaryNodes, sorted)

	edges := types.NewEdgeCounts(sd.Mesh.EtoV)
	for i, v := range ring {
		next := ring[(i+1)%len(ring)]
		assert.Equal(t, 1, edges.Count(v, next), "ring edge %d-%d", v, next)
	}
}

func TestExtractUnitSquareEnclosed(t *testing.T) {
	full := mesh.NewUnitSquare()
	sd, err := Extract(full, circle(t, 0.5, 0.5, 2), nil)
	require.NoError(t, err)

	assert.Equal(t, 4, sd.Mesh.NumVertices)
	assert.Equal(t, 2, sd.Mesh.NumElements)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, sd.SubToFull)
	assert.Equal(t, []int{0, 1, 2}, sd.SubToFullElement)
	assert.Equal(t, []int{1, 2, 3, 4}, sd.BoundaryRing)
	assert.Equal(t, full.Header, sd.Mesh.Header)
	checkInvariants(t, full, sd)
}

func TestExtractWholeGrid(t *testing.T) {
	tests := []struct {
		n    int
		ring []int
	}{
		{3, []int{1, 2, 3, 6, 9, 8, 7, 4}},
		{4, []int{1, 2, 3, 4, 8, 12, 16, 15, 14, 13, 9, 5}},
	}
	for _, tt := range tests {
		full := mesh.NewRegularGrid(tt.n)
		sd, err := Extract(full, circle(t, 0, 0, 100), nil)
		require.NoError(t, err)
		assert.Equal(t, tt.ring, sd.BoundaryRing)
		checkInvariants(t, full, sd)
	}
}

func TestExtractCircleCut(t *testing.T) {
	full := mesh.NewRegularGrid(10)
	sd, err := Extract(full, circle(t, 4.5, 4.5, 3.2), nil)
	require.NoError(t, err)

	assert.Equal(t, 32, sd.Mesh.NumVertices)
	assert.Equal(t, 44, sd.Mesh.NumElements)
	assert.Equal(t, []int{0, 24, 25, 26, 27, 33}, sd.SubToFull[:6])
	assert.Equal(t, [3]int{1, 2, 7}, sd.Mesh.Element(1))
	assert.Equal(t, [3]int{1, 7, 6}, sd.Mesh.Element(2))
	assert.Equal(t,
		[]int{1, 2, 3, 4, 10, 16, 22, 28, 27, 32, 31, 30, 29, 23, 17, 11, 5, 6},
		sd.BoundaryRing)
	checkInvariants(t, full, sd)

	// Ring length equals the number of distinct retained nodes on straddling elements
	straddling := make(map[int]bool)
	for _, tri := range full.EtoV {
		inside := 0
		for _, v := range tri {
			if sd.Retained(v) {
				inside++
			}
		}
		if inside == 1 || inside == 2 {
			for _, v := range tri {
				if sd.Retained(v) {
					straddling[v] = true
				}
			}
		}
	}
	assert.Len(t, sd.BoundaryRing, len(straddling))
}

func TestExtractShapes(t *testing.T) {
	tests := []struct {
		name                      string
		shape                     geometry2D.Shape
		nodes, elements, boundary int
	}{
		{"offset circle", circle(t, 4.3, 4.6, 3.5), 38, 53, 21},
		{"small circle", circle(t, 4.5, 4.5, 2.5), 16, 18, 12},
		{"circle through nodes", circle(t, 4, 4, 3), 25, 32, 16},
		{"ellipse", ellipse(t, 4.5, 4.5, 4, 2.5, 0), 28, 36, 18},
		{"rotated ellipse", ellipse(t, 4.5, 4.5, 2.5, 4, 1.5707963267948966), 28, 36, 18},
		{"diagonal ellipse", ellipse(t, 4.5, 4.5, 4, 2.5, 0.7853981633974483), 30, 42, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			full := mesh.NewRegularGrid(10)
			sd, err := Extract(full, tt.shape, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.nodes, sd.Mesh.NumVertices)
			assert.Equal(t, tt.elements, sd.Mesh.NumElements)
			assert.Len(t, sd.BoundaryRing, tt.boundary)
			checkInvariants(t, full, sd)
		})
	}
}

func TestEllipseMatchesCircle(t *testing.T) {
	full := mesh.NewRegularGrid(10)
	fromCircle, err := Extract(full, circle(t, 4.5, 4.5, 3.2), nil)
	require.NoError(t, err)
	fromEllipse, err := Extract(full, ellipse(t, 4.5, 4.5, 3.2, 3.2, 0), nil)
	require.NoError(t, err)

	assert.Equal(t, fromCircle.NodeMap, fromEllipse.NodeMap)
	assert.Equal(t, fromCircle.SubToFullElement, fromEllipse.SubToFullElement)
	assert.Equal(t, fromCircle.BoundaryRing, fromEllipse.BoundaryRing)
}

func TestExtractDegenerate(t *testing.T) {
	full := mesh.NewRegularGrid(10)

	// No nodes
	_, err := Extract(full, circle(t, 4.5, 4.5, 0), nil)
	assert.ErrorIs(t, err, ErrDegenerateSelection)

	// A single node and no elements
	_, err = Extract(full, circle(t, 4, 4, 0.5), nil)
	assert.ErrorIs(t, err, ErrDegenerateSelection)

	_, err = Extract(full, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidShape)
}

func TestExtractTopologyFailure(t *testing.T) {
	tests := []struct {
		name  string
		shape geometry2D.Shape
	}{
		// The cut boundary runs into the outer boundary of the grid, so the walk
		// visits every node but the loop does not close
		{"loop does not close", circle(t, 0, 4.5, 3.2)},
		// The walk stops with boundary nodes left over
		{"walk stuck", circle(t, 0.2, 4.5, 2.6)},
		// A single cell on the y = 0 edge closes into a ring, but its bottom edge
		// belongs to the outer boundary of the grid
		{"ring on the outer boundary", circle(t, 4.5, 0, 1.2)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sd, err := Extract(mesh.NewRegularGrid(10), tt.shape, nil)
			assert.Nil(t, sd)
			require.ErrorIs(t, err, ErrTopology)
			var topoErr *TopologyError
			require.True(t, errors.As(err, &topoErr))
			assert.NotEmpty(t, topoErr.Ring)
		})
	}
}

func TestExtractLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Extract(mesh.NewUnitSquare(), circle(t, 0.5, 0.5, 2), logger)
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "msg=\"extracted subdomain\" nodes=4 elements=2 boundary_nodes=4")
}

func TestWriteFiles(t *testing.T) {
	full := mesh.NewRegularGrid(10)
	shape := circle(t, 4.5, 4.5, 3.2)

	var dirs []string
	for i := 0; i < 2; i++ {
		sd, err := Extract(full, shape, nil)
		require.NoError(t, err)
		dir := t.TempDir()
		require.NoError(t, sd.WriteFiles(dir))
		dirs = append(dirs, dir)
	}

	for _, name := range []string{MeshFile, NodeMappingFile, ElementMappingFile} {
		first, err := os.ReadFile(filepath.Join(dirs[0], name))
		require.NoError(t, err)
		second, err := os.ReadFile(filepath.Join(dirs[1], name))
		require.NoError(t, err)
		assert.Equal(t, first, second, "%s differs between runs", name)
	}

	fort14, err := os.ReadFile(filepath.Join(dirs[0], MeshFile))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(fort14), "regular grid\n44 32\n"))
	assert.Contains(t, string(fort14), "\n19\t!no. of subdomain boundary nodes\n19\n1\n2\n3\n4\n10\n")
	assert.True(t, strings.HasSuffix(string(fort14), "\n6\n1\n0\t!no. of land boundary segments\n0\t!no. of land boundary nodes"))

	py140, err := os.ReadFile(filepath.Join(dirs[0], NodeMappingFile))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(py140)), "\n")
	assert.Equal(t, "Nodal mapping from sub to full", lines[0])
	assert.Len(t, lines, 33)
	assert.Equal(t, "1 24", lines[1])
	assert.Equal(t, "32 77", lines[32])

	py141, err := os.ReadFile(filepath.Join(dirs[0], ElementMappingFile))
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(string(py141)), "\n"), 45)
}

func TestVerifyDetectsBrokenRing(t *testing.T) {
	sd, err := Extract(mesh.NewUnitSquare(), circle(t, 0.5, 0.5, 2), nil)
	require.NoError(t, err)

	sd.BoundaryRing = []int{1, 3, 2, 4}
	assert.ErrorIs(t, sd.Verify(), ErrTopology)

	sd.BoundaryRing = []int{1, 2, 3}
	assert.ErrorIs(t, sd.Verify(), ErrTopology)

	sd.BoundaryRing = []int{1, 2, 3, 4}
	sd.SubToFull[2], sd.SubToFull[3] = sd.SubToFull[3], sd.SubToFull[2]
	assert.Error(t, sd.Verify())
}
