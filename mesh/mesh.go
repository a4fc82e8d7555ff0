package mesh

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/floats"
)

// Mesh is a triangular surface mesh with dense, 1-based node and element ids.
// Vertices[i] holds node i+1, EtoV[k] holds element k+1.
type Mesh struct {
	Header string // Free text label carried from the source file

	// Geometry
	Vertices [][3]float64 // Vertex coordinates [nvertices][3]

	// Element to vertex connectivity, 1-based vertex ids, order is orientation
	EtoV [][3]int

	// Mesh statistics
	NumElements int
	NumVertices int
}

// NewMesh allocates storage for a mesh of the given size
func NewMesh(header string, numVertices, numElements int) *Mesh {
	return &Mesh{
		Header:      header,
		Vertices:    make([][3]float64, numVertices),
		EtoV:        make([][3]int, numElements),
		NumVertices: numVertices,
		NumElements: numElements,
	}
}

// Vertex returns the coordinates of the 1-based node id
func (m *Mesh) Vertex(id int) [3]float64 {
	return m.Vertices[id-1]
}

// Element returns the vertices of the 1-based element id
func (m *Mesh) Element(id int) [3]int {
	return m.EtoV[id-1]
}

// Validate checks that the counts agree with the storage and that every element
// references an existing node
func (m *Mesh) Validate() error {
	if len(m.Vertices) != m.NumVertices {
		return fmt.Errorf("vertex count %d does not match storage %d", m.NumVertices, len(m.Vertices))
	}
	if len(m.EtoV) != m.NumElements {
		return fmt.Errorf("element count %d does not match storage %d", m.NumElements, len(m.EtoV))
	}
	for k, verts := range m.EtoV {
		for _, v := range verts {
			if v < 1 || v > m.NumVertices {
				return fmt.Errorf("element %d references node %d, valid range is [1,%d]",
					k+1, v, m.NumVertices)
			}
		}
	}
	return nil
}

// Statistics summarizes mesh size and extent
type Statistics struct {
	NumVertices, NumElements int
	XMin, XMax               float64
	YMin, YMax               float64
}

func (m *Mesh) Statistics() (st Statistics) {
	st.NumVertices, st.NumElements = m.NumVertices, m.NumElements
	if m.NumVertices == 0 {
		return
	}
	xs, ys := make([]float64, m.NumVertices), make([]float64, m.NumVertices)
	for i, v := range m.Vertices {
		xs[i], ys[i] = v[0], v[1]
	}
	st.XMin, st.XMax = floats.Min(xs), floats.Max(xs)
	st.YMin, st.YMax = floats.Min(ys), floats.Max(ys)
	return
}

func (st Statistics) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("vertices", st.NumVertices),
		slog.Int("elements", st.NumElements),
		slog.String("x_range", fmt.Sprintf("[%g, %g]", st.XMin, st.XMax)),
		slog.String("y_range", fmt.Sprintf("[%g, %g]", st.YMin, st.YMax)),
	)
}
