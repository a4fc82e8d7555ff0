package mesh

// Canned meshes shared by the tests of this module

// NewUnitSquare returns two counter-clockwise triangles covering [0,1]x[0,1]:
// nodes (0,0),(1,0),(1,1),(0,1) and elements 1-2-3, 1-3-4
func NewUnitSquare() *Mesh {
	m := NewMesh("unit square", 4, 2)
	m.Vertices[0] = [3]float64{0, 0, 0}
	m.Vertices[1] = [3]float64{1, 0, 0}
	m.Vertices[2] = [3]float64{1, 1, 0}
	m.Vertices[3] = [3]float64{0, 1, 0}
	m.EtoV[0] = [3]int{1, 2, 3}
	m.EtoV[1] = [3]int{1, 3, 4}
	return m
}

// NewRegularGrid returns an n x n node grid with unit spacing, node (i,j) at
// coordinate (i,j) with id j*n+i+1. Each cell is split along its lower-left to
// upper-right diagonal into two counter-clockwise triangles. The node depth is
// set to 10+id so that coordinates are distinguishable in written output.
func NewRegularGrid(n int) *Mesh {
	m := NewMesh("regular grid", n*n, 2*(n-1)*(n-1))
	id := func(i, j int) int { return j*n + i + 1 }
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			m.Vertices[id(i, j)-1] = [3]float64{float64(i), float64(j), float64(10 + id(i, j))}
		}
	}
	k := 0
	for j := 0; j < n-1; j++ {
		for i := 0; i < n-1; i++ {
			a, b, c, d := id(i, j), id(i+1, j), id(i+1, j+1), id(i, j+1)
			m.EtoV[k] = [3]int{a, b, c}
			m.EtoV[k+1] = [3]int{a, c, d}
			k += 2
		}
	}
	return m
}
