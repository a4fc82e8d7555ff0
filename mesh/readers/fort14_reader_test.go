package readers

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unitSquareFort14 = `unit square test grid
2 4
1 0.0 0.0 -5.0
2 1.0 0.0 -5.5
3 1.0 1.0 -6.0
4 0.0 1.0 -6.5
1 3 1 2 3
2 3 1 3 4
0 = Number of open boundaries
0 = Total number of open boundary nodes
`

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadFort14(t *testing.T) {
	path := writeTempFile(t, "fort.14", unitSquareFort14)

	msh, err := ReadMeshFile(path)
	require.NoError(t, err)

	assert.Equal(t, "unit square test grid", msh.Header)
	assert.Equal(t, 4, msh.NumVertices)
	assert.Equal(t, 2, msh.NumElements)
	assert.Equal(t, [3]float64{1, 1, -6}, msh.Vertex(3))
	assert.Equal(t, [3]int{1, 3, 4}, msh.Element(2))
}

func TestParseFort14Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"empty", "", "missing header line"},
		{"no counts", "header\n", "missing element and node counts"},
		{"bad counts", "header\nx 4\n", "invalid element and node counts"},
		{"short node list", "header\n1 3\n1 0 0 0\n2 1 0 0\n", "unexpected EOF reading node 3 of 3"},
		{"sparse node ids", "header\n0 2\n1 0 0 0\n3 1 0 0\n", "node ids must be dense from 1"},
		{"bad coordinate", "header\n0 1\n1 0 zero 0\n", "invalid coordinate"},
		{"quad element", "header\n1 4\n1 0 0 0\n2 1 0 0\n3 1 1 0\n4 0 1 0\n1 4 1 2 3 4\n",
			"only triangles are supported"},
		{"missing node", "header\n1 3\n1 0 0 0\n2 1 0 0\n3 1 1 0\n1 3 1 2 9\n",
			"element 1 references node 9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFort14(strings.NewReader(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestReadMeshFileDispatch(t *testing.T) {
	_, err := ReadMeshFile(filepath.Join(t.TempDir(), "grid.vtk"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported mesh format")

	_, err = ReadMeshFile(filepath.Join(t.TempDir(), "fort.14"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))

	path := writeTempFile(t, "coast.grd", unitSquareFort14)
	msh, err := ReadMeshFile(path)
	require.NoError(t, err)
	assert.Equal(t, 4, msh.NumVertices)
}
