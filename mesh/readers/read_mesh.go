package readers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/notargets/subdomain/mesh"
)

// ReadMeshFile reads a mesh file based on name and extension
func ReadMeshFile(filename string) (*mesh.Mesh, error) {
	base := strings.ToLower(filepath.Base(filename))
	ext := filepath.Ext(base)

	switch {
	case base == "fort.14", ext == ".14", ext == ".grd":
		return ReadFort14(filename)
	case ext == ".su2":
		return ReadSU2(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", filename)
	}
}
