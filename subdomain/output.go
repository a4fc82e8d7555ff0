package subdomain

import (
	"io"
	"path/filepath"

	"github.com/notargets/subdomain/mesh/writers"
)

const (
	MeshFile           = "fort.14"
	NodeMappingFile    = "py.140"
	ElementMappingFile = "py.141"
)

// WriteFiles writes the subdomain grid and the node and element mappings to dir.
// Each file is written to a temporary name first, so a failure leaves no partial
// file behind under the final name.
func (sd *Subdomain) WriteFiles(dir string) error {
	outputs := []struct {
		name  string
		write func(w io.Writer) error
	}{
		{MeshFile, func(w io.Writer) error {
			return writers.WriteFort14(w, sd.Mesh, sd.BoundaryRing)
		}},
		{NodeMappingFile, func(w io.Writer) error {
			return writers.WriteMapping(w, "Nodal mapping from sub to full", sd.SubToFull)
		}},
		{ElementMappingFile, func(w io.Writer) error {
			return writers.WriteMapping(w, "Elemental mapping from sub to full", sd.SubToFullElement)
		}},
	}
	for _, out := range outputs {
		if err := writers.WriteFile(filepath.Join(dir, out.name), out.write); err != nil {
			return err
		}
	}
	return nil
}
