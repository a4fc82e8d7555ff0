package adcirc

import (
	"bufio"
	"fmt"
	"io"
)

const ControlFile = "fort.015"

// ControlParams are the subdomain control settings read by the ADCIRC subdomain
// modeling driver
type ControlParams struct {
	NOUTGS    int // Full domain output of the boundary conditions, 0 for a subdomain run
	NSPOOLGS  int // Time steps between boundary condition records
	EnforceBN int // Boundary condition type enforced on the subdomain ring
	NCBNR     int
}

// DefaultControlParams returns the settings of a subdomain run with type 1
// boundary conditions
func DefaultControlParams() ControlParams {
	return ControlParams{EnforceBN: 1}
}

func WriteControlFile(w io.Writer, c ControlParams) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\t!NOUTGS\n", c.NOUTGS)
	fmt.Fprintf(bw, "%d\t!NSPOOLGS\n", c.NSPOOLGS)
	fmt.Fprintf(bw, "%d\t!enforceBN\n", c.EnforceBN)
	fmt.Fprintf(bw, "%d\t!ncbnr\n", c.NCBNR)
	return bw.Flush()
}
