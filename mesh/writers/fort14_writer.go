package writers

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/notargets/subdomain/mesh"
)

// WriteFort14 writes m in ADCIRC fort.14 layout with a single open boundary
// segment following ring. The segment lists the ring and then repeats ring[0] to
// close it. No land boundaries are written.
func WriteFort14(w io.Writer, m *mesh.Mesh, ring []int) error {
	if len(ring) == 0 {
		return errors.New("an open boundary ring is required")
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%s\n", strings.TrimRight(m.Header, "\r\n"))
	fmt.Fprintf(bw, "%d %d\n", m.NumElements, m.NumVertices)
	for i, v := range m.Vertices {
		fmt.Fprintf(bw, "\t%d\t% .12f\t% .12f\t% .12f\n", i+1, v[0], v[1], v[2])
	}
	for k, tri := range m.EtoV {
		fmt.Fprintf(bw, "%d\t3\t%d\t%d\t%d\n", k+1, tri[0], tri[1], tri[2])
	}

	nbn := len(ring) + 1
	fmt.Fprintf(bw, "1\t!no. of subdomain boundary segments\n")
	fmt.Fprintf(bw, "%d\t!no. of subdomain boundary nodes\n", nbn)
	fmt.Fprintf(bw, "%d\n", nbn)
	for _, v := range ring {
		fmt.Fprintf(bw, "%d\n", v)
	}
	fmt.Fprintf(bw, "%d\n", ring[0])
	fmt.Fprintf(bw, "0\t!no. of land boundary segments\n0\t!no. of land boundary nodes")
	return bw.Flush()
}
