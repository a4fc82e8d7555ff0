package writers

import (
	"bufio"
	"fmt"
	"io"
)

// WriteMapping writes a label line followed by one "subID fullID" line for every
// entry of subToFull after the unused index 0
func WriteMapping(w io.Writer, label string, subToFull []int) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, label)
	for s := 1; s < len(subToFull); s++ {
		fmt.Fprintf(bw, "%d %d\n", s, subToFull[s])
	}
	return bw.Flush()
}
