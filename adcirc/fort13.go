package adcirc

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const NodalAttributesFile = "fort.13"

// ExtractNodalAttributes copies an ADCIRC nodal attribute file from r to w,
// keeping only the non default values of retained nodes. fullToSub maps full mesh
// node ids to subdomain ids, zero meaning not retained, and numSubNodes replaces
// the node count of the header. Kept entries stay in the order of the full file.
func ExtractNodalAttributes(r io.Reader, w io.Writer, fullToSub []int, numSubNodes int) error {
	var (
		sc  = newScanner(r)
		bw  = bufio.NewWriter(w)
		err error
	)
	copyLine := func(what string) (string, error) {
		line, err := sc.next(what)
		if err != nil {
			return "", err
		}
		fmt.Fprintln(bw, line)
		return line, nil
	}

	if _, err = copyLine("header"); err != nil {
		return err
	}
	if _, err = sc.next("node count"); err != nil {
		return err
	}
	fmt.Fprintln(bw, numSubNodes)

	numAttributes, err := sc.count("attribute count")
	if err != nil {
		return err
	}
	fmt.Fprintln(bw, numAttributes)

	// Name, units, values per node and default values of every attribute
	for i := 0; i < 4*numAttributes; i++ {
		if _, err = copyLine("attribute defaults"); err != nil {
			return err
		}
	}

	for a := 0; a < numAttributes; a++ {
		name, err := copyLine("attribute name")
		if err != nil {
			return err
		}
		name = strings.TrimSpace(name)
		n, err := sc.count("non default count of " + name)
		if err != nil {
			return err
		}
		var kept [][]string
		for i := 0; i < n; i++ {
			line, err := sc.next(fmt.Sprintf("%s value %d of %d", name, i+1, n))
			if err != nil {
				return err
			}
			fields := strings.Fields(line)
			if len(fields) < 2 {
				return sc.errorf("%s: expected node id and values, got %q", name, line)
			}
			full, err := strconv.Atoi(fields[0])
			if err != nil || full < 1 || full >= len(fullToSub) {
				return sc.errorf("%s: invalid node id %q", name, fields[0])
			}
			if sub := fullToSub[full]; sub != 0 {
				fields[0] = strconv.Itoa(sub)
				kept = append(kept, fields)
			}
		}
		fmt.Fprintln(bw, len(kept))
		for _, fields := range kept {
			fmt.Fprintf(bw, "%s\t\n", strings.Join(fields, "\t"))
		}
	}
	return bw.Flush()
}

// FilterNodalAttributesFile reads the full attribute file and returns the filtered
// subdomain content, so that a malformed file is detected before anything is written
func FilterNodalAttributesFile(fullFile string, fullToSub []int, numSubNodes int) ([]byte, error) {
	f, err := os.Open(fullFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var buf bytes.Buffer
	if err = ExtractNodalAttributes(f, &buf, fullToSub, numSubNodes); err != nil {
		return nil, fmt.Errorf("%s: %w", fullFile, err)
	}
	return buf.Bytes(), nil
}

type scanner struct {
	*bufio.Scanner
	lineNum int
}

func newScanner(r io.Reader) *scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	return &scanner{Scanner: sc}
}

func (sc *scanner) next(what string) (string, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return "", err
		}
		return "", fmt.Errorf("unexpected EOF reading %s: %w", what, io.ErrUnexpectedEOF)
	}
	sc.lineNum++
	return strings.TrimRight(sc.Text(), "\r"), nil
}

// count reads a line whose first field is a non negative integer
func (sc *scanner) count(what string) (int, error) {
	line, err := sc.next(what)
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, sc.errorf("missing %s", what)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, sc.errorf("invalid %s %q", what, fields[0])
	}
	return n, nil
}

func (sc *scanner) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", sc.lineNum, fmt.Sprintf(format, args...))
}
