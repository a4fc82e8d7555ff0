package readers

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/subdomain/mesh"
)

// ReadFort14 reads an ADCIRC grid file (fort.14). Only the header, nodes and
// elements are read, any boundary specification that follows is ignored.
func ReadFort14(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	msh, err := ParseFort14(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return msh, nil
}

// ParseFort14 parses fort.14 content from r
func ParseFort14(r io.Reader) (*mesh.Mesh, error) {
	lr := newLineReader(r)

	header, err := lr.next()
	if err != nil {
		return nil, fmt.Errorf("missing header line: %w", err)
	}

	line, err := lr.next()
	if err != nil {
		return nil, fmt.Errorf("missing element and node counts: %w", err)
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, lr.errorf("expected \"elementCount nodeCount\", got %q", line)
	}
	ne, err1 := strconv.Atoi(fields[0])
	np, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || ne < 0 || np < 0 {
		return nil, lr.errorf("invalid element and node counts %q", line)
	}

	msh := mesh.NewMesh(strings.TrimRight(header, "\r"), np, ne)

	for i := 0; i < np; i++ {
		if line, err = lr.next(); err != nil {
			return nil, fmt.Errorf("unexpected EOF reading node %d of %d", i+1, np)
		}
		fields = strings.Fields(line)
		if len(fields) < 4 {
			return nil, lr.errorf("invalid node line %q: expected id x y z", line)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, lr.errorf("invalid node id: %v", err)
		}
		if id != i+1 {
			return nil, lr.errorf("node ids must be dense from 1, expected %d, got %d", i+1, id)
		}
		for j := 0; j < 3; j++ {
			if msh.Vertices[i][j], err = strconv.ParseFloat(fields[1+j], 64); err != nil {
				return nil, lr.errorf("invalid coordinate: %v", err)
			}
		}
	}

	for k := 0; k < ne; k++ {
		if line, err = lr.next(); err != nil {
			return nil, fmt.Errorf("unexpected EOF reading element %d of %d", k+1, ne)
		}
		fields = strings.Fields(line)
		if len(fields) < 5 {
			return nil, lr.errorf("invalid element line %q: expected id 3 v1 v2 v3", line)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, lr.errorf("invalid element id: %v", err)
		}
		if id != k+1 {
			return nil, lr.errorf("element ids must be dense from 1, expected %d, got %d", k+1, id)
		}
		if fields[1] != "3" {
			return nil, lr.errorf("element %d has %s vertices, only triangles are supported", id, fields[1])
		}
		for j := 0; j < 3; j++ {
			if msh.EtoV[k][j], err = strconv.Atoi(fields[2+j]); err != nil {
				return nil, lr.errorf("invalid node index: %v", err)
			}
		}
	}

	if err = msh.Validate(); err != nil {
		return nil, err
	}
	return msh, nil
}

type lineReader struct {
	scanner *bufio.Scanner
	lineNum int
}

func newLineReader(r io.Reader) *lineReader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &lineReader{scanner: scanner}
}

func (lr *lineReader) next() (string, error) {
	if !lr.scanner.Scan() {
		if err := lr.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	lr.lineNum++
	return lr.scanner.Text(), nil
}

func (lr *lineReader) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("line %d: %s", lr.lineNum, fmt.Sprintf(format, args...))
}
