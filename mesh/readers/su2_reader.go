package readers

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/notargets/subdomain/mesh"
)

// su2Triangle is the VTK identifier SU2 uses for linear triangles
const su2Triangle = 5

// ReadSU2 reads a two dimensional SU2 native format file made of triangles.
// SU2 numbers nodes from 0, the returned mesh is shifted to 1-based ids and the
// file name becomes the header. Boundary markers are ignored.
func ReadSU2(filename string) (*mesh.Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var (
		ndime              int
		hasNDIME, hasNPOIN bool
		vertices           [][3]float64
		elements           [][3]int
	)
	scanner := bufio.NewScanner(file)
	// Only the first count is read, NPOIN may carry a second one for domain points
	intValue := func(line, key string) (int, error) {
		fields := strings.Fields(strings.TrimPrefix(line, key))
		if len(fields) == 0 {
			return 0, fmt.Errorf("missing value after %s", key)
		}
		return strconv.Atoi(fields[0])
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip comments (text after %)
		if idx := strings.Index(line, "%"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "NDIME="):
			hasNDIME = true
			if ndime, err = intValue(line, "NDIME="); err != nil {
				return nil, fmt.Errorf("invalid NDIME line %q", line)
			}
			if ndime != 2 {
				return nil, fmt.Errorf("unsupported dimension: NDIME=%d, only 2D surface meshes are supported", ndime)
			}

		case strings.HasPrefix(line, "NPOIN="):
			hasNPOIN = true
			npoin, err := intValue(line, "NPOIN=")
			if err != nil {
				return nil, fmt.Errorf("invalid NPOIN line %q", line)
			}
			vertices = make([][3]float64, npoin)
			for i := 0; i < npoin; i++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}
				fields := strings.Fields(scanner.Text())
				if len(fields) < 2 {
					return nil, fmt.Errorf("invalid node line: expected at least 2 coordinates")
				}
				for j := 0; j < 2; j++ {
					if vertices[i][j], err = strconv.ParseFloat(fields[j], 64); err != nil {
						return nil, fmt.Errorf("invalid coordinate: %v", err)
					}
				}
			}

		case strings.HasPrefix(line, "NELEM="):
			nelem, err := intValue(line, "NELEM=")
			if err != nil {
				return nil, fmt.Errorf("invalid NELEM line %q", line)
			}
			elements = make([][3]int, nelem)
			for k := 0; k < nelem; k++ {
				if !scanner.Scan() {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}
				fields := strings.Fields(scanner.Text())
				if len(fields) < 4 {
					return nil, fmt.Errorf("invalid element line %q", scanner.Text())
				}
				su2Type, err := strconv.Atoi(fields[0])
				if err != nil {
					return nil, fmt.Errorf("invalid element type: %v", err)
				}
				if su2Type != su2Triangle {
					return nil, fmt.Errorf("element %d has type %d, only triangles (%d) are supported",
						k, su2Type, su2Triangle)
				}
				for j := 0; j < 3; j++ {
					v, err := strconv.Atoi(fields[1+j])
					if err != nil {
						return nil, fmt.Errorf("invalid node index: %v", err)
					}
					elements[k][j] = v + 1
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}

	// Validate that we read the required sections
	if !hasNDIME {
		return nil, fmt.Errorf("missing required NDIME= section")
	}
	if !hasNPOIN {
		return nil, fmt.Errorf("missing required NPOIN= section")
	}

	msh := mesh.NewMesh(filepath.Base(filename), len(vertices), len(elements))
	msh.Vertices, msh.EtoV = vertices, elements
	if err := msh.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return msh, nil
}
