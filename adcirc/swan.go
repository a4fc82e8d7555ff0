package adcirc

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/notargets/subdomain/mesh/writers"
)

// Input files of the coupled SWAN wave model. A full run directory holding
// fort.26 is a coupled ADCIRC+SWAN run.
const (
	SwanControlFile = "fort.26"
	SwanInitFile    = "swaninit"
)

// CoupledFiles lists the SWAN inputs in fullDir, nil when the full run is not
// coupled. A coupled run missing one of them is an error.
func CoupledFiles(fullDir string) ([]string, error) {
	if _, err := os.Stat(filepath.Join(fullDir, SwanControlFile)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	files := []string{SwanControlFile, SwanInitFile}
	for _, name := range files[1:] {
		if _, err := os.Stat(filepath.Join(fullDir, name)); err != nil {
			return nil, fmt.Errorf("coupled SWAN run: %w", err)
		}
	}
	return files, nil
}

// CopyCoupledFiles copies the SWAN inputs from fullDir to subDir when the full run
// is coupled and reports whether it was
func CopyCoupledFiles(fullDir, subDir string) (bool, error) {
	files, err := CoupledFiles(fullDir)
	if err != nil || files == nil {
		return false, err
	}
	for _, name := range files {
		if err := copyFile(filepath.Join(fullDir, name), filepath.Join(subDir, name)); err != nil {
			return true, fmt.Errorf("copying SWAN input: %w", err)
		}
	}
	return true, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	return writers.WriteFile(dst, func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
}
