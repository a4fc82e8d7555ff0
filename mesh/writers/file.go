package writers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// WriteFile runs write against a temporary file in the directory of filename and
// renames it into place once write and close both succeed. On failure the
// temporary file is removed and any existing filename is left untouched.
func WriteFile(filename string, write func(w io.Writer) error) (err error) {
	dir, base := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, "."+base+".*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	if err = write(tmp); err != nil {
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	if err = tmp.Chmod(0644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), filename)
}
