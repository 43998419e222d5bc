// Package backup creates zip snapshots of project paths before risky
// multi-step changes.
package backup

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// Archive writes a zip archive at dest containing the given files and
// directories. Directories are walked recursively; entry names are kept
// relative so the archive unpacks cleanly anywhere.
func Archive(dest string, paths []string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("creating backup directory: %w", err)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating archive %s: %w", dest, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if info.IsDir() {
			err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
				if err != nil || d.IsDir() {
					return err
				}
				return addFile(zw, p)
			})
		} else {
			err = addFile(zw, path)
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// SnapshotName builds a timestamped archive filename for an operation,
// e.g. "migrate-20250101120000.zip".
func SnapshotName(operation string) string {
	return fmt.Sprintf("%s-%s.zip", operation, time.Now().UTC().Format("20060102150405"))
}

func addFile(zw *zip.Writer, path string) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer src.Close()

	name := filepath.ToSlash(path)
	if filepath.IsAbs(path) {
		name = filepath.ToSlash(filepath.Base(path))
	}

	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("adding %s to archive: %w", path, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("writing %s to archive: %w", path, err)
	}
	return nil
}
