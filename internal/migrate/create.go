package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/simonhull/talon/internal/output"
	"gopkg.in/yaml.v3"
)

// Create writes a timestamped migration skeleton for manual editing.
func Create(dir, name string) (string, error) {
	id := time.Now().UTC().Format("20060102150405")
	filename := fmt.Sprintf("%s_%s.yml", id, name)
	path := filepath.Join(dir, filename)

	output.Verbose(fmt.Sprintf("Creating migration: %s", name))

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating migrations directory: %w", err)
	}

	skeleton := Migration{
		ID:   id,
		Name: name,
		Up: []Step{
			{Action: "write", Target: "path/to/file", Content: "content"},
		},
		Down: []Step{
			{Action: "delete", Target: "path/to/file"},
		},
	}
	data, err := yaml.Marshal(skeleton)
	if err != nil {
		return "", fmt.Errorf("encoding migration skeleton: %w", err)
	}

	header := fmt.Sprintf("# Migration: %s\n# Created: %s\n# Edit the up/down steps below.\n", name, time.Now().Format("2006-01-02 15:04:05"))
	if err := os.WriteFile(path, append([]byte(header), data...), 0644); err != nil {
		return "", fmt.Errorf("writing migration skeleton: %w", err)
	}

	output.Success(fmt.Sprintf("Created migration file: %s", path))
	return path, nil
}
