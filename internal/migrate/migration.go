package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/simonhull/talon/internal/fsops"
	"gopkg.in/yaml.v3"
)

// Step is one filesystem change inside a migration. Action is one of
// write, delete, copy, move; Dest applies to copy/move, Content to write.
// Optional steps tolerate an unresolvable target and are skipped instead
// of failing the migration.
type Step struct {
	Action   string `yaml:"action"`
	Target   string `yaml:"target"`
	Dest     string `yaml:"dest,omitempty"`
	Content  string `yaml:"content,omitempty"`
	Optional bool   `yaml:"optional,omitempty"`
}

// Migration is an ordered set of steps with a reverse recipe. IDs are
// timestamp prefixes, so lexical order is apply order.
type Migration struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Up   []Step `yaml:"up"`
	Down []Step `yaml:"down,omitempty"`
}

// action converts the YAML step into a typed fsops action.
func (s Step) action() (fsops.Action, error) {
	switch s.Action {
	case "write":
		return fsops.WriteAction{Content: []byte(s.Content)}, nil
	case "delete":
		return fsops.DeleteAction{}, nil
	case "copy":
		if s.Dest == "" {
			return nil, fmt.Errorf("copy step for %s has no dest", s.Target)
		}
		return fsops.CopyAction{Dest: s.Dest}, nil
	case "move":
		if s.Dest == "" {
			return nil, fmt.Errorf("move step for %s has no dest", s.Target)
		}
		return fsops.MoveAction{Dest: s.Dest}, nil
	default:
		return nil, fmt.Errorf("unknown step action %q", s.Action)
	}
}

// LoadDir reads all migration files from dir, sorted by ID. A missing
// directory yields an empty list, not an error.
func LoadDir(dir string) ([]Migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading migrations directory: %w", err)
	}

	var migrations []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading migration %s: %w", path, err)
		}
		var m Migration
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parsing migration %s: %w", path, err)
		}
		if m.ID == "" {
			return nil, fmt.Errorf("migration %s has no id", path)
		}
		migrations = append(migrations, m)
	}

	sort.Slice(migrations, func(i, k int) bool {
		return migrations[i].ID < migrations[k].ID
	})
	return migrations, nil
}
