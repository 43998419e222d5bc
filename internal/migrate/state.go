package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// State tracks which migrations have been applied to the project. It is
// persisted as YAML so it survives between runs; the mutation journal
// does not, so this file is the only durable migration record.
type State struct {
	Applied []string `yaml:"applied"`
}

// LoadState reads the state file. A missing file means nothing has been
// applied yet.
func LoadState(path string) (*State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &State{}, nil
		}
		return nil, fmt.Errorf("reading migration state: %w", err)
	}
	var s State
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing migration state: %w", err)
	}
	return &s, nil
}

// Save writes the state file, creating its directory if needed. The
// state is written directly, not through the mutation journal: it records
// committed reality and must not be undone by a later rollback.
func (s *State) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding migration state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing migration state: %w", err)
	}
	return nil
}

// IsApplied reports whether a migration ID is recorded as applied.
func (s *State) IsApplied(id string) bool {
	return slices.Contains(s.Applied, id)
}

// MarkApplied records a migration ID.
func (s *State) MarkApplied(id string) {
	if !s.IsApplied(id) {
		s.Applied = append(s.Applied, id)
	}
}

// MarkUnapplied removes a migration ID.
func (s *State) MarkUnapplied(id string) {
	s.Applied = slices.DeleteFunc(s.Applied, func(v string) bool {
		return v == id
	})
}
