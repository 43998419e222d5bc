// Package project scaffolds new Talon-managed projects.
package project

import (
	"embed"
	"fmt"
	"path/filepath"

	"github.com/simonhull/talon/internal/fsops"
	"github.com/simonhull/talon/internal/logging"
	"github.com/simonhull/talon/internal/phases"
	"github.com/simonhull/talon/internal/render"
)

//go:embed templates/*.tmpl
var templates embed.FS

// Scaffolder creates the starter layout for a new project. All file
// writes go through one transactional executor, so a failed scaffold
// leaves nothing behind.
type Scaffolder struct {
	renderer *render.Renderer
	log      logging.Logger
}

// NewScaffolder creates a project scaffolder.
func NewScaffolder(log logging.Logger) *Scaffolder {
	return &Scaffolder{
		renderer: render.NewRenderer(),
		log:      log,
	}
}

// templateData is passed to every project template.
type templateData struct {
	Name string
}

// Scaffold creates a new project directory with config, README, and an
// empty migrations directory.
func (s *Scaffolder) Scaffold(name string) error {
	if name == "" {
		return fmt.Errorf("project name is required")
	}

	exec := fsops.NewExecutor(fsops.NewResolver(nil), s.log)
	orch := phases.NewOrchestrator(exec, nil, s.log)
	data := templateData{Name: name}

	files := []struct {
		template string
		dest     string
	}{
		{"templates/talon.yml.tmpl", filepath.Join(name, "talon.yml")},
		{"templates/README.md.tmpl", filepath.Join(name, "README.md")},
		{"templates/gitignore.tmpl", filepath.Join(name, ".gitignore")},
	}

	return orch.Run("scaffold", []phases.Phase{
		{
			Name: "render and write starter files",
			Run: func(exec *fsops.Executor) error {
				for _, f := range files {
					content, err := s.renderer.RenderFS(templates, f.template, data)
					if err != nil {
						return err
					}
					if _, err := exec.Apply(f.dest, fsops.WriteAction{Content: content}, true); err != nil {
						return err
					}
				}
				return nil
			},
		},
		{
			Name: "create migrations directory",
			Run: func(exec *fsops.Executor) error {
				keep := filepath.Join(name, "migrations", ".gitkeep")
				_, err := exec.Apply(keep, fsops.WriteAction{Content: []byte{}}, true)
				return err
			},
		},
	})
}
