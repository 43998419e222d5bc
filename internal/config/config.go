package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds per-project Talon settings, loaded from talon.yml in the
// working directory. It is read-only after Load.
type Config struct {
	ProjectName string   // project.name
	Roots       []string // paths.roots, ordered resolution fallbacks
	BackupDir   string   // backup.dir
	StateFile   string   // migrate.state, where applied migrations are recorded
}

const (
	defaultBackupDir = ".talon/backups"
	defaultStateFile = ".talon/migrations.yml"
)

// Load reads talon.yml from the current directory, with TALON_-prefixed
// environment overrides. A missing config file is not an error: Talon
// then runs with defaults and no extra resolution roots.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("talon")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("TALON")
	v.AutomaticEnv()

	v.SetDefault("backup.dir", defaultBackupDir)
	v.SetDefault("migrate.state", defaultStateFile)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading talon.yml: %w", err)
		}
	}

	return &Config{
		ProjectName: v.GetString("project.name"),
		Roots:       v.GetStringSlice("paths.roots"),
		BackupDir:   v.GetString("backup.dir"),
		StateFile:   v.GetString("migrate.state"),
	}, nil
}
