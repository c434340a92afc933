// Package config provides the configuration loader for crashmin.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.skade.ch/crashmin/internal/core/domain"
	"go.skade.ch/crashmin/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a file-backed configuration loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load reads the configuration at path. When path is empty the file is
// discovered by walking from cwd toward the filesystem root; a run without
// any configuration file is normal and yields the defaults.
func (l *Loader) Load(path, cwd string) (*domain.Config, error) {
	cfg := &domain.Config{}

	if path == "" {
		found, err := discover(cwd)
		if err != nil {
			return nil, err
		}
		if found == "" {
			return cfg, nil
		}
		path = found
	}

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, zerr.Wrap(err, "failed to read config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, zerr.Wrap(err, "failed to parse config file")
	}
	if cfg.Reducer != "" && cfg.Reducer != "structural" && cfg.Reducer != "source" {
		return nil, zerr.With(zerr.New("unknown reducer in config"), "reducer", cfg.Reducer)
	}

	l.logger.Debug("loaded config", "path", path)
	return cfg, nil
}

// discover walks from dir toward the root looking for the config file.
func discover(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}
	for {
		candidate := filepath.Join(dir, domain.ConfigFilename)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", zerr.Wrap(err, "failed to probe config file")
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
