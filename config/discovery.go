package config

import (
	"errors"
	"os"
	"path/filepath"
)

// Filenames are the configuration files Discover looks for, in order.
var Filenames = []string{"cvac.toml", "cvac.yaml", "cvac.yml"}

// ErrNotFound is returned by Find when no directory up to the root holds a
// configuration file.
var ErrNotFound = errors.New("no cvac configuration file found")

// Find walks from dir up to the filesystem root and returns the first
// configuration file it sees.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range Filenames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrNotFound
		}
		dir = parent
	}
}

// Discover loads the nearest configuration file above dir, falling back to
// the defaults when there is none.
func Discover(dir string) (*Config, error) {
	path, err := Find(dir)
	if errors.Is(err, ErrNotFound) {
		cfg := Default()
		if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
			return nil, err
		}
		return cfg, cfg.Validate()
	}
	if err != nil {
		return nil, err
	}
	return Load(path)
}
