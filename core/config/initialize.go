package config

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration into dir unless one already
// exists, and returns the resulting configuration.
func Initialize(fsys afero.Fs, dir string, logger *log.Logger) (*Configuration, error) {
	configPath := filepath.Join(dir, ConfigurationName)

	exists, err := afero.Exists(fsys, configPath)
	switch {
	case err != nil:
		return nil, err
	case exists:
		return nil, fmt.Errorf("%s already exists", configPath)
	}

	logger.Printf("Writing %s", configPath)
	if err := afero.WriteFile(fsys, configPath, defaultConfigData, 0644); err != nil {
		return nil, err
	}

	return Load(fsys, dir)
}
