package config

import (
	"os"

	"go.uber.org/zap"
)

// ProjectConfigFile is the config file picked up from the working directory
const ProjectConfigFile = "fieldcodec.yaml"

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. The file at path, or fieldcodec.yaml in the working directory when path is empty
// 3. overrides (typically command-line flags)
//
// An explicit path that cannot be read is an error; a missing project file is not.
func (l *Loader) Load(path string, overrides *Config) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		fileConfig, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config file", zap.String("path", path))
		config.Merge(fileConfig)
	} else if fileConfig, err := LoadFromFile(ProjectConfigFile); err == nil {
		l.logger.Debug("Loaded project config", zap.String("path", ProjectConfigFile))
		config.Merge(fileConfig)
	} else if _, statErr := os.Stat(ProjectConfigFile); statErr == nil {
		l.logger.Warn("Failed to load project config", zap.String("path", ProjectConfigFile), zap.Error(err))
	}

	config.Merge(overrides)

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
