package ports

import "go.trai.ch/portway/internal/core/domain"

// ConfigLoader defines the interface for loading the pipeline configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at path. An empty path means the default
	// file in the working directory, falling back to built-in defaults.
	Load(path string) (*domain.PipelineConfig, error)
}
