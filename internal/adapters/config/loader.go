// Package config provides the configuration loader for portway.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/portway/internal/core/domain"
	"go.trai.ch/portway/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the configuration schema version this loader understands.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path. With an empty path the loader looks
// for portway.yaml in the working directory and falls back to
// domain.DefaultConfig when it does not exist.
func (l *Loader) Load(path string) (*domain.PipelineConfig, error) {
	explicit := path != ""
	if !explicit {
		path = domain.ConfigFileName
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if explicit {
				return nil, zerr.With(domain.ErrConfigNotFound, "path", path)
			}
			return resolvePaths(domain.DefaultConfig(), "."), nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file File
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, zerr.With(err, "path", path)
	}

	cfg, err := l.toDomain(&file)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}

	l.Logger.Info(fmt.Sprintf("loaded configuration from %s", path))
	return resolvePaths(cfg, filepath.Dir(path)), nil
}

func (l *Loader) toDomain(file *File) (*domain.PipelineConfig, error) {
	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("unsupported config version %q, reading it as version %s", file.Version, SupportedVersion))
	}

	cfg := domain.DefaultConfig()
	if file.Input != "" {
		cfg.Input = file.Input
	}

	processor, err := toProcessorSpec(file.Processor)
	if err != nil {
		return nil, err
	}
	cfg.Processor = processor

	cfg.Delivery, err = domain.ParseDeliveryMode(file.Delivery)
	if err != nil {
		return nil, err
	}

	if len(file.Sinks) > 0 {
		cfg.Sinks = make([]domain.SinkSpec, 0, len(file.Sinks))
		for i, dto := range file.Sinks {
			kind, err := domain.ParseSinkKind(dto.Kind)
			if err != nil {
				return nil, zerr.With(err, "sink_index", i)
			}
			if kind == domain.SinkMemory {
				l.Logger.Warn("memory sink keeps results only until the process exits")
			}
			cfg.Sinks = append(cfg.Sinks, domain.SinkSpec{
				Kind:  kind,
				Label: dto.Label,
				Path:  dto.Path,
				Addr:  dto.Addr,
				Key:   dto.Key,
			})
		}
	}

	return cfg, nil
}

func toProcessorSpec(dto ProcessorDTO) (domain.ProcessorSpec, error) {
	kind, err := domain.ParseProcessorKind(dto.Kind)
	if err != nil {
		return domain.ProcessorSpec{}, err
	}

	spec := domain.ProcessorSpec{Kind: kind, Expression: dto.Expression}
	if kind == domain.ProcessorExpression && dto.Expression == "" {
		return domain.ProcessorSpec{}, zerr.With(domain.ErrInvalidExpression, "reason", "processor.expression is required")
	}

	if dto.CacheTTL != "" {
		ttl, err := time.ParseDuration(dto.CacheTTL)
		if err != nil {
			return domain.ProcessorSpec{}, zerr.With(zerr.Wrap(err, domain.ErrInvalidCacheTTL.Error()), "cache_ttl", dto.CacheTTL)
		}
		if ttl < 0 {
			return domain.ProcessorSpec{}, zerr.With(domain.ErrInvalidCacheTTL, "cache_ttl", dto.CacheTTL)
		}
		spec.CacheTTL = ttl
	}

	return spec, nil
}

// resolvePaths fills default sink locations and anchors relative paths at base.
func resolvePaths(cfg *domain.PipelineConfig, base string) *domain.PipelineConfig {
	for i := range cfg.Sinks {
		s := cfg.Sinks[i].WithDefaults()
		if s.Path != "" && !filepath.IsAbs(s.Path) {
			s.Path = filepath.Join(base, s.Path)
		}
		cfg.Sinks[i] = s
	}
	return cfg
}

func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath comes from the CLI
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
