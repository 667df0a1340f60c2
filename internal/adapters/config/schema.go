package config

// File represents the structure of portway.yaml.
type File struct {
	Version   string       `yaml:"version"`
	Input     string       `yaml:"input"`
	Processor ProcessorDTO `yaml:"processor"`
	Delivery  string       `yaml:"delivery"`
	Sinks     []SinkDTO    `yaml:"sinks"`
}

// ProcessorDTO represents the processor section of the configuration.
type ProcessorDTO struct {
	Kind       string `yaml:"kind"`
	Expression string `yaml:"expression"`
	CacheTTL   string `yaml:"cache_ttl"`
}

// SinkDTO represents one entry of the sinks list.
type SinkDTO struct {
	Kind  string `yaml:"kind"`
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
	Addr  string `yaml:"addr"`
	Key   string `yaml:"key"`
}
