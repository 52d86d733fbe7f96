package catalog

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// DefaultClusters returns the known Denvr Cloud clusters in fetch order.
func DefaultClusters() []string {
	return []string{"Msc1", "Hou1"}
}

func NewConfig() *Config {
	return &Config{
		Provider: "denvr",
		Clusters: DefaultClusters(),
		GPUs:     DefaultGPUTable(),
	}
}

// ParseConfig reads a YAML config. Omitted clusters or gpus keep their
// defaults; an empty baseURL or resourcePool is resolved by the source.
func ParseConfig(filePath string) (*Config, error) {
	configFile, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errors.Wrap(err, "could not read config file")
	}

	config := &Config{}
	if err := yaml.UnmarshalStrict(configFile, config); err != nil {
		return nil, errors.Wrapf(err, "could not parse %s", filePath)
	}

	defaults := NewConfig()
	if config.Provider == "" {
		config.Provider = defaults.Provider
	}
	if len(config.Clusters) == 0 {
		config.Clusters = defaults.Clusters
	}
	if len(config.GPUs) == 0 {
		config.GPUs = defaults.GPUs
	}
	for i, gpu := range config.GPUs {
		if gpu.Pattern == "" {
			return nil, errors.Errorf("gpus[%d] has an empty pattern", i)
		}
	}
	return config, nil
}
