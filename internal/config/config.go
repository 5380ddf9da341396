// internal/config/config.go
package config

import (
	"gopkg.in/yaml.v3"
	"os"
)

type Config struct {
	Size           string  `yaml:"size"`
	MarginInches   float64 `yaml:"margin"`
	RenderDPI      int     `yaml:"render_dpi"`
	WhiteThreshold float64 `yaml:"white_threshold"`
	OutputSuffix   string  `yaml:"output_suffix"`
}

// fileConfig mirrors Config with a pointer margin so that an explicit
// "margin: 0" survives default filling.
type fileConfig struct {
	Size           string   `yaml:"size"`
	MarginInches   *float64 `yaml:"margin"`
	RenderDPI      int      `yaml:"render_dpi"`
	WhiteThreshold float64  `yaml:"white_threshold"`
	OutputSuffix   string   `yaml:"output_suffix"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Size:           "letter",
		MarginInches:   0.5,
		RenderDPI:      150,
		WhiteThreshold: 0.95,
		OutputSuffix:   ".trimfit.pdf",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, err
	}

	cfg := Default()
	if fc.Size != "" {
		cfg.Size = fc.Size
	}
	if fc.MarginInches != nil {
		cfg.MarginInches = *fc.MarginInches
	}
	if fc.RenderDPI > 0 {
		cfg.RenderDPI = fc.RenderDPI
	}
	if fc.WhiteThreshold > 0 && fc.WhiteThreshold <= 1 {
		cfg.WhiteThreshold = fc.WhiteThreshold
	}
	if fc.OutputSuffix != "" {
		cfg.OutputSuffix = fc.OutputSuffix
	}

	return cfg, nil
}
