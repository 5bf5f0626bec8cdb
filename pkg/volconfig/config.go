// Package volconfig loads and validates the pipeline's own run configuration
// (font metrics defaults, render canvas size, component registry toggles),
// distinct from the scene document itself.
package volconfig

import (
	"crypto/sha256"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FontCfg configures the default FontMetrics service.
type FontCfg struct {
	AdvanceRatio float64 `yaml:"advanceRatio" json:"advanceRatio"`
	Leading      float64 `yaml:"leading" json:"leading"`
}

// RenderCfg configures the reference SVG renderer's canvas.
type RenderCfg struct {
	Width      int    `yaml:"width" json:"width"`
	Height     int    `yaml:"height" json:"height"`
	Background string `yaml:"background" json:"background"`
}

// Config is the pipeline's own run configuration, loaded from YAML.
type Config struct {
	Font   FontCfg   `yaml:"font" json:"font"`
	Render RenderCfg `yaml:"render" json:"render"`

	// Components lists custom component type names this run expects to be
	// registered; ValidateComponents rejects a run that references an
	// unregistered one. Checked separately from Validate because the
	// registry it's checked against lives in pkg/components, a package this
	// one doesn't otherwise need to import.
	Components []string `yaml:"components,omitempty" json:"components,omitempty"`
}

// Default returns a Config with the pipeline's built-in defaults: a
// fixed-advance font at the FontMetrics package's own ratio/leading, and an
// 800x600 white canvas.
func Default() Config {
	return Config{
		Font:   FontCfg{AdvanceRatio: 0.6, Leading: 4},
		Render: RenderCfg{Width: 800, Height: 600, Background: "#ffffff"},
	}
}

// Load reads and validates a Config from a YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses and validates a Config from raw YAML bytes.
func LoadBytes(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate rejects a Config with non-positive font or canvas dimensions.
func (c *Config) Validate() error {
	if c.Font.AdvanceRatio <= 0 {
		return fmt.Errorf("font.advanceRatio must be > 0, got %g", c.Font.AdvanceRatio)
	}
	if c.Font.Leading < 0 {
		return fmt.Errorf("font.leading must be >= 0, got %g", c.Font.Leading)
	}
	if c.Render.Width <= 0 || c.Render.Height <= 0 {
		return fmt.Errorf("render.width and render.height must be > 0, got %dx%d", c.Render.Width, c.Render.Height)
	}
	return nil
}

// ValidateComponents rejects a Config that names a custom component type not
// present in known (typically components.List() from the live registry).
func (c *Config) ValidateComponents(known []string) error {
	if len(c.Components) == 0 {
		return nil
	}
	registered := make(map[string]bool, len(known))
	for _, name := range known {
		registered[name] = true
	}
	for _, name := range c.Components {
		if !registered[name] {
			return fmt.Errorf("components: %q is not a registered component factory", name)
		}
	}
	return nil
}

// ToYAML serializes the Config back to YAML, used by Hash.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic digest of the configuration, for callers
// that want to tag cached render output with the config that produced it.
func (c *Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		h := sha256.Sum256([]byte(fmt.Sprintf("%+v", c)))
		return h[:]
	}
	h := sha256.Sum256(data)
	return h[:]
}
