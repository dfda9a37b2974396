// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/user/gifatlas/pkg/discovery"
	"github.com/user/gifatlas/pkg/orchestrator"
	"github.com/user/gifatlas/pkg/pipeline"
	"github.com/user/gifatlas/pkg/ports"
)

// DefaultDir is the texture directory scanned when none is given.
const DefaultDir = "../assets/textures/gif"

// Config represents the full configuration for gifatlas.
type Config struct {
	// Input
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`

	// Decoding
	Coalesce bool `yaml:"coalesce"`

	// Output
	AtlasSuffix    string `yaml:"atlas_suffix"`
	MetadataSuffix string `yaml:"metadata_suffix"`
	Summary        string `yaml:"summary"`

	// Failure handling
	OnError string `yaml:"on_error"`

	// Logging
	LogLevel string `yaml:"log_level"`
	Quiet    bool   `yaml:"quiet"`

	// Debug
	Debug           bool   `yaml:"debug"`
	DebugDir        string `yaml:"debug_dir"`
	DebugGuideColor string `yaml:"debug_guide_color"`
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Dir:     DefaultDir,
		Pattern: discovery.DefaultPattern,

		Coalesce: true,

		AtlasSuffix:    pipeline.DefaultAtlasSuffix,
		MetadataSuffix: pipeline.DefaultMetadataSuffix,

		OnError: string(orchestrator.PolicyContinue),

		LogLevel: "info",

		DebugDir:        "./debug",
		DebugGuideColor: "#ff00ff",
	}
}

// LoadFromFile loads configuration from a YAML file.
// Keys missing from the file keep their default values.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the configuration. Every error wraps pipeline.ErrConfig.
func (c Config) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("%w: dir must not be empty", pipeline.ErrConfig)
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return fmt.Errorf("%w: pattern %q: %v", pipeline.ErrConfig, c.Pattern, err)
	}
	if _, err := orchestrator.ParseErrorPolicy(c.OnError); err != nil {
		return fmt.Errorf("%w: on_error: %v", pipeline.ErrConfig, err)
	}
	if !slices.Contains(ports.LogLevelNames, c.LogLevel) {
		return fmt.Errorf("%w: unknown log level %q", pipeline.ErrConfig, c.LogLevel)
	}
	for _, s := range []struct{ key, suffix string }{
		{"atlas_suffix", c.AtlasSuffix},
		{"metadata_suffix", c.MetadataSuffix},
	} {
		if filepath.Ext(s.suffix) == "" || filepath.Base(s.suffix) != s.suffix {
			return fmt.Errorf("%w: %s %q must end in a file extension", pipeline.ErrConfig, s.key, s.suffix)
		}
	}
	if c.AtlasSuffix == c.MetadataSuffix {
		return fmt.Errorf("%w: atlas_suffix and metadata_suffix must differ", pipeline.ErrConfig)
	}
	if c.Debug {
		if c.DebugDir == "" {
			return fmt.Errorf("%w: debug_dir must not be empty", pipeline.ErrConfig)
		}
		if _, err := ParseColor(c.DebugGuideColor); err != nil {
			return fmt.Errorf("%w: debug_guide_color: %v", pipeline.ErrConfig, err)
		}
	}
	return nil
}

// ParseColor parses "#rrggbb" or "#rrggbbaa" (the '#' is optional).
func ParseColor(hex string) (color.RGBA, error) {
	s := hex
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", hex)
	}

	var channels [4]uint8
	channels[3] = 255
	for i := 0; i < len(s); i += 2 {
		hi, ok1 := hexValue(s[i])
		lo, ok2 := hexValue(s[i+1])
		if !ok1 || !ok2 {
			return color.RGBA{}, fmt.Errorf("invalid color %q", hex)
		}
		channels[i/2] = hi<<4 | lo
	}

	return color.RGBA{R: channels[0], G: channels[1], B: channels[2], A: channels[3]}, nil
}

func hexValue(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
// The policy is expected to have passed Validate.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	policy, err := orchestrator.ParseErrorPolicy(c.OnError)
	if err != nil {
		policy = orchestrator.PolicyContinue
	}
	return orchestrator.Config{
		Dir:     c.Dir,
		Pattern: c.Pattern,
		Suffixes: pipeline.Suffixes{
			Atlas:    c.AtlasSuffix,
			Metadata: c.MetadataSuffix,
		},
		Policy: policy,
	}
}
