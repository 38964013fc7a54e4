// Package config loads server settings from a YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv and by main.
const (
	EnvConfig    = "LONGSHOT_MCP_CONFIG"
	EnvBackend   = "LONGSHOT_MCP_BACKEND"
	EnvOutputDir = "LONGSHOT_MCP_OUTPUT_DIR"
	EnvOffload   = "LONGSHOT_MCP_OFFLOAD"
	EnvLogLevel  = "LONGSHOT_MCP_LOG_LEVEL"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable of the server.
type Config struct {
	// Step is the video sampling interval in seconds.
	Step float64 `yaml:"step"`

	// Backend names the shape extraction backend: "bild" or "gocv".
	Backend string `yaml:"backend"`

	// Offload runs pair alignment on a dedicated worker goroutine.
	Offload bool `yaml:"offload"`

	// StackUnmatched keeps frames whose overlap could not be determined by
	// stacking them below the previous frame.
	StackUnmatched bool `yaml:"stack_unmatched"`

	// ZeroFraction and ConsensusFraction are the offset resolver thresholds.
	ZeroFraction      float64 `yaml:"zero_fraction"`
	ConsensusFraction float64 `yaml:"consensus_fraction"`

	// OutputDir receives composites written to disk. Empty means the
	// working directory.
	OutputDir    string `yaml:"output_dir"`
	OutputPrefix string `yaml:"output_prefix"`

	OCRLanguage string `yaml:"ocr_language"`

	// FFmpeg and FFprobe are executable names or paths.
	FFmpeg  string `yaml:"ffmpeg"`
	FFprobe string `yaml:"ffprobe"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Step:              0.5,
		Backend:           "bild",
		ZeroFraction:      0.9,
		ConsensusFraction: 0.1,
		OutputPrefix:      "longScreenCapture",
		OCRLanguage:       "eng",
		FFmpeg:            "ffmpeg",
		FFprobe:           "ffprobe",
		LogLevel:          "info",
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from the LONGSHOT_MCP_* environment variables.
// getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvBackend); v != "" {
		c.Backend = v
	}
	if v := getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := getenv(EnvOffload); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, EnvOffload, v, err)
		}
		c.Offload = b
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	return nil
}

// Validate checks ranges and names.
func (c *Config) Validate() error {
	var problems []string

	if c.Step <= 0 {
		problems = append(problems, fmt.Sprintf("step must be positive, got %v", c.Step))
	}
	switch c.Backend {
	case "bild", "gocv":
	default:
		problems = append(problems, fmt.Sprintf("unknown backend %q", c.Backend))
	}
	if c.ZeroFraction < 0 || c.ZeroFraction > 1 {
		problems = append(problems, fmt.Sprintf("zero_fraction must be within [0, 1], got %v", c.ZeroFraction))
	}
	if c.ConsensusFraction < 0 || c.ConsensusFraction > 1 {
		problems = append(problems, fmt.Sprintf("consensus_fraction must be within [0, 1], got %v", c.ConsensusFraction))
	}
	if c.OutputPrefix == "" {
		problems = append(problems, "output_prefix must not be empty")
	}
	if c.FFmpeg == "" || c.FFprobe == "" {
		problems = append(problems, "ffmpeg and ffprobe must not be empty")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Debug reports whether verbose logging was requested.
func (c *Config) Debug() bool {
	return c.LogLevel == "debug"
}
