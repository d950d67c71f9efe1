package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/nate-ooley/HandyBoss/internal/common/fsutil"
)

// Environment variables recognized by ApplyEnv. PortEnvVar is also
// republished by bootstrap after port negotiation so late readers see the
// effective port.
const (
	PortEnvVar      = "HANDYBOSS_LLM_PORT"
	ModelPathEnvVar = "HANDYBOSS_MODEL_PATH"
	LogLevelEnvVar  = "HANDYBOSS_LOG_LEVEL"
)

// Built-in defaults applied by ApplyDefaults.
const (
	DefaultPort    = 6789
	DefaultCtxSize = 2048
	DefaultThreads = 4
)

// Config holds runtime parameters for the service.
// Zero values mean "unspecified" and are replaced by ApplyDefaults.
type Config struct {
	// Preferred listen port. Negotiation may settle on a higher one.
	Port int `json:"port" yaml:"port" toml:"port"`
	// Path to the GGUF model file to load at startup.
	ModelPath string `json:"model_path" yaml:"model_path" toml:"model_path"`
	// Context length limit passed to the engine.
	CtxSize int `json:"ctx_size" yaml:"ctx_size" toml:"ctx_size"`
	// Number of inference threads.
	Threads int `json:"threads" yaml:"threads" toml:"threads"`
	// Log level: off|error|info|debug.
	LogLevel string `json:"log_level" yaml:"log_level" toml:"log_level"`
	// Allowed CORS origins. Empty means allow all.
	CORSOrigins []string `json:"cors_origins" yaml:"cors_origins" toml:"cors_origins"`
	// Maximum request body size in bytes for JSON endpoints (0 = default 1 MiB).
	MaxBodyBytes int64 `json:"max_body_bytes" yaml:"max_body_bytes" toml:"max_body_bytes"`
}

// Load reads a configuration file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}

// ApplyEnv overlays environment variables onto unset fields.
func (c *Config) ApplyEnv() error {
	if c.Port == 0 {
		if v := os.Getenv(PortEnvVar); v != "" {
			p, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("parse %s: %w", PortEnvVar, err)
			}
			c.Port = p
		}
	}
	if c.ModelPath == "" {
		c.ModelPath = os.Getenv(ModelPathEnvVar)
	}
	if c.LogLevel == "" {
		c.LogLevel = os.Getenv(LogLevelEnvVar)
	}
	return nil
}

// ApplyDefaults fills remaining zero fields with built-in defaults and
// expands '~' in the model path.
func (c *Config) ApplyDefaults() error {
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.CtxSize == 0 {
		c.CtxSize = DefaultCtxSize
	}
	if c.Threads == 0 {
		c.Threads = DefaultThreads
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	p, err := fsutil.ExpandHome(c.ModelPath)
	if err != nil {
		return err
	}
	c.ModelPath = p
	return nil
}
