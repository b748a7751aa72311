package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/vango-dev/tally/internal/errors"
)

const (
	// DefaultPort is the default server port.
	DefaultPort = 3000

	// DefaultHost is the default server host.
	DefaultHost = "localhost"

	// DefaultMessage is the counter message used when none is configured.
	DefaultMessage = "Count"

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = "10s"

	// DefaultMetricsPath is where Prometheus metrics are exposed.
	DefaultMetricsPath = "/metrics"

	// DefaultNamespace prefixes metric names and names the tracer.
	DefaultNamespace = "tally"
)

// FileNames are the config file names Load looks for, in order.
var FileNames = []string{"tally.yaml", "tally.yml", "tally.json"}

// Config represents a complete tally configuration file.
type Config struct {
	Server  ServerConfig  `yaml:"server" json:"server"`
	Counter CounterConfig `yaml:"counter" json:"counter"`
	Card    CardConfig    `yaml:"card" json:"card"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
	Tracing TracingConfig `yaml:"tracing" json:"tracing"`
	Log     LogConfig     `yaml:"log" json:"log"`

	// Dev enables pretty HTML and permissive WebSocket origins.
	Dev bool `yaml:"dev" json:"dev"`

	// path stores where the config was loaded from.
	path string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`

	// ShutdownTimeout is a Go duration string, e.g. "10s".
	ShutdownTimeout string `yaml:"shutdownTimeout" json:"shutdownTimeout"`
}

// CounterConfig holds the counter component props.
type CounterConfig struct {
	Message string `yaml:"message" json:"message"`

	// Step is the increment per click. Nil means the component default
	// (1); an explicit 0 is kept.
	Step *int `yaml:"step" json:"step"`
}

// CardConfig holds the optional card shown above the counter.
// The card is rendered only when Title is set.
type CardConfig struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Payload     string `yaml:"payload" json:"payload"`

	// Code switches the card to a response card showing "Payload: Code".
	Code *int `yaml:"code" json:"code"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Path      string `yaml:"path" json:"path"`
	Namespace string `yaml:"namespace" json:"namespace"`
}

// TracingConfig controls OpenTelemetry spans around events.
type TracingConfig struct {
	Enabled    bool   `yaml:"enabled" json:"enabled"`
	TracerName string `yaml:"tracerName" json:"tracerName"`
}

// New creates a Config with default values.
func New() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Counter: CounterConfig{
			Message: DefaultMessage,
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Path:      DefaultMetricsPath,
			Namespace: DefaultNamespace,
		},
		Tracing: TracingConfig{
			TracerName: DefaultNamespace,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load looks for one of FileNames in dir and loads the first one found.
// If none exists, the defaults are returned.
func Load(dir string) (*Config, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return LoadFile(path)
		}
	}
	return New(), nil
}

// LoadFile reads configuration from path. The format is chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E021").WithDetail(path).Wrap(err)
	}
	return Parse(data, filepath.Ext(path), path)
}

// Parse decodes data in the format named by ext (".yaml", ".yml" or
// ".json") on top of the defaults, then validates it. name is used in
// error messages and recorded as the config path.
func Parse(data []byte, ext, name string) (*Config, error) {
	cfg := New()

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && err != io.EOF {
			return nil, errors.New("E020").
				WithDetailf("parse %s: %v", name, err).
				WithSuggestion("Check that the file is valid YAML and uses the documented keys.")
		}
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, errors.New("E020").
				WithDetailf("parse %s: %v", name, err).
				WithSuggestion("Check that the file is valid JSON and uses the documented keys.")
		}
	default:
		return nil, errors.New("E022").WithDetail(name)
	}

	cfg.path = name
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the path the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}

// Addr returns host:port.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ShutdownTimeout returns the parsed shutdown timeout.
func (c *Config) ShutdownTimeout() time.Duration {
	d, err := time.ParseDuration(c.Server.ShutdownTimeout)
	if err != nil {
		return 0
	}
	return d
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Counter.Message == "" {
		c.Counter.Message = DefaultMessage
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = DefaultMetricsPath
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultNamespace
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return errors.New("E020").
			WithDetailf("server.port must be between 0 and 65535, got %d", c.Server.Port)
	}
	if d, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil || d < 0 {
		return errors.New("E020").
			WithDetailf("server.shutdownTimeout must be a non-negative duration, got %q", c.Server.ShutdownTimeout).
			WithSuggestion(`Use a Go duration such as "10s" or "1m".`)
	}
	if !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New("E020").
			WithDetailf("metrics.path must start with '/', got %q", c.Metrics.Path)
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return errors.New("E020").
			WithDetailf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}
