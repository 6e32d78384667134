package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/iot-manager/console/internal/logging"
	"github.com/iot-manager/console/internal/routes"
	"github.com/iot-manager/console/pkg/routepath"
	"github.com/pelletier/go-toml/v2"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment overlays.
	OverlayConfigPattern = "config.%s.toml"

	// DefaultAddr is the default listen address.
	DefaultAddr = ":8080"

	// DefaultShutdownTimeout bounds graceful shutdown.
	DefaultShutdownTimeout = "30s"

	// DefaultTimeout is the default HTTP read and write timeout.
	DefaultTimeout = "10s"

	// DefaultNamespace is used for metrics and as the tracer name.
	DefaultNamespace = "console"
)

// Environment variables.
const (
	EnvServiceEnv             = "SERVICE_ENV"
	EnvServiceShutdownTimeout = "SERVICE_SHUTDOWN_TIMEOUT"
	EnvAddr                   = "CONSOLE_ADDR"
	EnvBasePath               = "CONSOLE_BASE_PATH"
	EnvRoutesVariant          = "CONSOLE_ROUTES_VARIANT"
	EnvAPIBase                = "CONSOLE_API_BASE"
	EnvLogLevel               = "CONSOLE_LOG_LEVEL"
	EnvLogFormat              = "CONSOLE_LOG_FORMAT"
)

// Config is the root configuration.
type Config struct {
	Server          ServerConfig   `toml:"server"`
	Routes          RoutesConfig   `toml:"routes"`
	Views           ViewsConfig    `toml:"views"`
	Logging         logging.Config `toml:"logging"`
	Metrics         MetricsConfig  `toml:"metrics"`
	Tracing         TracingConfig  `toml:"tracing"`
	ShutdownTimeout string         `toml:"shutdown_timeout"`
}

// ServerConfig configures the HTTP host.
type ServerConfig struct {
	Addr           string `toml:"addr"`
	BasePath       string `toml:"base_path"`
	ReadTimeout    string `toml:"read_timeout"`
	WriteTimeout   string `toml:"write_timeout"`
	LiveNavigation *bool  `toml:"live_navigation"`
}

// RoutesConfig selects the route table.
type RoutesConfig struct {
	Variant string `toml:"variant"`
}

// ViewsConfig configures the page views.
type ViewsConfig struct {
	// APIBase is the backend URL the pages read from. Empty means same origin.
	APIBase string `toml:"api_base"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	Enabled   *bool  `toml:"enabled"`
	Namespace string `toml:"namespace"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled    *bool  `toml:"enabled"`
	TracerName string `toml:"tracer_name"`
}

// Default returns a finalized configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	if err := cfg.Finalize(); err != nil {
		panic(err)
	}
	return cfg
}

// Load reads config.toml from dir, applies the SERVICE_ENV overlay if one
// exists, and finalizes the result.
func Load(dir string) (*Config, error) {
	cfg, err := load(filepath.Join(dir, BaseConfigFile))
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = &Config{}, nil
	}
	if err != nil {
		return nil, err
	}

	if path := overlayPath(dir); path != "" {
		overlay, err := load(path)
		if err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
		cfg.Merge(overlay)
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile reads a single configuration file and finalizes it.
func LoadFile(path string) (*Config, error) {
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Logging.Finalize(&logging.Env{Level: EnvLogLevel, Format: EnvLogFormat}); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	return nil
}

// Merge applies the non-zero values of overlay.
func (c *Config) Merge(overlay *Config) {
	if overlay.ShutdownTimeout != "" {
		c.ShutdownTimeout = overlay.ShutdownTimeout
	}
	if overlay.Server.Addr != "" {
		c.Server.Addr = overlay.Server.Addr
	}
	if overlay.Server.BasePath != "" {
		c.Server.BasePath = overlay.Server.BasePath
	}
	if overlay.Server.ReadTimeout != "" {
		c.Server.ReadTimeout = overlay.Server.ReadTimeout
	}
	if overlay.Server.WriteTimeout != "" {
		c.Server.WriteTimeout = overlay.Server.WriteTimeout
	}
	if overlay.Server.LiveNavigation != nil {
		c.Server.LiveNavigation = overlay.Server.LiveNavigation
	}
	if overlay.Routes.Variant != "" {
		c.Routes.Variant = overlay.Routes.Variant
	}
	if overlay.Views.APIBase != "" {
		c.Views.APIBase = overlay.Views.APIBase
	}
	if overlay.Metrics.Enabled != nil {
		c.Metrics.Enabled = overlay.Metrics.Enabled
	}
	if overlay.Metrics.Namespace != "" {
		c.Metrics.Namespace = overlay.Metrics.Namespace
	}
	if overlay.Tracing.Enabled != nil {
		c.Tracing.Enabled = overlay.Tracing.Enabled
	}
	if overlay.Tracing.TracerName != "" {
		c.Tracing.TracerName = overlay.Tracing.TracerName
	}
	c.Logging.Merge(&overlay.Logging)
}

// Overrides are command-line values that take precedence over files and
// the environment. Empty fields are ignored.
type Overrides struct {
	Addr     string
	BasePath string
	Variant  string
}

// Apply sets the non-empty overrides and validates the result.
func (c *Config) Apply(o Overrides) error {
	if o.Addr != "" {
		c.Server.Addr = o.Addr
	}
	if o.BasePath != "" {
		c.Server.BasePath = o.BasePath
	}
	if o.Variant != "" {
		c.Routes.Variant = o.Variant
	}
	return c.validate()
}

// Variant returns the parsed route variant. Valid after Finalize.
func (c *Config) Variant() routes.Variant {
	v, _ := routes.ParseVariant(c.Routes.Variant)
	return v
}

// ShutdownTimeoutDuration returns the shutdown timeout. Valid after Finalize.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// ReadTimeoutDuration returns the HTTP read timeout. Valid after Finalize.
func (s *ServerConfig) ReadTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.ReadTimeout)
	return d
}

// WriteTimeoutDuration returns the HTTP write timeout. Valid after Finalize.
func (s *ServerConfig) WriteTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.WriteTimeout)
	return d
}

// LiveNavigationEnabled reports whether the navigation socket is served.
func (s *ServerConfig) LiveNavigationEnabled() bool {
	return s.LiveNavigation == nil || *s.LiveNavigation
}

// IsEnabled reports whether metrics are collected.
func (m *MetricsConfig) IsEnabled() bool {
	return m.Enabled == nil || *m.Enabled
}

// IsEnabled reports whether navigations are traced.
func (t *TracingConfig) IsEnabled() bool {
	return t.Enabled == nil || *t.Enabled
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.BasePath == "" {
		c.Server.BasePath = "/"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = DefaultTimeout
	}
	if c.Server.WriteTimeout == "" {
		c.Server.WriteTimeout = DefaultTimeout
	}
	if c.Routes.Variant == "" {
		c.Routes.Variant = string(routes.DefaultVariant)
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = DefaultNamespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = DefaultNamespace
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvServiceShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv(EnvBasePath); v != "" {
		c.Server.BasePath = v
	}
	if v := os.Getenv(EnvRoutesVariant); v != "" {
		c.Routes.Variant = v
	}
	if v := os.Getenv(EnvAPIBase); v != "" {
		c.Views.APIBase = v
	}
}

func (c *Config) validate() error {
	for name, v := range map[string]string{
		"shutdown_timeout":     c.ShutdownTimeout,
		"server.read_timeout":  c.Server.ReadTimeout,
		"server.write_timeout": c.Server.WriteTimeout,
	} {
		if _, err := time.ParseDuration(v); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	if _, err := routepath.Canonicalize(c.Server.BasePath); err != nil {
		return fmt.Errorf("invalid server.base_path %q: %w", c.Server.BasePath, err)
	}
	c.Server.BasePath = routepath.NormalizeBase(c.Server.BasePath)

	v, err := routes.ParseVariant(c.Routes.Variant)
	if err != nil {
		return fmt.Errorf("routes: %w", err)
	}
	c.Routes.Variant = string(v)
	return nil
}

func load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

func overlayPath(dir string) string {
	env := os.Getenv(EnvServiceEnv)
	if env == "" {
		return ""
	}
	path := filepath.Join(dir, fmt.Sprintf(OverlayConfigPattern, env))
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}
