// Package config holds the runtime configuration of the htmlwash service.
package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Default configuration values.
const (
	// DefaultPort is the listening port when PORT is not set.
	DefaultPort = 3001

	// DefaultHost binds every interface, matching a container deployment.
	DefaultHost = "0.0.0.0"

	// DefaultReadTimeout bounds reading a whole request, body included.
	DefaultReadTimeout = 30 * time.Second

	// DefaultWriteTimeout bounds processing plus writing the response.
	DefaultWriteTimeout = 60 * time.Second

	// DefaultMaxBodySize limits the form body of a request.
	DefaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// DefaultShutdownTimeout is how long in-flight requests get to finish.
	DefaultShutdownTimeout = 10 * time.Second
)

// Environment variables read by FromEnv.
const (
	EnvPort    = "PORT"
	EnvPresets = "HTMLWASH_PRESETS"
)

// Config holds the service configuration. It is filled from defaults,
// then the environment, then CLI flags, and passed down explicitly.
type Config struct {
	// Host is the interface to listen on.
	Host string

	// Port is the TCP port to listen on.
	Port int

	// ReadTimeout and WriteTimeout are applied to the HTTP server.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration

	// MaxBodySize is the largest accepted request body in bytes.
	MaxBodySize int64

	// PresetFile is an explicit preset file path. When empty the XDG
	// config directory is searched.
	PresetFile string

	// Verbose enables debug logging.
	Verbose bool

	// JSONLogs switches log output to JSON.
	JSONLogs bool
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		MaxBodySize:     DefaultMaxBodySize,
	}
}

// FromEnv overlays environment values on c using lookup (os.LookupEnv in
// production). An unparsable PORT is an error rather than silently ignored.
func (c *Config) FromEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q", ErrInvalidPort, EnvPort, v)
		}
		c.Port = port
	}
	if v, ok := lookup(EnvPresets); ok && v != "" {
		c.PresetFile = v
	}
	return nil
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return ErrInvalidPort
	}
	if c.ReadTimeout <= 0 || c.WriteTimeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}
	return nil
}
