package datamall

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/datamall-go/datamall/transport"
)

// Environment variables read by LoadConfig. They override the file.
const (
	EnvAPIKey      = "DATAMALL_API_KEY"
	EnvHost        = "DATAMALL_HOST"
	EnvMode        = "DATAMALL_MODE"
	EnvTimeout     = "DATAMALL_TIMEOUT"
	EnvMaxInFlight = "DATAMALL_MAX_IN_FLIGHT"
)

// Config is the file/environment form of the client options.
type Config struct {
	APIKey      string               `yaml:"api_key"`
	Host        string               `yaml:"host" validate:"omitempty,url"`
	Version     string               `yaml:"version" validate:"omitempty,startswith=/"`
	Mode        string               `yaml:"mode" validate:"omitempty,oneof=blocking async"`
	Timeout     time.Duration        `yaml:"timeout" validate:"gte=0"`
	MaxInFlight int                  `yaml:"max_in_flight" validate:"gte=0"`
	UserAgent   string               `yaml:"user_agent"`
	Pool        transport.PoolConfig `yaml:"pool"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Host:        DefaultHost,
		Version:     APIVersion,
		Mode:        ModeBlocking.String(),
		Timeout:     transport.DefaultPoolConfig().Timeout,
		MaxInFlight: transport.DefaultMaxInFlight,
		Pool:        transport.DefaultPoolConfig(),
	}
}

// LoadConfig builds a Config from, in increasing priority: defaults, the
// YAML file at path (skipped when path is empty), a .env file in the working
// directory if one exists, and DATAMALL_* environment variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v, ok := os.LookupEnv(EnvAPIKey); ok && v != "" {
		c.APIKey = v
	}
	if v, ok := os.LookupEnv(EnvHost); ok && v != "" {
		c.Host = v
	}
	if v, ok := os.LookupEnv(EnvMode); ok && v != "" {
		c.Mode = v
	}
	if v, ok := os.LookupEnv(EnvTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v, ok := os.LookupEnv(EnvMaxInFlight); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvMaxInFlight, err)
		}
		c.MaxInFlight = n
	}
	return nil
}

// Validate checks field constraints. An empty API key is accepted; the
// service rejects it on first use.
func (c Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if _, err := ParseMode(c.Mode); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Options converts the config into client options.
func (c Config) Options() []Option {
	mode, _ := ParseMode(c.Mode)
	opts := []Option{
		WithAPIKey(c.APIKey),
		WithMode(mode),
		WithTimeout(c.Timeout),
		WithPool(c.Pool),
	}
	if c.Host != "" {
		opts = append(opts, WithHost(c.Host))
	}
	if c.Version != "" {
		opts = append(opts, WithVersion(c.Version))
	}
	if c.MaxInFlight > 0 {
		opts = append(opts, WithMaxInFlight(c.MaxInFlight))
	}
	if c.UserAgent != "" {
		opts = append(opts, WithUserAgent(c.UserAgent))
	}
	return opts
}
