package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of every environment override (BOOKSEARCH_BOOKS_ENDPOINT, ...).
const EnvPrefix = "BOOKSEARCH"

// DefaultPath is used when BOOKSEARCH_CONFIG is not set.
const DefaultPath = "booksearch.yaml"

var (
	once     sync.Once
	instance *Config
)

// ComponentConfig holds the network settings of a long-running component.
type ComponentConfig struct {
	Protocol string `yaml:"protocol" envconfig:"protocol"`
	Host     string `yaml:"host" envconfig:"host"`
	Port     int    `yaml:"port" envconfig:"port"`
	GRPCPort int    `yaml:"grpc_port" envconfig:"grpc_port"`
	Debug    bool   `yaml:"debug" envconfig:"debug"`
}

// BooksConfig describes the upstream volumes endpoint.
type BooksConfig struct {
	Endpoint     string        `yaml:"endpoint" envconfig:"endpoint"`
	MaxResults   int           `yaml:"max_results" envconfig:"max_results"`
	Timeout      time.Duration `yaml:"timeout" envconfig:"timeout"` // 0 disables the deadline
	UserAgent    string        `yaml:"user_agent" envconfig:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" envconfig:"max_body_bytes"`
}

// SearchConfig tunes the controller.
type SearchConfig struct {
	Policy       string `yaml:"policy" envconfig:"policy"`
	FieldAliases bool   `yaml:"field_aliases" envconfig:"field_aliases"`
}

// CLIConfig settings for the CLI (not a service)
type CLIConfig struct {
	Debug       bool   `yaml:"debug" envconfig:"debug"`
	HistoryFile string `yaml:"history_file" envconfig:"history_file"`
	NoColor     bool   `yaml:"no_color" envconfig:"no_color"`
}

// LogConfig mirrors the knobs of logger.Setup.
type LogConfig struct {
	Level string `yaml:"level" envconfig:"level"`
	JSON  bool   `yaml:"json" envconfig:"json"`
	Path  string `yaml:"path" envconfig:"path"` // empty logs to stderr
}

// MetricsConfig settings for the metrics exporter
type MetricsConfig struct {
	PushURL string `yaml:"push_url" envconfig:"push_url"`
	Job     string `yaml:"job" envconfig:"job"`
}

// Config is the root of booksearch.yaml.
type Config struct {
	Books      BooksConfig     `yaml:"books" envconfig:"books"`
	Search     SearchConfig    `yaml:"search" envconfig:"search"`
	WebAdapter ComponentConfig `yaml:"web_adapter" envconfig:"web_adapter"`
	CLI        CLIConfig       `yaml:"cli" envconfig:"cli"`
	Log        LogConfig       `yaml:"log" envconfig:"log"`
	Metrics    MetricsConfig   `yaml:"metrics" envconfig:"metrics"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Books: BooksConfig{
			Endpoint:     "https://www.googleapis.com/books/v1/volumes",
			MaxResults:   20,
			UserAgent:    "booksearch/1.0",
			MaxBodyBytes: 8 << 20,
		},
		Search: SearchConfig{
			Policy: "ignore-stale",
		},
		WebAdapter: ComponentConfig{
			Protocol: "http",
			Host:     "localhost",
			Port:     50080,
			GRPCPort: 50081,
		},
		CLI: CLIConfig{
			HistoryFile: ".booksearch_history",
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Job: "booksearch_cli",
		},
	}
}

// Get returns the process-wide configuration (Singleton).
func Get() *Config {
	once.Do(func() {
		path := os.Getenv(EnvPrefix + "_CONFIG")
		if path == "" {
			path = DefaultPath
		}

		cfg, err := Load(path)
		if err != nil {
			log.Fatalf("[CONFIG ERROR] %v", err)
		}
		instance = cfg
	})
	return instance
}

// Load reads path over the defaults, applies BOOKSEARCH_* overrides and validates.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		f, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(f, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the components cannot start with.
func (c *Config) Validate() error {
	if c.Books.Endpoint == "" {
		return ErrInvalid("books.endpoint is required")
	}
	if c.Books.MaxResults <= 0 || c.Books.MaxResults > 40 {
		return ErrInvalid("books.max_results must be within 1..40")
	}
	if c.Books.Timeout < 0 {
		return ErrInvalid("books.timeout must not be negative")
	}
	switch c.Search.Policy {
	case "ignore-stale", "last-completed":
	default:
		return ErrInvalid(fmt.Sprintf("search.policy %q is not one of ignore-stale, last-completed", c.Search.Policy))
	}
	return nil
}

type invalidErr string

func (e invalidErr) Error() string { return "invalid config: " + string(e) }

// ErrInvalid builds a validation error.
func ErrInvalid(msg string) error { return invalidErr(msg) }

// Address returns host:port (handy for listeners)
func (c ComponentConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// GRPCAddress returns host:grpc_port.
func (c ComponentConfig) GRPCAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.GRPCPort)
}

// FullURL returns protocol://host:port
func (c ComponentConfig) FullURL() string {
	return fmt.Sprintf("%s://%s:%d", c.Protocol, c.Host, c.Port)
}
