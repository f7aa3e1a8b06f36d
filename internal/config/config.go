// Package config handles loading and parsing application configuration.
// It supports two sources for the file location (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// A .env file in the working directory, when present, is loaded into the
// process environment first so its values can override the YAML file.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	HTTPServer `yaml:"http_server"`

	Upstream Upstream `yaml:"upstream"`
}

// HTTPServer holds settings specific to the inbound HTTP server.
type HTTPServer struct {
	Addr         string        `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_SERVER_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_SERVER_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_SERVER_IDLE_TIMEOUT" env-default:"60s"`
}

// Upstream describes where the employee service lives.
//
// EmployeeByIDPath is a fmt template with a single %s verb for the id,
// e.g. "/api/v1/employee/%s".
type Upstream struct {
	BaseURL          string        `yaml:"base_url" env:"UPSTREAM_BASE_URL" env-required:"true"`
	EmployeePath     string        `yaml:"employee_path" env:"UPSTREAM_EMPLOYEE_PATH" env-default:"/api/v1/employee"`
	EmployeeByIDPath string        `yaml:"employee_by_id_path" env:"UPSTREAM_EMPLOYEE_BY_ID_PATH" env-default:"/api/v1/employee/%s"`
	Timeout          time.Duration `yaml:"timeout" env:"UPSTREAM_TIMEOUT" env-default:"10s"`
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if cfg.Upstream.Timeout <= 0 {
		return nil, fmt.Errorf("upstream.timeout must be positive, got %s", cfg.Upstream.Timeout)
	}

	if err := validateIDTemplate(cfg.Upstream.EmployeeByIDPath); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validateIDTemplate accepts templates with exactly one verb, and that verb
// must be %s. A literal percent is written %%.
func validateIDTemplate(tpl string) error {
	plain := strings.ReplaceAll(tpl, "%%", "")
	if strings.Count(plain, "%") != 1 || strings.Count(plain, "%s") != 1 {
		return fmt.Errorf("upstream.employee_by_id_path must contain exactly one %%s, got %q", tpl)
	}
	return nil
}

// LoadDotEnv copies the variables from the given .env files (".env" when
// none are given) into the process environment. Variables that are already
// set win, and a missing file is not an error.
func LoadDotEnv(files ...string) error {
	err := godotenv.Load(files...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MustLoad loads .env, then reads, validates, and returns the application
// config. It terminates the process if the configuration cannot be loaded.
func MustLoad() *Config {
	if err := LoadDotEnv(); err != nil {
		log.Fatalf("cannot read .env: %s", err.Error())
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatal(err.Error())
	}

	return cfg
}
