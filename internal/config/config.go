// Copyright 2025 The Rivaas Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config loads the application configuration.
//
// Values come from conf/application.yaml (or the file given with --config)
// and can be overridden by environment variables prefixed with
// STOCKPROJECT_, e.g. STOCKPROJECT_ROUTES_PREFIX or STOCKPROJECT_SERVER_ADDR.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STOCKPROJECT"

// Config is the root configuration.
type Config struct {
	Server  Server  `mapstructure:"server" yaml:"server"`
	Routes  Routes  `mapstructure:"routes" yaml:"routes"`
	Logging Logging `mapstructure:"logging" yaml:"logging"`
	Async   Async   `mapstructure:"async" yaml:"async"`
	Stocks  Stocks  `mapstructure:"stocks" yaml:"stocks"`
}

// Server configures the HTTP listener.
type Server struct {
	Addr            string        `mapstructure:"addr" yaml:"addr"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout" yaml:"read-timeout"`
	WriteTimeout    time.Duration `mapstructure:"write-timeout" yaml:"write-timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle-timeout" yaml:"idle-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout" yaml:"shutdown-timeout"`
}

// Routes configures reverse routing.
type Routes struct {
	// Prefix is the mount point of every route. It is read once at startup.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
}

// Logging configures the application logger.
type Logging struct {
	Handler     string `mapstructure:"handler" yaml:"handler"` // console, json or text
	Level       string `mapstructure:"level" yaml:"level"`     // debug, info, warn or error
	ServiceName string `mapstructure:"service-name" yaml:"service-name"`
}

// Async configures the delayed message endpoint.
type Async struct {
	Delay time.Duration `mapstructure:"delay" yaml:"delay"`
}

// Stocks configures the stock repository.
type Stocks struct {
	// Seed is a YAML file loaded into the in-memory repository.
	Seed     string   `mapstructure:"seed" yaml:"seed"`
	Database Database `mapstructure:"database" yaml:"database"`
}

// Database configures the PostgreSQL repository. When disabled the
// in-memory repository is used.
type Database struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Name     string `mapstructure:"name" yaml:"name"`
	SSLMode  string `mapstructure:"ssl-mode" yaml:"ssl-mode"`
	MinConns int    `mapstructure:"min-conns" yaml:"min-conns"`
	MaxConns int    `mapstructure:"max-conns" yaml:"max-conns"`
}

var validHandlers = map[string]bool{"console": true, "json": true, "text": true}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("server.shutdown-timeout must be positive"))
	}
	if strings.ContainsAny(c.Routes.Prefix, "?#:* ") {
		errs = append(errs, fmt.Errorf("routes.prefix %q must be a plain path", c.Routes.Prefix))
	}
	if !validHandlers[strings.ToLower(c.Logging.Handler)] {
		errs = append(errs, fmt.Errorf("logging.handler %q must be console, json or text", c.Logging.Handler))
	}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("logging.level %q must be debug, info, warn or error", c.Logging.Level))
	}
	if c.Async.Delay < 0 {
		errs = append(errs, errors.New("async.delay must not be negative"))
	}
	if db := c.Stocks.Database; db.Enabled {
		if db.Host == "" || db.Name == "" {
			errs = append(errs, errors.New("stocks.database host and name are required when enabled"))
		}
		if db.MaxConns > 0 && db.MinConns > db.MaxConns {
			errs = append(errs, errors.New("stocks.database.min-conns must not exceed max-conns"))
		}
	}

	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":9000")
	v.SetDefault("server.read-timeout", 5*time.Second)
	v.SetDefault("server.write-timeout", 10*time.Second)
	v.SetDefault("server.idle-timeout", 60*time.Second)
	v.SetDefault("server.shutdown-timeout", 10*time.Second)
	v.SetDefault("routes.prefix", "/")
	v.SetDefault("logging.handler", "console")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.service-name", "stockproject")
	v.SetDefault("async.delay", time.Second)
	v.SetDefault("stocks.seed", "")
	v.SetDefault("stocks.database.enabled", false)
	v.SetDefault("stocks.database.host", "")
	v.SetDefault("stocks.database.port", 5432)
	v.SetDefault("stocks.database.user", "")
	v.SetDefault("stocks.database.password", "")
	v.SetDefault("stocks.database.name", "")
	v.SetDefault("stocks.database.ssl-mode", "prefer")
	v.SetDefault("stocks.database.min-conns", 1)
	v.SetDefault("stocks.database.max-conns", 4)
}

// Load reads the configuration. An empty path searches for
// application.yaml in ./conf and the working directory and falls back to
// the defaults when none exists; an explicit path must exist.
func Load(path string) (*Config, *viper.Viper, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("application")
		v.AddConfigPath("conf")
		v.AddConfigPath(".")
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, nil, err
	}

	return cfg, v, nil
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Watch re-decodes the configuration whenever the file changes and passes
// the result to onChange. Invalid updates are logged and dropped.
func Watch(v *viper.Viper, logger *slog.Logger, onChange func(*Config)) {
	if v.ConfigFileUsed() == "" {
		return
	}
	v.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("config file changed", "file", e.Name, "op", e.Op.String())
		cfg, err := decode(v)
		if err != nil {
			logger.Error("config reload rejected", "error", err)
			return
		}
		onChange(cfg)
	})
	v.WatchConfig()
}
