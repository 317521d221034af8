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

// Package logger builds the application logger from configuration.
package logger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"rivaas.dev/logging"

	"stockproject/internal/config"
)

// ErrLevelFixed is returned by SetLevel when the level cannot change at
// runtime.
var ErrLevelFixed = errors.New("logger: level cannot be changed")

// Logger is the handle returned by New.
type Logger interface {
	Logger() *slog.Logger
	Shutdown(ctx context.Context) error
}

// New returns a logger configured from cfg. Extra options are applied last.
//
// Example:
//
//	lg, err := logger.New(cfg.Logging, version)
//	if err != nil {
//	    return err
//	}
//	defer lg.Shutdown(context.Background())
//	lg.Logger().Info("starting")
func New(cfg config.Logging, version string, extra ...logging.Option) (Logger, error) {
	opts := []logging.Option{
		logging.WithServiceName(cfg.ServiceName),
		logging.WithServiceVersion(version),
		logging.WithLevel(ParseLevel(cfg.Level)),
	}

	switch strings.ToLower(cfg.Handler) {
	case "json":
		opts = append(opts, logging.WithJSONHandler())
	case "text":
		opts = append(opts, logging.WithTextHandler())
	case "", "console":
		opts = append(opts, logging.WithConsoleHandler())
	default:
		return nil, fmt.Errorf("unknown log handler %q", cfg.Handler)
	}
	opts = append(opts, extra...)

	lg, err := logging.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	return lg, nil
}

// ParseLevel maps a level name to a logging level. Unknown names map to
// info.
func ParseLevel(level string) logging.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

// SetLevel changes the minimum level of lg.
func SetLevel(lg Logger, level string) error {
	ls, ok := lg.(interface{ SetLevel(level logging.Level) error })
	if !ok {
		return ErrLevelFixed
	}

	return ls.SetLevel(ParseLevel(level))
}
