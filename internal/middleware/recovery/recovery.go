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

// Package recovery turns handler panics into 500 problem responses.
package recovery

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"rivaas.dev/router"

	"stockproject/internal/problem"
)

// Option configures the middleware.
type Option func(*config)

type config struct {
	logger     *slog.Logger
	problems   *problem.Writer
	stackTrace bool
	stackSize  int
}

func defaultConfig() *config {
	return &config{
		stackTrace: true,
		stackSize:  4 << 10,
	}
}

// WithLogger sets the logger panics are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithProblemWriter sets the writer used for the error response.
func WithProblemWriter(pw *problem.Writer) Option {
	return func(c *config) {
		c.problems = pw
	}
}

// WithStackTrace enables or disables stack capture. Default: true.
func WithStackTrace(enabled bool) Option {
	return func(c *config) {
		c.stackTrace = enabled
	}
}

// WithStackSize caps the logged stack in bytes. Default: 4KB.
func WithStackSize(size int) Option {
	return func(c *config) {
		c.stackSize = size
	}
}

// ErrPanic is wrapped by errors reported for recovered panics.
var ErrPanic = errors.New("handler panicked")

// New returns the recovery middleware. It should be registered first.
func New(opts ...Option) router.HandlerFunc {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.problems == nil {
		cfg.problems = problem.New("", cfg.logger)
	}

	return func(c *router.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			//nolint:errorlint // http.ErrAbortHandler is compared by identity
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			if cfg.logger != nil {
				attrs := []any{
					"panic", fmt.Sprint(rec),
					"method", c.Request.Method,
					"path", c.Request.URL.Path,
				}
				if cfg.stackTrace {
					stack := debug.Stack()
					if cfg.stackSize > 0 && len(stack) > cfg.stackSize {
						stack = stack[:cfg.stackSize]
					}
					attrs = append(attrs, "stack", string(stack))
				}
				cfg.logger.ErrorContext(c.Request.Context(), "panic recovered", attrs...)
			}

			c.Abort()
			cfg.problems.Write(c.Response, c.Request, fmt.Errorf("%w: %v", ErrPanic, rec))
		}()

		c.Next()
	}
}
