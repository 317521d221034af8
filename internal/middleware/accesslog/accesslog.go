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

// Package accesslog writes one structured log record per request.
package accesslog

import (
	"bufio"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"rivaas.dev/router"

	"stockproject/internal/middleware/requestid"
)

// Option configures the middleware.
type Option func(*config)

type config struct {
	excludePaths    map[string]bool
	excludePrefixes []string
	slowThreshold   time.Duration
	errorsOnly      bool
}

// WithExcludePaths skips logging for exact path matches.
func WithExcludePaths(paths ...string) Option {
	return func(c *config) {
		for _, p := range paths {
			c.excludePaths[p] = true
		}
	}
}

// WithExcludePrefixes skips logging for paths under the given prefixes.
func WithExcludePrefixes(prefixes ...string) Option {
	return func(c *config) {
		c.excludePrefixes = append(c.excludePrefixes, prefixes...)
	}
}

// WithSlowThreshold flags requests slower than d and logs them at warn level.
func WithSlowThreshold(d time.Duration) Option {
	return func(c *config) {
		c.slowThreshold = d
	}
}

// WithErrorsOnly only logs responses with status >= 400 and slow requests.
func WithErrorsOnly() Option {
	return func(c *config) {
		c.errorsOnly = true
	}
}

type statusSizer interface {
	StatusCode() int
	Size() int64
}

// New returns the access log middleware. A nil logger disables it.
func New(logger *slog.Logger, opts ...Option) router.HandlerFunc {
	cfg := &config{excludePaths: make(map[string]bool)}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(c *router.Context) {
		path := c.Request.URL.Path
		if logger == nil || cfg.skip(path) {
			c.Next()
			return
		}

		start := time.Now()

		var ss statusSizer
		if existing, ok := c.Response.(statusSizer); ok {
			ss = existing
		} else {
			wrapped := &responseWriter{ResponseWriter: c.Response}
			c.Response = wrapped
			ss = wrapped
		}

		c.Next()

		duration := time.Since(start)
		status := ss.StatusCode()
		slow := cfg.slowThreshold > 0 && duration >= cfg.slowThreshold
		if cfg.errorsOnly && status < http.StatusBadRequest && !slow {
			return
		}

		fields := []any{
			"method", c.Request.Method,
			"path", path,
			"status", status,
			"duration_ms", duration.Milliseconds(),
			"bytes_sent", ss.Size(),
			"user_agent", c.Request.UserAgent(),
			"remote_addr", c.Request.RemoteAddr,
			"proto", c.Request.Proto,
		}
		if id := requestid.FromRequest(c.Request); id != "" {
			fields = append(fields, "request_id", id)
		}
		if slow {
			fields = append(fields, "slow", true)
		}

		ctx := c.Request.Context()
		switch {
		case status >= http.StatusInternalServerError:
			logger.ErrorContext(ctx, "access", fields...)
		case status >= http.StatusBadRequest, slow:
			logger.WarnContext(ctx, "access", fields...)
		default:
			logger.InfoContext(ctx, "access", fields...)
		}
	}
}

func (c *config) skip(path string) bool {
	if c.excludePaths[path] {
		return true
	}
	for _, p := range c.excludePrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}

	return false
}

// responseWriter records the status and body size.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	size       int64
	written    bool
}

var (
	_ http.Flusher  = (*responseWriter)(nil)
	_ http.Hijacker = (*responseWriter)(nil)
)

func (rw *responseWriter) WriteHeader(code int) {
	if rw.written {
		return
	}
	rw.statusCode = code
	rw.written = true
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.size += int64(n)

	return n, err
}

func (rw *responseWriter) StatusCode() int {
	if rw.statusCode == 0 {
		return http.StatusOK
	}

	return rw.statusCode
}

func (rw *responseWriter) Size() int64 {
	return rw.size
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if h, ok := rw.ResponseWriter.(http.Hijacker); ok {
		return h.Hijack()
	}

	return nil, nil, errors.New("accesslog: underlying ResponseWriter does not support hijacking")
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}
