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

// Package problem renders errors as RFC 9457 problem details.
package problem

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"rivaas.dev/errors"

	"stockproject/internal/middleware/requestid"
)

// Writer formats errors and writes them to a response.
type Writer struct {
	formatter *errors.RFC9457
	logger    *slog.Logger
}

// New returns a Writer whose problem types are resolved against baseURL.
// A nil logger discards server error logs.
func New(baseURL string, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Writer{
		formatter: errors.NewRFC9457(baseURL),
		logger:    logger,
	}
}

// Write renders err for r. Errors that do not declare a status are answered
// with 500 and logged.
func (pw *Writer) Write(w http.ResponseWriter, r *http.Request, err error) {
	resp := pw.formatter.Format(r, err)

	if p, ok := resp.Body.(errors.ProblemDetail); ok {
		if id := requestid.FromRequest(r); id != "" {
			p.Extensions["request_id"] = id
		}
		if resp.Status >= http.StatusInternalServerError {
			// internal details stay in the log
			p.Detail = http.StatusText(resp.Status)
			delete(p.Extensions, "errors")
		}
		resp.Body = p
	}

	if resp.Status >= http.StatusInternalServerError {
		pw.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", resp.Status,
			"error", err,
		)
	}

	for k, vals := range resp.Headers {
		for _, v := range vals {
			w.Header().Add(k, v)
		}
	}
	w.Header().Set("Content-Type", resp.ContentType)
	w.WriteHeader(resp.Status)

	if encErr := json.NewEncoder(w).Encode(resp.Body); encErr != nil {
		pw.logger.WarnContext(r.Context(), "write problem", "error", encErr)
	}
}

// WithStatus attaches an HTTP status to err.
func WithStatus(err error, status int) error {
	return &statusError{err: err, status: status}
}

// WithCode attaches an HTTP status and a machine-readable code to err.
func WithCode(err error, status int, code string) error {
	return &codedError{statusError: statusError{err: err, status: status}, code: code}
}

type statusError struct {
	err    error
	status int
}

func (e *statusError) Error() string {
	if e.err == nil {
		return http.StatusText(e.status)
	}

	return e.err.Error()
}

func (e *statusError) Unwrap() error   { return e.err }
func (e *statusError) HTTPStatus() int { return e.status }

type codedError struct {
	statusError
	code string
}

func (e *codedError) Code() string { return e.code }
