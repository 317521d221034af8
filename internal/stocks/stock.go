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

// Package stocks holds the stock domain: the Stock type, its validation
// rules and the repositories that store stocks.
//
// Two repositories are provided. MemoryRepository keeps stocks in a map and
// can be seeded from a YAML file; PostgresRepository stores them in a
// PostgreSQL table through a pgx connection pool.
package stocks

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// Stock is a quoted security.
type Stock struct {
	Symbol    string    `json:"symbol" yaml:"symbol"`
	Name      string    `json:"name" yaml:"name"`
	Price     float64   `json:"price" yaml:"price"`
	Currency  string    `json:"currency" yaml:"currency"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// Repository stores stocks keyed by symbol. Symbols passed to a Repository
// are expected to be normalised with NormalizeSymbol.
type Repository interface {
	// List returns all stocks ordered by symbol.
	List(ctx context.Context) ([]Stock, error)
	// Get returns the stock with symbol or an error wrapping ErrNotFound.
	Get(ctx context.Context, symbol string) (Stock, error)
	// Create inserts a stock that does not exist yet and returns it as
	// stored. An existing symbol yields an error wrapping ErrExists.
	Create(ctx context.Context, s Stock) (Stock, error)
	// Put inserts or replaces a stock.
	Put(ctx context.Context, s Stock) error
	// Delete removes a stock or returns an error wrapping ErrNotFound.
	Delete(ctx context.Context, symbol string) error
}

// codedError is an error carrying an HTTP status and a machine-readable code.
type codedError struct {
	msg    string
	code   string
	status int
}

func (e *codedError) Error() string   { return e.msg }
func (e *codedError) Code() string    { return e.code }
func (e *codedError) HTTPStatus() int { return e.status }

// ErrNotFound is wrapped by repository errors for unknown symbols.
var ErrNotFound error = &codedError{msg: "stock not found", code: "stock-not-found", status: http.StatusNotFound}

// ErrExists is wrapped by Create errors for symbols already stored.
var ErrExists error = &codedError{msg: "stock already exists", code: "stock-exists", status: http.StatusConflict}

// ValidationError reports an invalid stock field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Code() string    { return "invalid-stock" }
func (e *ValidationError) HTTPStatus() int { return http.StatusBadRequest }

// Details exposes the offending field.
func (e *ValidationError) Details() any {
	return map[string]string{"field": e.Field, "reason": e.Reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

var symbolPattern = regexp.MustCompile(`^[A-Z][A-Z0-9.\-]{0,9}$`)

// NormalizeSymbol trims and upper-cases a symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// ValidateSymbol checks a normalised symbol: a letter followed by at most nine
// letters, digits, dots or dashes.
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return &ValidationError{Field: "symbol", Reason: "must not be empty"}
	}
	if !symbolPattern.MatchString(symbol) {
		return &ValidationError{Field: "symbol", Reason: fmt.Sprintf("%q is not a ticker symbol", symbol)}
	}

	return nil
}

// Normalize returns s with a normalised symbol and currency and validates it.
func Normalize(s Stock) (Stock, error) {
	s.Symbol = NormalizeSymbol(s.Symbol)
	s.Currency = strings.ToUpper(strings.TrimSpace(s.Currency))
	s.Name = strings.TrimSpace(s.Name)
	if s.Currency == "" {
		s.Currency = "USD"
	}

	if err := ValidateSymbol(s.Symbol); err != nil {
		return s, err
	}
	if s.Name == "" {
		return s, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	if s.Price < 0 {
		return s, &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if len(s.Currency) != 3 {
		return s, &ValidationError{Field: "currency", Reason: "must be a three letter code"}
	}

	return s, nil
}

func notFound(symbol string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, symbol)
}

func exists(symbol string) error {
	return fmt.Errorf("%w: %s", ErrExists, symbol)
}

// Seed stores every stock into repo.
func Seed(ctx context.Context, repo Repository, stocks []Stock) error {
	for _, s := range stocks {
		if err := repo.Put(ctx, s); err != nil {
			return fmt.Errorf("seed %s: %w", s.Symbol, err)
		}
	}

	return nil
}
