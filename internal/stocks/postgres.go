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

package stocks

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"stockproject/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS stocks (
	symbol     TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	price      DOUBLE PRECISION NOT NULL,
	currency   TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
)`

// PostgresRepository is a Repository backed by a PostgreSQL table.
type PostgresRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// BuildConnString builds a PostgreSQL connection URL from cfg.
func BuildConnString(cfg config.Database) string {
	sslMode := cfg.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}
	port := cfg.Port
	if port == 0 {
		port = 5432
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, port),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": {sslMode}}.Encode(),
	}

	return u.String()
}

// Connect opens a pool, verifies it with a ping and creates the table when
// it does not exist.
func Connect(ctx context.Context, cfg config.Database) (*PostgresRepository, error) {
	poolCfg, err := pgxpool.ParseConfig(BuildConnString(cfg))
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = int32(cfg.MinConns)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = int32(cfg.MaxConns)
	}

	return open(ctx, poolCfg)
}

func open(ctx context.Context, poolCfg *pgxpool.Config) (*PostgresRepository, error) {
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return NewPostgresRepository(pool), nil
}

// NewPostgresRepository wraps an existing pool. The table must exist.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool, now: time.Now}
}

// Close releases the pool.
func (r *PostgresRepository) Close() {
	r.pool.Close()
}

// Ping checks the connection.
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *PostgresRepository) List(ctx context.Context) ([]Stock, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT symbol, name, price, currency, updated_at FROM stocks ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}

	out, err := pgx.CollectRows(rows, scanStock)
	if err != nil {
		return nil, fmt.Errorf("list stocks: %w", err)
	}

	return out, nil
}

func (r *PostgresRepository) Get(ctx context.Context, symbol string) (Stock, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT symbol, name, price, currency, updated_at FROM stocks WHERE symbol = $1`, symbol)
	if err != nil {
		return Stock{}, fmt.Errorf("get stock: %w", err)
	}

	s, err := pgx.CollectOneRow(rows, scanStock)
	if errors.Is(err, pgx.ErrNoRows) {
		return Stock{}, notFound(symbol)
	}
	if err != nil {
		return Stock{}, fmt.Errorf("get stock: %w", err)
	}

	return s, nil
}

func (r *PostgresRepository) Create(ctx context.Context, s Stock) (Stock, error) {
	s, err := Normalize(s)
	if err != nil {
		return Stock{}, err
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = r.now().UTC().Truncate(time.Microsecond)
	}

	tag, err := r.pool.Exec(ctx, `
INSERT INTO stocks (symbol, name, price, currency, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (symbol) DO NOTHING`,
		s.Symbol, s.Name, s.Price, s.Currency, s.UpdatedAt)
	if err != nil {
		return Stock{}, fmt.Errorf("create stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Stock{}, exists(s.Symbol)
	}

	return s, nil
}

func (r *PostgresRepository) Put(ctx context.Context, s Stock) error {
	s, err := Normalize(s)
	if err != nil {
		return err
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = r.now().UTC().Truncate(time.Microsecond)
	}

	_, err = r.pool.Exec(ctx, `
INSERT INTO stocks (symbol, name, price, currency, updated_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (symbol) DO UPDATE
SET name = EXCLUDED.name, price = EXCLUDED.price,
    currency = EXCLUDED.currency, updated_at = EXCLUDED.updated_at`,
		s.Symbol, s.Name, s.Price, s.Currency, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("put stock: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Delete(ctx context.Context, symbol string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM stocks WHERE symbol = $1`, symbol)
	if err != nil {
		return fmt.Errorf("delete stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notFound(symbol)
	}

	return nil
}

func scanStock(row pgx.CollectableRow) (Stock, error) {
	var s Stock
	err := row.Scan(&s.Symbol, &s.Name, &s.Price, &s.Currency, &s.UpdatedAt)

	return s, err
}
