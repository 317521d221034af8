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
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDatabaseEnv names the connection URL of a disposable database used by
// the PostgreSQL tests. They are skipped when it is unset.
const testDatabaseEnv = "STOCKPROJECT_TEST_DATABASE_URL"

func newPostgresRepository(t *testing.T) *PostgresRepository {
	t.Helper()

	dsn := os.Getenv(testDatabaseEnv)
	if dsn == "" {
		t.Skipf("%s not set", testDatabaseEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolCfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	repo, err := open(ctx, poolCfg)
	require.NoError(t, err)
	t.Cleanup(repo.Close)

	return repo
}

// testSymbol returns a symbol unlikely to collide with rows left by other runs.
func testSymbol(t *testing.T, repo *PostgresRepository) string {
	t.Helper()

	symbol := "T" + strconv.FormatInt(time.Now().UnixNano()%1_000_000_000, 36)
	symbol = NormalizeSymbol(symbol)
	require.NoError(t, ValidateSymbol(symbol))
	t.Cleanup(func() {
		_, _ = repo.pool.Exec(context.Background(), `DELETE FROM stocks WHERE symbol = $1`, symbol)
	})

	return symbol
}

func TestPostgresRepository(t *testing.T) {
	repo := newPostgresRepository(t)
	ctx := context.Background()
	symbol := testSymbol(t, repo)

	fixed := time.Date(2025, 3, 1, 12, 0, 0, 123456789, time.UTC)
	repo.now = func() time.Time { return fixed }

	require.NoError(t, repo.Ping(ctx))

	created, err := repo.Create(ctx, Stock{Symbol: symbol, Name: "Test Corp", Price: 10.5})
	require.NoError(t, err)
	assert.Equal(t, fixed.Truncate(time.Microsecond), created.UpdatedAt)

	_, err = repo.Create(ctx, Stock{Symbol: symbol, Name: "Other", Price: 1})
	require.ErrorIs(t, err, ErrExists)

	got, err := repo.Get(ctx, symbol)
	require.NoError(t, err)
	assert.Equal(t, "Test Corp", got.Name)
	assert.Equal(t, "USD", got.Currency)
	assert.InDelta(t, 10.5, got.Price, 1e-9)
	assert.True(t, created.UpdatedAt.Equal(got.UpdatedAt))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	var listed bool
	for _, s := range all {
		if s.Symbol == symbol {
			listed = true
		}
	}
	assert.True(t, listed, "list contains %s", symbol)

	require.NoError(t, repo.Put(ctx, Stock{Symbol: symbol, Name: "Test Corp", Price: 11.25, Currency: "eur"}))
	got, err = repo.Get(ctx, symbol)
	require.NoError(t, err)
	assert.InDelta(t, 11.25, got.Price, 1e-9)
	assert.Equal(t, "EUR", got.Currency)

	require.NoError(t, repo.Delete(ctx, symbol))

	_, err = repo.Get(ctx, symbol)
	require.ErrorIs(t, err, ErrNotFound)
	err = repo.Delete(ctx, symbol)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepository_RejectsInvalid(t *testing.T) {
	repo := newPostgresRepository(t)

	_, err := repo.Create(context.Background(), Stock{Symbol: "", Name: "x"})
	assert.True(t, IsValidation(err))
	assert.True(t, IsValidation(repo.Put(context.Background(), Stock{Symbol: "OK", Name: ""})))
}
