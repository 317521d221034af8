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

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/spf13/cobra"

	"rivaas.dev/router"

	"stockproject/controllers"
	"stockproject/controllers/routes"
	"stockproject/internal/config"
	"stockproject/internal/counter"
	"stockproject/internal/logger"
	"stockproject/internal/middleware/accesslog"
	"stockproject/internal/middleware/recovery"
	"stockproject/internal/middleware/requestid"
	"stockproject/internal/problem"
	"stockproject/internal/routing"
	"stockproject/internal/server"
	"stockproject/internal/stocks"
	"stockproject/public"
)

const problemsBaseURL = "https://stockproject.dev/problems"

var errNoRoute = errors.New("no route matches the request")

func newServeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
}

func runServe(ctx context.Context, flags *globalFlags) error {
	cfg, v, err := config.Load(flags.configPath)
	if err != nil {
		return err
	}

	lg, err := logger.New(cfg.Logging, version)
	if err != nil {
		return err
	}
	//nolint:contextcheck // flush after the serve context is done
	defer func() { _ = lg.Shutdown(context.Background()) }()
	log := lg.Logger()

	if err := routes.SetPrefix(cfg.Routes.Prefix); err != nil {
		return err
	}

	repo, closeRepo, err := openRepository(ctx, cfg.Stocks, log)
	if err != nil {
		return err
	}

	problems := problem.New(problemsBaseURL, log)
	cs, err := controllers.New(controllers.Options{
		Repository: repo,
		Counter:    counter.NewAtomicCounter(),
		Assets:     public.FS,
		Problems:   problems,
		Logger:     log,
		Delay:      cfg.Async.Delay,
	})
	if err != nil {
		closeRepo()
		return err
	}

	r, err := routing.New(cs.Handlers(), routing.Options{
		Prefix: routes.Prefix(),
		Middleware: []router.HandlerFunc{
			recovery.New(recovery.WithLogger(log), recovery.WithProblemWriter(problems)),
			requestid.New(),
			accesslog.New(log, accesslog.WithExcludePrefixes(routes.Assets.Versioned("").URL)),
		},
		NotFound: func(c *router.Context) {
			problems.Write(c.Response, c.Request, problem.WithCode(errNoRoute, http.StatusNotFound, "route-not-found"))
		},
	})
	if err != nil {
		closeRepo()
		return err
	}

	config.Watch(v, log, func(next *config.Config) {
		reload(log, lg, cs, next)
	})

	log.Info("routes mounted", "prefix", routes.Prefix().String(), "count", len(routes.Definitions()))

	return serveUntilDone(ctx, server.New(cfg.Server, r, log), closeRepo)
}

// serveUntilDone runs srv and releases the repository exactly once, either
// as a shutdown hook or when Run returns without shutting down.
func serveUntilDone(ctx context.Context, srv *server.Server, closeRepo func()) error {
	release := sync.OnceFunc(closeRepo)
	defer release()

	srv.OnShutdown(func(context.Context) error {
		release()
		return nil
	})

	return srv.Run(ctx)
}

// openRepository returns the configured stock repository and its release
// function.
func openRepository(ctx context.Context, cfg config.Stocks, log *slog.Logger) (stocks.Repository, func(), error) {
	if cfg.Database.Enabled {
		repo, err := stocks.Connect(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using postgres stock repository", "host", cfg.Database.Host, "database", cfg.Database.Name)

		return repo, repo.Close, nil
	}

	var seed []stocks.Stock
	if cfg.Seed != "" {
		var err error
		if seed, err = stocks.LoadSeed(cfg.Seed); err != nil {
			return nil, nil, err
		}
	}
	repo, err := stocks.NewMemoryRepository(seed...)
	if err != nil {
		return nil, nil, fmt.Errorf("seed repository: %w", err)
	}
	log.Info("using in-memory stock repository", "seeded", len(seed))

	return repo, func() {}, nil
}

// reload applies a changed configuration. The route prefix and the
// repository are fixed for the process lifetime.
func reload(log *slog.Logger, lg logger.Logger, cs *controllers.Controllers, next *config.Config) {
	if err := logger.SetLevel(lg, next.Logging.Level); err != nil {
		log.Warn("log level not reloaded", "error", err)
	}
	cs.Async.SetDelay(next.Async.Delay)

	if p := routes.NormalizePrefix(next.Routes.Prefix); p != routes.Prefix().String() {
		log.Warn("route prefix change ignored until restart", "current", routes.Prefix().String(), "configured", p)
	}

	log.Info("config reloaded", "level", next.Logging.Level, "async_delay", next.Async.Delay)
}
