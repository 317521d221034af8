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

// Package controllers holds the HTTP handlers of the application. Handlers
// are plain rivaas router handlers; Controllers.Handlers maps them to the
// route names of package routes so the router can be built from the route
// table.
package controllers

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"rivaas.dev/router"

	"stockproject/controllers/routes"
	"stockproject/internal/counter"
	"stockproject/internal/problem"
	"stockproject/internal/stocks"
)

// Options carries the dependencies of the controllers.
type Options struct {
	Repository stocks.Repository
	Counter    counter.Counter
	Assets     fs.FS
	Problems   *problem.Writer
	Logger     *slog.Logger
	// Delay is the initial wait of AsyncController.Message.
	Delay time.Duration
	// Title is shown on the landing page.
	Title string
}

// Controllers groups one instance of every controller.
type Controllers struct {
	Assets *Assets
	Count  *CountController
	Stocks *StocksController
	Home   *HomeController
	Async  *AsyncController
}

// New builds the controllers.
func New(opts Options) (*Controllers, error) {
	if opts.Repository == nil {
		return nil, errors.New("controllers: repository is required")
	}
	if opts.Assets == nil {
		return nil, errors.New("controllers: assets filesystem is required")
	}
	if opts.Counter == nil {
		opts.Counter = counter.NewAtomicCounter()
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	if opts.Problems == nil {
		opts.Problems = problem.New("", opts.Logger)
	}
	if opts.Title == "" {
		opts.Title = "Stocks"
	}

	assets, err := NewAssets(opts.Assets, opts.Problems)
	if err != nil {
		return nil, err
	}
	home, err := NewHomeController(opts.Repository, opts.Problems, opts.Logger, opts.Title)
	if err != nil {
		return nil, err
	}

	return &Controllers{
		Assets: assets,
		Count:  NewCountController(opts.Counter, opts.Logger),
		Stocks: NewStocksController(opts.Repository, opts.Problems, opts.Logger),
		Home:   home,
		Async:  NewAsyncController(opts.Delay, opts.Problems, opts.Logger),
	}, nil
}

// Handlers returns the handler of every route, keyed by route name.
func (cs *Controllers) Handlers() map[string]router.HandlerFunc {
	return map[string]router.HandlerFunc{
		"HomeController.index":            cs.Home.Index,
		"HomeController.javascriptRoutes": cs.Home.JavaScriptRoutes,
		"CountController.count":           cs.Count.Count,
		"AsyncController.message":         cs.Async.Message,
		"StocksController.index":          cs.Stocks.Index,
		"StocksController.show":           cs.Stocks.Show,
		"StocksController.create":         cs.Stocks.Create,
		"StocksController.delete":         cs.Stocks.Delete,
		"Assets.versioned":                cs.Assets.Versioned,
	}
}

// Check reports route names without a handler and handlers without a route.
func (cs *Controllers) Check() error {
	handlers := cs.Handlers()

	var errs []error
	for _, d := range routes.Definitions() {
		if _, ok := handlers[d.Name]; !ok {
			errs = append(errs, fmt.Errorf("route %s has no handler", d.Name))
		}
		delete(handlers, d.Name)
	}
	for name := range handlers {
		errs = append(errs, fmt.Errorf("handler %s has no route", name))
	}

	return errors.Join(errs...)
}

// logWriteError logs a failed response write. The client is usually gone.
func logWriteError(logger *slog.Logger, c *router.Context, err error) {
	if err != nil {
		logger.WarnContext(c.Request.Context(), "write response",
			"path", c.Request.URL.Path,
			"error", err,
		)
	}
}
