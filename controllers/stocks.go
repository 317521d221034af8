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

package controllers

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"rivaas.dev/router"

	"stockproject/controllers/routes"
	"stockproject/internal/problem"
	"stockproject/internal/stocks"
)

const maxStockBody = 64 << 10

// StocksController is a JSON resource over a stock repository.
type StocksController struct {
	repo     stocks.Repository
	problems *problem.Writer
	logger   *slog.Logger
}

// NewStocksController returns a StocksController serving repo.
func NewStocksController(repo stocks.Repository, problems *problem.Writer, logger *slog.Logger) *StocksController {
	return &StocksController{repo: repo, problems: problems, logger: logger}
}

// Index lists all stocks.
func (sc *StocksController) Index(c *router.Context) {
	list, err := sc.repo.List(c.Request.Context())
	if err != nil {
		sc.problems.Write(c.Response, c.Request, err)
		return
	}
	if list == nil {
		list = []stocks.Stock{}
	}

	logWriteError(sc.logger, c, c.JSON(http.StatusOK, list))
}

// Show returns the stock named by the symbol parameter.
func (sc *StocksController) Show(c *router.Context) {
	symbol, ok := sc.symbol(c)
	if !ok {
		return
	}

	s, err := sc.repo.Get(c.Request.Context(), symbol)
	if err != nil {
		sc.problems.Write(c.Response, c.Request, err)
		return
	}

	logWriteError(sc.logger, c, c.JSON(http.StatusOK, s))
}

// Create stores a new stock from the JSON body and answers 201 with its
// location. An existing symbol is a conflict.
func (sc *StocksController) Create(c *router.Context) {
	ctx := c.Request.Context()

	var in stocks.Stock
	dec := json.NewDecoder(http.MaxBytesReader(c.Response, c.Request.Body, maxStockBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		sc.problems.Write(c.Response, c.Request,
			problem.WithCode(fmt.Errorf("decode stock: %w", err), http.StatusBadRequest, "invalid-body"))
		return
	}

	s, err := stocks.Normalize(in)
	if err != nil {
		sc.problems.Write(c.Response, c.Request, err)
		return
	}

	created, err := sc.repo.Create(ctx, s)
	if err != nil {
		sc.problems.Write(c.Response, c.Request, err)
		return
	}

	sc.logger.InfoContext(ctx, "stock created", "symbol", created.Symbol)
	c.Header("Location", routes.StocksController.Show(created.Symbol).URL)
	logWriteError(sc.logger, c, c.JSON(http.StatusCreated, created))
}

// Delete removes the stock named by the symbol parameter.
func (sc *StocksController) Delete(c *router.Context) {
	symbol, ok := sc.symbol(c)
	if !ok {
		return
	}

	if err := sc.repo.Delete(c.Request.Context(), symbol); err != nil {
		sc.problems.Write(c.Response, c.Request, err)
		return
	}

	sc.logger.InfoContext(c.Request.Context(), "stock deleted", "symbol", symbol)
	c.Response.WriteHeader(http.StatusNoContent)
}

func (sc *StocksController) symbol(c *router.Context) (string, bool) {
	symbol := stocks.NormalizeSymbol(c.Param("symbol"))
	if err := stocks.ValidateSymbol(symbol); err != nil {
		sc.problems.Write(c.Response, c.Request, err)
		return "", false
	}

	return symbol, true
}
