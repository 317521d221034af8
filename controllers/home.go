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
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"rivaas.dev/router"

	"stockproject/controllers/routes"
	"stockproject/controllers/routes/javascript"
	"stockproject/internal/problem"
	"stockproject/internal/stocks"
)

//go:embed views/*.html
var views embed.FS

type link struct {
	Label  string
	Method string
	URL    string
}

type stockRow struct {
	stocks.Stock
	URL string
}

type indexPage struct {
	Title            string
	Stylesheet       string
	Script           string
	JavaScriptRoutes string
	Links            []link
	Stocks           []stockRow
}

// HomeController serves the landing page and the client-side route table.
type HomeController struct {
	repo     stocks.Repository
	problems *problem.Writer
	logger   *slog.Logger
	title    string
	index    *template.Template
}

// NewHomeController parses the page templates.
func NewHomeController(repo stocks.Repository, problems *problem.Writer, logger *slog.Logger, title string) (*HomeController, error) {
	tmpl, err := template.ParseFS(views, "views/index.html")
	if err != nil {
		return nil, fmt.Errorf("parse views: %w", err)
	}

	return &HomeController{
		repo:     repo,
		problems: problems,
		logger:   logger,
		title:    title,
		index:    tmpl,
	}, nil
}

// Index renders the landing page. Every link on it comes from the reverse
// router.
func (h *HomeController) Index(c *router.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.problems.Write(c.Response, c.Request, err)
		return
	}

	page := indexPage{
		Title:            h.title,
		Stylesheet:       routes.Assets.Versioned("stylesheets/main.css").URL,
		Script:           routes.Assets.Versioned("javascripts/main.js").URL,
		JavaScriptRoutes: routes.HomeController.JavaScriptRoutes().URL,
		Links: []link{
			{Label: "Stocks", Method: http.MethodGet, URL: routes.StocksController.Index().URL},
			{Label: "Count", Method: http.MethodGet, URL: routes.CountController.Count().URL},
			{Label: "Message", Method: http.MethodGet, URL: routes.AsyncController.Message().URL},
			{Label: "JavaScript routes", Method: http.MethodGet, URL: routes.HomeController.JavaScriptRoutes().URL},
		},
	}
	for _, s := range list {
		page.Stocks = append(page.Stocks, stockRow{Stock: s, URL: routes.StocksController.Show(s.Symbol).URL})
	}

	var buf bytes.Buffer
	if err := h.index.Execute(&buf, page); err != nil {
		h.problems.Write(c.Response, c.Request, fmt.Errorf("render index: %w", err))
		return
	}

	logWriteError(h.logger, c, c.HTML(http.StatusOK, buf.String()))
}

// JavaScriptRoutes serves the client-side route descriptors as JSON.
func (h *HomeController) JavaScriptRoutes(c *router.Context) {
	c.Header("Cache-Control", "no-cache")
	logWriteError(h.logger, c, c.JSON(http.StatusOK, javascript.Descriptors()))
}
