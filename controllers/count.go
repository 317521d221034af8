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
	"log/slog"
	"net/http"
	"strconv"

	"rivaas.dev/router"

	"stockproject/internal/counter"
)

// CountController exposes the application-wide counter.
type CountController struct {
	counter counter.Counter
	logger  *slog.Logger
}

// NewCountController returns a CountController backed by c.
func NewCountController(c counter.Counter, logger *slog.Logger) *CountController {
	return &CountController{counter: c, logger: logger}
}

// Count increments the counter and answers with the new value.
func (cc *CountController) Count(c *router.Context) {
	n := cc.counter.NextCount()
	logWriteError(cc.logger, c, c.String(http.StatusOK, strconv.FormatInt(n, 10)))
}
