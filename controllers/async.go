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
	"errors"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"rivaas.dev/router"

	"stockproject/internal/problem"
)

// Message is the body answered by AsyncController.Message.
const Message = "Hi!"

var errMessageCanceled = errors.New("request canceled before the message was ready")

// AsyncController answers after a delay without holding a worker thread.
type AsyncController struct {
	delay    atomic.Int64
	problems *problem.Writer
	logger   *slog.Logger
}

// NewAsyncController returns an AsyncController waiting d before answering.
func NewAsyncController(d time.Duration, problems *problem.Writer, logger *slog.Logger) *AsyncController {
	ac := &AsyncController{problems: problems, logger: logger}
	ac.SetDelay(d)

	return ac
}

// Delay returns the current delay.
func (ac *AsyncController) Delay() time.Duration {
	return time.Duration(ac.delay.Load())
}

// SetDelay changes the delay of subsequent requests. Negative values are
// treated as zero.
func (ac *AsyncController) SetDelay(d time.Duration) {
	ac.delay.Store(int64(max(d, 0)))
}

// Message waits for the delay and answers "Hi!". If the request is canceled
// first the handler gives up and answers 503.
func (ac *AsyncController) Message(c *router.Context) {
	ctx := c.Request.Context()

	timer := time.NewTimer(ac.Delay())
	defer timer.Stop()

	select {
	case <-timer.C:
		logWriteError(ac.logger, c, c.String(http.StatusOK, Message))
	case <-ctx.Done():
		ac.logger.DebugContext(ctx, "message canceled", "error", ctx.Err())
		ac.problems.Write(c.Response, c.Request, problem.WithStatus(errMessageCanceled, http.StatusServiceUnavailable))
	}
}
