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

package problem

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockproject/internal/middleware/requestid"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func TestWriter_CodedError(t *testing.T) {
	t.Parallel()

	pw := New("https://stockproject.dev/problems", nil)
	req := httptest.NewRequest(http.MethodGet, "/stocks/XYZ", nil)
	req = req.WithContext(requestid.WithID(req.Context(), "req-1"))
	w := httptest.NewRecorder()

	pw.Write(w, req, WithCode(errors.New("stock XYZ is unknown"), http.StatusNotFound, "stock-not-found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "application/problem+json; charset=utf-8", w.Header().Get("Content-Type"))

	body := decode(t, w)
	assert.Equal(t, "https://stockproject.dev/problems/stock-not-found", body["type"])
	assert.Equal(t, "stock-not-found", body["code"])
	assert.Equal(t, "stock XYZ is unknown", body["detail"])
	assert.Equal(t, "/stocks/XYZ", body["instance"])
	assert.Equal(t, "req-1", body["request_id"])
	assert.NotEmpty(t, body["error_id"])
}

func TestWriter_InternalErrorHidesDetail(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	pw := New("", slog.New(slog.NewJSONHandler(&logs, nil)))
	w := httptest.NewRecorder()

	pw.Write(w, httptest.NewRequest(http.MethodGet, "/", nil), errors.New("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, "about:blank", body["type"])
	assert.Equal(t, "Internal Server Error", body["detail"])
	assert.Contains(t, logs.String(), "connection refused")
}

type detailedError struct {
	status  int
	details any
}

func (e *detailedError) Error() string   { return "detailed failure" }
func (e *detailedError) HTTPStatus() int { return e.status }
func (e *detailedError) Details() any    { return e.details }

func TestWriter_InternalErrorDropsDetailList(t *testing.T) {
	t.Parallel()

	pw := New("", nil)
	w := httptest.NewRecorder()

	pw.Write(w, httptest.NewRequest(http.MethodGet, "/", nil), &detailedError{
		status:  http.StatusInternalServerError,
		details: map[string]string{"dsn": "postgres://admin:secret@db/stocks"},
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.NotContains(t, body, "errors")
	assert.NotContains(t, w.Body.String(), "secret")
}

func TestWriter_ClientErrorKeepsDetails(t *testing.T) {
	t.Parallel()

	pw := New("", nil)
	w := httptest.NewRecorder()

	pw.Write(w, httptest.NewRequest(http.MethodPost, "/stocks", nil), &detailedError{
		status:  http.StatusBadRequest,
		details: map[string]string{"field": "name"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, map[string]any{"field": "name"}, body["errors"])
}

func TestWithStatus(t *testing.T) {
	t.Parallel()

	base := errors.New("boom")
	err := WithStatus(base, http.StatusConflict)

	require.ErrorIs(t, err, base)
	assert.Equal(t, "boom", err.Error())
	assert.Equal(t, http.StatusText(http.StatusTeapot), WithStatus(nil, http.StatusTeapot).Error())
}
