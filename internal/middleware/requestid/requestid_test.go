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

package requestid

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rivaas.dev/router"
)

func serve(t *testing.T, mw router.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var seen string
	r := router.MustNew()
	r.Use(mw)
	r.GET("/", func(c *router.Context) {
		seen = FromRequest(c.Request)
		//nolint:errcheck // Test handler
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w, seen
}

func TestNew_GeneratesUUIDv7(t *testing.T) {
	t.Parallel()

	w, seen := serve(t, New(), httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get(Header)
	require.NotEmpty(t, id)
	assert.Equal(t, id, seen)

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), parsed.Version())
}

func TestNew_ULID(t *testing.T) {
	t.Parallel()

	w, _ := serve(t, New(WithULID()), httptest.NewRequest(http.MethodGet, "/", nil))

	id := w.Header().Get(Header)
	assert.Len(t, id, 26)
	_, err := ulid.ParseStrict(id)
	assert.NoError(t, err)
}

func TestNew_ClientID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		allow bool
		want  string
	}{
		{name: "trusted", allow: true, want: "client-id"},
		{name: "replaced", allow: false, want: "generated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("X-Correlation-ID", "client-id")

			mw := New(
				WithHeader("X-Correlation-ID"),
				WithAllowClientID(tt.allow),
				WithGenerator(func() string { return "generated" }),
			)
			w, seen := serve(t, mw, req)

			assert.Equal(t, tt.want, w.Header().Get("X-Correlation-ID"))
			assert.Equal(t, tt.want, seen)
		})
	}
}

func TestFromContext_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FromContext(t.Context()))
	assert.Equal(t, "abc", FromContext(WithID(t.Context(), "abc")))
}
