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

// Package routing builds the HTTP router from the route table of package
// routes. Every route is registered under the route prefix and named after
// its definition, so router.URLFor and the reverse handles agree.
package routing

import (
	"errors"
	"fmt"
	"net/http"
	"sort"

	"rivaas.dev/router"

	"stockproject/controllers/routes"
)

// ErrMissingHandler is returned when a route has no handler.
var ErrMissingHandler = errors.New("routing: missing handler")

// Options configures New.
type Options struct {
	// Prefix is the mount point. Defaults to routes.Prefix().
	Prefix *routes.RoutesPrefix
	// Middleware runs before every handler, in order.
	Middleware []router.HandlerFunc
	// NotFound answers unmatched requests.
	NotFound router.HandlerFunc
	// RouterOptions are passed to router.New.
	RouterOptions []router.Option
}

// New returns a frozen router serving handlers, keyed by route name.
func New(handlers map[string]router.HandlerFunc, opts Options) (*router.Router, error) {
	prefix := opts.Prefix
	if prefix == nil {
		prefix = routes.Prefix()
	}

	defs := routes.Definitions()
	var missing []error
	for _, d := range defs {
		if handlers[d.Name] == nil {
			missing = append(missing, fmt.Errorf("%w: %s", ErrMissingHandler, d.Name))
		}
	}
	if err := errors.Join(missing...); err != nil {
		return nil, err
	}

	r, err := router.New(opts.RouterOptions...)
	if err != nil {
		return nil, fmt.Errorf("create router: %w", err)
	}
	if len(opts.Middleware) > 0 {
		r.Use(opts.Middleware...)
	}
	if opts.NotFound != nil {
		r.NoRoute(opts.NotFound)
	}

	for _, d := range defs {
		if err := register(r, prefix, d, handlers[d.Name]); err != nil {
			return nil, err
		}
	}
	r.Freeze()

	return r, nil
}

func register(r *router.Router, prefix *routes.RoutesPrefix, d routes.Definition, h router.HandlerFunc) error {
	path := d.RouterPath(prefix)

	switch d.Method {
	case http.MethodGet:
		r.GET(path, h).SetName(d.Name)
	case http.MethodPost:
		r.POST(path, h).SetName(d.Name)
	case http.MethodPut:
		r.PUT(path, h).SetName(d.Name)
	case http.MethodPatch:
		r.PATCH(path, h).SetName(d.Name)
	case http.MethodDelete:
		r.DELETE(path, h).SetName(d.Name)
	default:
		return fmt.Errorf("routing: %s: unsupported method %s", d.Name, d.Method)
	}

	return nil
}

// Entry is one row of the routing table.
type Entry struct {
	Name   string `json:"name" yaml:"name"`
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`
}

// Describe lists the routes under prefix, ordered by path then method.
func Describe(prefix *routes.RoutesPrefix) []Entry {
	defs := routes.Definitions()
	out := make([]Entry, 0, len(defs))
	for _, d := range defs {
		out = append(out, Entry{Name: d.Name, Method: d.Method, Path: d.Path(prefix)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Path == out[j].Path {
			return out[i].Method < out[j].Method
		}

		return out[i].Path < out[j].Path
	})

	return out
}
