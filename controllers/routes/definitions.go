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

package routes

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"rivaas.dev/router/route"
)

// Definition is one entry of the route table: a named controller action, its
// HTTP method and its path pattern relative to the route prefix.
//
// Patterns use ":name" for a single path segment and a trailing "*name" for
// the remainder of the path.
type Definition struct {
	Name    string // "<Controller>.<action>", also the router's route name
	Method  string
	Pattern string
}

var definitions = []Definition{
	{Name: "HomeController.index", Method: http.MethodGet, Pattern: ""},
	{Name: "HomeController.javascriptRoutes", Method: http.MethodGet, Pattern: "javascriptRoutes"},
	{Name: "CountController.count", Method: http.MethodGet, Pattern: "count"},
	{Name: "AsyncController.message", Method: http.MethodGet, Pattern: "message"},
	{Name: "StocksController.index", Method: http.MethodGet, Pattern: "stocks"},
	{Name: "StocksController.show", Method: http.MethodGet, Pattern: "stocks/:symbol"},
	{Name: "StocksController.create", Method: http.MethodPost, Pattern: "stocks"},
	{Name: "StocksController.delete", Method: http.MethodDelete, Pattern: "stocks/:symbol"},
	{Name: "Assets.versioned", Method: http.MethodGet, Pattern: "assets/*file"},
}

// Definitions returns a copy of the route table in registration order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)

	return out
}

// Lookup returns the definition registered under name.
func Lookup(name string) (Definition, bool) {
	for _, d := range definitions {
		if d.Name == name {
			return d, true
		}
	}

	return Definition{}, false
}

// MustLookup is like Lookup but panics when name is not in the table.
func MustLookup(name string) Definition {
	d, ok := Lookup(name)
	if !ok {
		panic(fmt.Sprintf("routes: unknown route %q", name))
	}

	return d
}

// Controller returns the controller part of the name.
func (d Definition) Controller() string {
	controller, _, _ := strings.Cut(d.Name, ".")
	return controller
}

// Action returns the action part of the name.
func (d Definition) Action() string {
	_, action, _ := strings.Cut(d.Name, ".")
	return action
}

// Params returns the parameter names of the pattern in order, including a
// trailing wildcard.
func (d Definition) Params() []string {
	var params []string
	for seg := range strings.SplitSeq(d.Pattern, "/") {
		if len(seg) > 1 && (seg[0] == ':' || seg[0] == '*') {
			params = append(params, seg[1:])
		}
	}

	return params
}

// Wildcard returns the name of the trailing wildcard parameter, if any.
func (d Definition) Wildcard() (string, bool) {
	i := strings.LastIndexByte(d.Pattern, '*')
	if i < 0 {
		return "", false
	}

	return d.Pattern[i+1:], true
}

// Path returns the pattern joined to prefix with its placeholders kept,
// e.g. "/app/stocks/:symbol".
func (d Definition) Path(p *RoutesPrefix) string {
	return p.join(d.Pattern)
}

// RouterWildcardParam is the parameter under which the HTTP router exposes
// the remainder matched by a trailing "/*".
const RouterWildcardParam = "filepath"

// RouterPath returns the path to register on the HTTP router. The router
// captures the path remainder with an unnamed "/*" suffix and reports it as
// RouterWildcardParam.
func (d Definition) RouterPath(p *RoutesPrefix) string {
	path := d.Path(p)
	if name, ok := d.Wildcard(); ok {
		path = strings.TrimSuffix(path, "*"+name) + "*"
	}

	return path
}

// Build returns the concrete URL for params. Segment parameters are
// path-escaped; the wildcard value is escaped segment by segment so that its
// slashes survive. Build panics when a segment parameter is missing.
func (d Definition) Build(p *RoutesPrefix, params map[string]string) string {
	head := d.Pattern
	wildcard, hasWildcard := d.Wildcard()
	if hasWildcard {
		head = strings.TrimSuffix(strings.TrimSuffix(head, "*"+wildcard), "/")
	}

	var rel string
	if head != "" {
		u, err := route.ParseReversePattern(head).BuildURL(params, nil)
		if err != nil {
			panic(fmt.Sprintf("routes: %s: %v", d.Name, err))
		}
		rel = strings.TrimPrefix(u, "/")
	}
	if hasWildcard {
		rel += "/" + escapeTail(params[wildcard])
	}

	return p.join(rel)
}

func (d Definition) call(p *RoutesPrefix, params map[string]string) Call {
	return Call{Method: d.Method, URL: d.Build(p, params)}
}

// escapeTail escapes every segment of a slash separated path.
func escapeTail(tail string) string {
	segments := strings.Split(strings.TrimPrefix(tail, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}

	return strings.Join(segments, "/")
}
