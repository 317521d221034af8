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

// Package javascript is the client-side counterpart of package routes.
//
// It holds one handle per controller, reading the same route prefix as the
// server-side handles. Instead of concrete URLs the handles return
// descriptors whose URL keeps its ":param" and "*param" placeholders, for
// browser code to fill in:
//
//	d := javascript.StocksController.Show()
//	// {Name: "StocksController.show", Method: "GET", URL: "/stocks/:symbol", Params: ["symbol"]}
//
// Descriptors returns the whole table, which the HomeController serves as
// JSON.
package javascript

import "stockproject/controllers/routes"

// JavaScriptReverseRoute describes one controller action for a client-side
// router.
type JavaScriptReverseRoute struct {
	Name   string   `json:"name"`
	Method string   `json:"method"`
	URL    string   `json:"url"`
	Params []string `json:"params,omitempty"`
}

// ReverseController is implemented by every client-side handle.
type ReverseController interface {
	ControllerName() string
	Prefix() string
	RoutesPrefix() *routes.RoutesPrefix
	Descriptors() []JavaScriptReverseRoute
}

type reverseController struct {
	name   string
	prefix *routes.RoutesPrefix
}

func (c *reverseController) ControllerName() string {
	return c.name
}

func (c *reverseController) Prefix() string {
	return c.prefix.String()
}

func (c *reverseController) RoutesPrefix() *routes.RoutesPrefix {
	return c.prefix
}

// Descriptors returns one descriptor per action of the controller.
func (c *reverseController) Descriptors() []JavaScriptReverseRoute {
	var out []JavaScriptReverseRoute
	for _, d := range routes.Definitions() {
		if d.Controller() == c.name {
			out = append(out, describe(c.prefix, d))
		}
	}

	return out
}

func (c *reverseController) route(action string) JavaScriptReverseRoute {
	return describe(c.prefix, routes.MustLookup(c.name+"."+action))
}

func describe(prefix *routes.RoutesPrefix, d routes.Definition) JavaScriptReverseRoute {
	return JavaScriptReverseRoute{
		Name:   d.Name,
		Method: d.Method,
		URL:    d.Path(prefix),
		Params: d.Params(),
	}
}
