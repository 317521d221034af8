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

package javascript

import "stockproject/controllers/routes"

// ReverseAssets describes the asset route.
type ReverseAssets struct{ reverseController }

// NewReverseAssets returns a handle reading prefix.
func NewReverseAssets(prefix *routes.RoutesPrefix) *ReverseAssets {
	return &ReverseAssets{reverseController{name: "Assets", prefix: prefix}}
}

// Versioned describes the asset route; the client supplies "file".
func (c *ReverseAssets) Versioned() JavaScriptReverseRoute {
	return c.route("versioned")
}

// ReverseCountController describes the counter route.
type ReverseCountController struct{ reverseController }

// NewReverseCountController returns a handle reading prefix.
func NewReverseCountController(prefix *routes.RoutesPrefix) *ReverseCountController {
	return &ReverseCountController{reverseController{name: "CountController", prefix: prefix}}
}

func (c *ReverseCountController) Count() JavaScriptReverseRoute {
	return c.route("count")
}

// ReverseStocksController describes the stock resource routes.
type ReverseStocksController struct{ reverseController }

// NewReverseStocksController returns a handle reading prefix.
func NewReverseStocksController(prefix *routes.RoutesPrefix) *ReverseStocksController {
	return &ReverseStocksController{reverseController{name: "StocksController", prefix: prefix}}
}

func (c *ReverseStocksController) Index() JavaScriptReverseRoute {
	return c.route("index")
}

// Show describes the single stock route; the client supplies "symbol".
func (c *ReverseStocksController) Show() JavaScriptReverseRoute {
	return c.route("show")
}

func (c *ReverseStocksController) Create() JavaScriptReverseRoute {
	return c.route("create")
}

// Delete describes the removal route; the client supplies "symbol".
func (c *ReverseStocksController) Delete() JavaScriptReverseRoute {
	return c.route("delete")
}

// ReverseHomeController describes the landing routes.
type ReverseHomeController struct{ reverseController }

// NewReverseHomeController returns a handle reading prefix.
func NewReverseHomeController(prefix *routes.RoutesPrefix) *ReverseHomeController {
	return &ReverseHomeController{reverseController{name: "HomeController", prefix: prefix}}
}

func (c *ReverseHomeController) Index() JavaScriptReverseRoute {
	return c.route("index")
}

func (c *ReverseHomeController) JavaScriptRoutes() JavaScriptReverseRoute {
	return c.route("javascriptRoutes")
}

// ReverseAsyncController describes the delayed message route.
type ReverseAsyncController struct{ reverseController }

// NewReverseAsyncController returns a handle reading prefix.
func NewReverseAsyncController(prefix *routes.RoutesPrefix) *ReverseAsyncController {
	return &ReverseAsyncController{reverseController{name: "AsyncController", prefix: prefix}}
}

func (c *ReverseAsyncController) Message() JavaScriptReverseRoute {
	return c.route("message")
}

// Client-side handles. They share routes.Prefix() with the server-side ones.
var (
	Assets            = NewReverseAssets(routes.Prefix())
	CountController   = NewReverseCountController(routes.Prefix())
	StocksController  = NewReverseStocksController(routes.Prefix())
	HomeController    = NewReverseHomeController(routes.Prefix())
	AsyncController   = NewReverseAsyncController(routes.Prefix())
	controllerHandles = []ReverseController{Assets, CountController, StocksController, HomeController, AsyncController}
)

// Controllers returns the five handles in declaration order.
func Controllers() []ReverseController {
	out := make([]ReverseController, len(controllerHandles))
	copy(out, controllerHandles)

	return out
}

// Descriptors returns the descriptors of every controller, in route table
// order.
func Descriptors() []JavaScriptReverseRoute {
	defs := routes.Definitions()
	out := make([]JavaScriptReverseRoute, 0, len(defs))
	for _, d := range defs {
		out = append(out, describe(routes.Prefix(), d))
	}

	return out
}
