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

// ReverseController is implemented by every reverse routing handle.
type ReverseController interface {
	// ControllerName returns the controller name, e.g. "StocksController".
	ControllerName() string
	// Prefix returns the current route prefix.
	Prefix() string
	// RoutesPrefix returns the shared prefix holder.
	RoutesPrefix() *RoutesPrefix
	// Definitions returns the controller's entries of the route table.
	Definitions() []Definition
}

type reverseController struct {
	name   string
	prefix *RoutesPrefix
}

func (c *reverseController) ControllerName() string {
	return c.name
}

func (c *reverseController) Prefix() string {
	return c.prefix.String()
}

func (c *reverseController) RoutesPrefix() *RoutesPrefix {
	return c.prefix
}

func (c *reverseController) Definitions() []Definition {
	var out []Definition
	for _, d := range definitions {
		if d.Controller() == c.name {
			out = append(out, d)
		}
	}

	return out
}

func (c *reverseController) call(action string, params map[string]string) Call {
	return MustLookup(c.name+"."+action).call(c.prefix, params)
}

// ReverseAssets builds URLs of static assets.
type ReverseAssets struct{ reverseController }

// NewReverseAssets returns a handle reading prefix.
func NewReverseAssets(prefix *RoutesPrefix) *ReverseAssets {
	return &ReverseAssets{reverseController{name: "Assets", prefix: prefix}}
}

// Versioned returns the URL of file below the assets root.
//
//	routes.Assets.Versioned("stylesheets/main.css").URL // "/assets/stylesheets/main.css"
func (c *ReverseAssets) Versioned(file string) Call {
	return c.call("versioned", map[string]string{"file": file})
}

// ReverseCountController builds URLs of the counter page.
type ReverseCountController struct{ reverseController }

// NewReverseCountController returns a handle reading prefix.
func NewReverseCountController(prefix *RoutesPrefix) *ReverseCountController {
	return &ReverseCountController{reverseController{name: "CountController", prefix: prefix}}
}

// Count returns the URL that increments and shows the counter.
func (c *ReverseCountController) Count() Call {
	return c.call("count", nil)
}

// ReverseStocksController builds URLs of the stock resource.
type ReverseStocksController struct{ reverseController }

// NewReverseStocksController returns a handle reading prefix.
func NewReverseStocksController(prefix *RoutesPrefix) *ReverseStocksController {
	return &ReverseStocksController{reverseController{name: "StocksController", prefix: prefix}}
}

// Index returns the URL listing all stocks.
func (c *ReverseStocksController) Index() Call {
	return c.call("index", nil)
}

// Show returns the URL of a single stock.
func (c *ReverseStocksController) Show(symbol string) Call {
	return c.call("show", map[string]string{"symbol": symbol})
}

// Create returns the URL stocks are posted to.
func (c *ReverseStocksController) Create() Call {
	return c.call("create", nil)
}

// Delete returns the URL that removes a stock.
func (c *ReverseStocksController) Delete(symbol string) Call {
	return c.call("delete", map[string]string{"symbol": symbol})
}

// ReverseHomeController builds URLs of the landing pages.
type ReverseHomeController struct{ reverseController }

// NewReverseHomeController returns a handle reading prefix.
func NewReverseHomeController(prefix *RoutesPrefix) *ReverseHomeController {
	return &ReverseHomeController{reverseController{name: "HomeController", prefix: prefix}}
}

// Index returns the URL of the landing page, which is the prefix itself.
func (c *ReverseHomeController) Index() Call {
	return c.call("index", nil)
}

// JavaScriptRoutes returns the URL serving the client-side route table.
func (c *ReverseHomeController) JavaScriptRoutes() Call {
	return c.call("javascriptRoutes", nil)
}

// ReverseAsyncController builds URLs of the delayed message endpoint.
type ReverseAsyncController struct{ reverseController }

// NewReverseAsyncController returns a handle reading prefix.
func NewReverseAsyncController(prefix *RoutesPrefix) *ReverseAsyncController {
	return &ReverseAsyncController{reverseController{name: "AsyncController", prefix: prefix}}
}

// Message returns the URL of the delayed message.
func (c *ReverseAsyncController) Message() Call {
	return c.call("message", nil)
}

// Reverse routing handles. They are created once and share Prefix().
var (
	Assets            = NewReverseAssets(prefix)
	CountController   = NewReverseCountController(prefix)
	StocksController  = NewReverseStocksController(prefix)
	HomeController    = NewReverseHomeController(prefix)
	AsyncController   = NewReverseAsyncController(prefix)
	controllerHandles = []ReverseController{Assets, CountController, StocksController, HomeController, AsyncController}
)

// Controllers returns the five handles in declaration order.
func Controllers() []ReverseController {
	out := make([]ReverseController, len(controllerHandles))
	copy(out, controllerHandles)

	return out
}
