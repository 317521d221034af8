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

// Package routes is the server-side reverse router of the application.
//
// It exposes one read-only handle per controller (Assets, CountController,
// StocksController, HomeController, AsyncController). Each handle builds the
// URL of its controller's actions from the shared route prefix, so callers
// never hardcode path strings:
//
//	loc := routes.StocksController.Show("AAPL").URL // "/stocks/AAPL"
//	css := routes.Assets.Versioned("stylesheets/main.css")
//
// # Route Prefix
//
// Every handle reads the same RoutesPrefix. The prefix is set once during
// startup (from configuration) and is immutable afterwards:
//
//	if err := routes.SetPrefix(cfg.Routes.Prefix); err != nil {
//	    return err
//	}
//
// Until SetPrefix is called the prefix reads as "/".
//
// # Route Table
//
// Definitions returns the declarative route table the handles are built
// against. The same table is registered on the HTTP router, which keeps the
// reverse URLs and the served paths in agreement.
//
// # Concurrency
//
// The handles are package-level singletons created at package
// initialisation and never mutated. They are safe for concurrent use.
// The client-side counterparts live in the javascript subpackage.
package routes
