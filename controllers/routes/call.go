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

import "strings"

// Call is the result of reverse routing: the HTTP method and the URL of a
// controller action.
type Call struct {
	Method   string
	URL      string
	Fragment string
}

// String returns the URL with the fragment appended, if any.
func (c Call) String() string {
	if c.Fragment == "" {
		return c.URL
	}

	return c.URL + "#" + c.Fragment
}

// WithFragment returns a copy of the call pointing at the given fragment.
func (c Call) WithFragment(fragment string) Call {
	c.Fragment = strings.TrimPrefix(fragment, "#")
	return c
}

// AbsoluteURL returns the call as an absolute http or https URL on host.
//
// Example:
//
//	routes.CountController.Count().AbsoluteURL(true, "example.com")
//	// "https://example.com/count"
func (c Call) AbsoluteURL(secure bool, host string) string {
	scheme := "http://"
	if secure {
		scheme = "https://"
	}

	return scheme + host + c.String()
}

// WebSocketURL returns the call as an absolute ws or wss URL on host.
func (c Call) WebSocketURL(secure bool, host string) string {
	scheme := "ws://"
	if secure {
		scheme = "wss://"
	}

	return scheme + host + c.URL
}
