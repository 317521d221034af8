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
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
)

// ErrPrefixAlreadySet is returned when a prefix different from the one
// already stored is set.
var ErrPrefixAlreadySet = errors.New("routes: prefix already set")

// defaultPrefix is the mount point used when no prefix was configured.
const defaultPrefix = "/"

// RoutesPrefix holds the mount point under which every route is nested.
// The zero value reads as "/". The value can be stored once; reads are
// lock-free.
type RoutesPrefix struct {
	value atomic.Pointer[string]
}

// String returns the prefix. It returns "/" until Set has been called.
func (p *RoutesPrefix) String() string {
	if v := p.value.Load(); v != nil {
		return *v
	}

	return defaultPrefix
}

// IsSet reports whether Set has stored a value.
func (p *RoutesPrefix) IsSet() bool {
	return p.value.Load() != nil
}

// Set stores the normalised prefix. Setting the value already stored is a
// no-op; setting a different value returns ErrPrefixAlreadySet.
//
// Example:
//
//	var p routes.RoutesPrefix
//	_ = p.Set("app")  // stored as "/app"
//	_ = p.Set("/app") // no-op
//	err := p.Set("/v2") // ErrPrefixAlreadySet
func (p *RoutesPrefix) Set(prefix string) error {
	normalized := NormalizePrefix(prefix)
	if p.value.CompareAndSwap(nil, &normalized) {
		return nil
	}
	if current := p.String(); current != normalized {
		return fmt.Errorf("%w: have %q, got %q", ErrPrefixAlreadySet, current, normalized)
	}

	return nil
}

// separator returns the text placed between the prefix and a relative
// pattern: nothing when the prefix already ends with a slash.
func (p *RoutesPrefix) separator() string {
	if strings.HasSuffix(p.String(), "/") {
		return ""
	}

	return "/"
}

// join appends a relative path to the prefix.
func (p *RoutesPrefix) join(rel string) string {
	if rel == "" {
		return p.String()
	}

	return p.String() + p.separator() + rel
}

// NormalizePrefix trims surrounding whitespace, makes the prefix absolute and
// maps an empty prefix to "/". A trailing slash is kept as given.
func NormalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return defaultPrefix
	}
	if prefix[0] != '/' {
		prefix = "/" + prefix
	}

	return prefix
}

// prefix is shared by every reverse controller of this package and of the
// javascript subpackage.
var prefix = &RoutesPrefix{}

// Prefix returns the process-wide route prefix.
func Prefix() *RoutesPrefix {
	return prefix
}

// SetPrefix stores the process-wide route prefix. See RoutesPrefix.Set.
func SetPrefix(p string) error {
	return prefix.Set(p)
}
