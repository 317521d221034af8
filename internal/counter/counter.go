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

// Package counter provides the application-wide request counter.
package counter

import "sync/atomic"

// Counter hands out increasing numbers.
type Counter interface {
	// NextCount increments the counter and returns the new value.
	NextCount() int64
	// Current returns the value without incrementing it.
	Current() int64
}

// AtomicCounter is a Counter backed by an atomic integer. The zero value
// starts at 0 and is ready to use.
type AtomicCounter struct {
	n atomic.Int64
}

// NewAtomicCounter returns a counter starting at 0.
func NewAtomicCounter() *AtomicCounter {
	return &AtomicCounter{}
}

func (c *AtomicCounter) NextCount() int64 {
	return c.n.Add(1)
}

func (c *AtomicCounter) Current() int64 {
	return c.n.Load()
}
