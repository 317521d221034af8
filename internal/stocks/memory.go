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

package stocks

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// MemoryRepository is a Repository kept in memory. It is safe for
// concurrent use.
type MemoryRepository struct {
	mu     sync.RWMutex
	stocks map[string]Stock
	now    func() time.Time
}

// NewMemoryRepository returns a repository holding the given stocks.
func NewMemoryRepository(initial ...Stock) (*MemoryRepository, error) {
	r := &MemoryRepository{
		stocks: make(map[string]Stock, len(initial)),
		now:    time.Now,
	}
	for _, s := range initial {
		if err := r.Put(context.Background(), s); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *MemoryRepository) List(_ context.Context) ([]Stock, error) {
	r.mu.RLock()
	out := make([]Stock, 0, len(r.stocks))
	for _, s := range r.stocks {
		out = append(out, s)
	}
	r.mu.RUnlock()

	slices.SortFunc(out, func(a, b Stock) int {
		return strings.Compare(a.Symbol, b.Symbol)
	})

	return out, nil
}

func (r *MemoryRepository) Get(_ context.Context, symbol string) (Stock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stocks[symbol]
	if !ok {
		return Stock{}, notFound(symbol)
	}

	return s, nil
}

// Create validates s and stores it unless its symbol is taken. The check and
// the write happen under one lock.
func (r *MemoryRepository) Create(_ context.Context, s Stock) (Stock, error) {
	s, err := Normalize(s)
	if err != nil {
		return Stock{}, err
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = r.now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stocks[s.Symbol]; ok {
		return Stock{}, exists(s.Symbol)
	}
	r.stocks[s.Symbol] = s

	return s, nil
}

// Put validates s, stamps UpdatedAt when it is zero and stores it.
func (r *MemoryRepository) Put(_ context.Context, s Stock) error {
	s, err := Normalize(s)
	if err != nil {
		return err
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = r.now().UTC()
	}

	r.mu.Lock()
	r.stocks[s.Symbol] = s
	r.mu.Unlock()

	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, symbol string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stocks[symbol]; !ok {
		return notFound(symbol)
	}
	delete(r.stocks, symbol)

	return nil
}

// seedFile is the layout of a seed file.
type seedFile struct {
	Stocks []Stock `yaml:"stocks"`
}

// ParseSeed decodes a YAML seed document.
//
//	stocks:
//	  - symbol: AAPL
//	    name: Apple Inc.
//	    price: 189.84
//	    currency: USD
func ParseSeed(data []byte) ([]Stock, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}

	return seed.Stocks, nil
}

// LoadSeed reads and decodes a seed file.
func LoadSeed(path string) ([]Stock, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}

	return ParseSeed(data)
}
