// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package provider

import (
	"slices"
	"sync"
)

// Manager has one [Provider] per run and tag, all sharing one [Fetcher].
type Manager struct {
	fetcher Fetcher

	mu        sync.Mutex
	providers map[string]map[string]*Provider
}

// NewManager returns a new manager fetching through f.
func NewManager(f Fetcher) *Manager {
	return &Manager{fetcher: f, providers: map[string]map[string]*Provider{}}
}

// Provider returns the provider of the run and tag, making it
// the first time. It returns nil if the run or the tag is empty.
func (mg *Manager) Provider(run, tag string) *Provider {
	if run == "" || tag == "" {
		return nil
	}
	mg.mu.Lock()
	defer mg.mu.Unlock()
	tags := mg.providers[run]
	if tags == nil {
		tags = map[string]*Provider{}
		mg.providers[run] = tags
	}
	p := tags[tag]
	if p == nil {
		p = NewProvider(mg.fetcher, run, tag)
		tags[tag] = p
	}
	return p
}

// Runs returns the runs with providers, sorted.
func (mg *Manager) Runs() []string {
	mg.mu.Lock()
	defer mg.mu.Unlock()
	runs := make([]string, 0, len(mg.providers))
	for run := range mg.providers {
		runs = append(runs, run)
	}
	slices.Sort(runs)
	return runs
}

// Remove drops the provider of the run and tag, and the run
// when it has no more tags.
func (mg *Manager) Remove(run, tag string) {
	mg.mu.Lock()
	defer mg.mu.Unlock()
	tags := mg.providers[run]
	delete(tags, tag)
	if len(tags) == 0 {
		delete(mg.providers, run)
	}
}
