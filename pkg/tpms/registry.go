// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Yago Lizarribar

package tpms

import (
	"sort"
	"sync"
)

// Registry maps protocol names to encoder factories. Registration is
// explicit and happens once at process start; there is no implicit encoder
// discovery, which keeps the supported protocol set auditable.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]func() Encoder
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]func() Encoder)}
}

// NewDefaultRegistry creates a registry holding every supported protocol.
// This is the single registration site: adding a protocol means adding a
// line here.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("renault", func() Encoder { return NewRenaultEncoder() })
	r.Register("mazda", func() Encoder { return NewMazdaEncoder() })
	r.Register("toyota", func() Encoder { return NewToyotaEncoder() })
	return r
}

// Register adds a protocol factory under the given name, replacing any
// previous registration.
func (r *Registry) Register(name string, factory func() Encoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Lookup returns a fresh encoder for the named protocol. An unregistered
// name fails with an UnknownProtocolError listing the known protocols.
func (r *Registry) Lookup(name string) (Encoder, error) {
	r.mu.RLock()
	factory, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &UnknownProtocolError{Name: name, Known: r.Protocols()}
	}
	return factory(), nil
}

// Protocols returns the sorted list of registered protocol names.
func (r *Registry) Protocols() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
