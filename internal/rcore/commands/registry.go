// ============================================================================
// rair - Reverse Engineering Shell
// ============================================================================
//
// Package:     commands
// Description: Command registry mapping names to shared command handlers
// Author:      msto63
// Created:     2025-03-02
// License:     MIT
// ============================================================================

package commands

import (
	"sort"
	"strings"
	"sync"

	rairlog "github.com/msto63/rair/foundation/core/log"
	"github.com/msto63/rair/foundation/utils/stringx"
)

// Registry maps command names (long names and short aliases) to handlers.
// One handler may be bound under several names. Names are matched exactly;
// fuzzy matching is only done by Suggest.
//
// The registry is shared between the execution context, which registers
// commands, and the line editor, which reads names for completion, so all
// access goes through an RWMutex.
type Registry[H any] struct {
	handlers map[string]H
	order    []string
	logger   *rairlog.Logger
	mutex    sync.RWMutex
}

// Options configures a Registry
type Options struct {
	Logger *rairlog.Logger
}

// Group is one handler together with every name it is registered under, in
// registration order.
type Group[H any] struct {
	Handler H
	Names   []string
}

// NewRegistry creates an empty registry
func NewRegistry[H any](opts Options) *Registry[H] {
	if opts.Logger == nil {
		opts.Logger = rairlog.GetDefault()
	}

	return &Registry[H]{
		handlers: make(map[string]H),
		logger:   opts.Logger.WithField("component", "command-registry"),
	}
}

// Add binds handler under name. It returns false without touching the
// registry when name is blank or already bound.
func (r *Registry[H]) Add(name string, handler H) bool {
	if stringx.IsBlank(name) {
		return false
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.handlers[name]; exists {
		r.logger.Debug("Command name already bound", rairlog.Fields{"name": name})
		return false
	}

	r.handlers[name] = handler
	r.order = append(r.order, name)

	r.logger.Debug("Command registered", rairlog.Fields{
		"name":  name,
		"count": len(r.order),
	})

	return true
}

// Find returns the handler bound to exactly name
func (r *Registry[H]) Find(name string) (H, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	handler, ok := r.handlers[name]
	return handler, ok
}

// Len returns the number of bound names
func (r *Registry[H]) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return len(r.order)
}

// Names returns every bound name in registration order
func (r *Registry[H]) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Complete returns the bound names starting with prefix, in registration order
func (r *Registry[H]) Complete(prefix string) []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var matches []string
	for _, name := range r.order {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}
	return matches
}

// Suggest returns the bound names within maxDistance edits of name, closest
// first. Names at the same distance keep their registration order.
func (r *Registry[H]) Suggest(name string, maxDistance int) []string {
	type candidate struct {
		name     string
		distance int
	}

	r.mutex.RLock()
	candidates := make([]candidate, 0, len(r.order))
	for _, registered := range r.order {
		if d := stringx.Levenshtein(name, registered); d <= maxDistance {
			candidates = append(candidates, candidate{name: registered, distance: d})
		}
	}
	r.mutex.RUnlock()

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	suggestions := make([]string, len(candidates))
	for i, c := range candidates {
		suggestions[i] = c.name
	}
	return suggestions
}

// Groups collects names bound to the same handler. same decides handler
// identity; groups are ordered by the first registration of each handler.
func (r *Registry[H]) Groups(same func(a, b H) bool) []Group[H] {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var groups []Group[H]
	for _, name := range r.order {
		handler := r.handlers[name]
		found := false
		for i := range groups {
			if same(groups[i].Handler, handler) {
				groups[i].Names = append(groups[i].Names, name)
				found = true
				break
			}
		}
		if !found {
			groups = append(groups, Group[H]{Handler: handler, Names: []string{name}})
		}
	}
	return groups
}
