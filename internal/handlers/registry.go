// Package handlers maps callback names, as written in manifests and stored
// control sets, to viewctrls callbacks.
package handlers

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/agnivade/levenshtein"

	"github.com/jask/viewctrls/internal/viewctrls"
)

// maxSuggestDistance bounds the edit distance of did-you-mean suggestions.
const maxSuggestDistance = 3

// Registry holds named callbacks.
type Registry struct {
	handlers map[string]viewctrls.Callback
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{handlers: make(map[string]viewctrls.Callback)}
}

// Register adds a named callback. Registering a name twice, or a nil
// callback, is a programming error and panics.
func (r *Registry) Register(name string, cb viewctrls.Callback) {
	if cb == nil {
		panic(fmt.Sprintf("handler '%s' is nil", name))
	}
	if _, exists := r.handlers[name]; exists {
		panic(fmt.Sprintf("handler with name '%s' already registered", name))
	}
	slog.Debug("Registering handler.", "name", name)
	r.handlers[name] = cb
}

// Lookup returns the callback registered under name.
func (r *Registry) Lookup(name string) (viewctrls.Callback, error) {
	if cb, ok := r.handlers[name]; ok {
		return cb, nil
	}
	return nil, &UnknownHandlerError{Name: name, Suggestion: r.suggest(name)}
}

// Has reports whether name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) suggest(name string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, candidate := range r.Names() {
		if d := levenshtein.ComputeDistance(name, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

// UnknownHandlerError is returned by Lookup for unregistered names.
type UnknownHandlerError struct {
	Name       string
	Suggestion string
}

func (e *UnknownHandlerError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("unknown handler %q (did you mean %q?)", e.Name, e.Suggestion)
	}
	return fmt.Sprintf("unknown handler %q", e.Name)
}

// Resolve looks up every non-empty name in names and returns the callbacks
// in the same order. Empty names resolve to nil so alias fields stay unset.
func (r *Registry) Resolve(names ...string) ([]viewctrls.Callback, error) {
	out := make([]viewctrls.Callback, len(names))
	for i, name := range names {
		if name == "" {
			continue
		}
		cb, err := r.Lookup(name)
		if err != nil {
			return nil, err
		}
		out[i] = cb
	}
	return out, nil
}
