// Package clockreg resolves clock providers by stable id. Consumers hold a
// *Registry by reference; there is no implicit process-global lookup.
package clockreg

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/xclockdac/xclockd/internal/clockgen"
)

var (
	ErrClockExists = errors.New("clock already registered")
	ErrClockNil    = errors.New("clock is nil")
	ErrInvalidID   = errors.New("invalid clock id")
)

// Registry stores clock providers by id.
type Registry struct {
	mu    sync.RWMutex
	items map[string]clockgen.Clock
}

// NewRegistry creates an empty clock registry.
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]clockgen.Clock)}
}

// Register adds a provider under id. Ids are lowercase words separated by
// single dots, dashes, or underscores.
func (r *Registry) Register(id string, clk clockgen.Clock) error {
	if clk == nil {
		return ErrClockNil
	}
	id = strings.TrimSpace(id)
	if !isValidID(id) {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; ok {
		return fmt.Errorf("%w: %q", ErrClockExists, id)
	}
	r.items[id] = clk
	return nil
}

// Unregister drops a provider at detach.
func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
}

// Resolve returns the provider registered under id.
func (r *Registry) Resolve(id string) (clockgen.Clock, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clk, ok := r.items[id]
	return clk, ok
}

// IDs returns registered ids in deterministic order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func isValidID(id string) bool {
	if id == "" {
		return false
	}
	lastSep := false
	for i := 0; i < len(id); i++ {
		c := id[i]
		isLower := c >= 'a' && c <= 'z'
		isDigit := c >= '0' && c <= '9'
		isSep := c == '.' || c == '-' || c == '_'
		if !(isLower || isDigit || isSep) {
			return false
		}
		if (i == 0 || i == len(id)-1) && isSep {
			return false
		}
		if isSep && lastSep {
			return false
		}
		lastSep = isSep
	}
	return true
}
