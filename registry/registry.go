// Package registry keeps wrapped entities addressable by name so that outer
// surfaces (the CLI report, the MCP server) can find their histories.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/jonwraymond/scribe/scribe"
)

var (
	// ErrEntityExists is returned when registering a duplicate name.
	ErrEntityExists = errors.New("entity already registered")

	// ErrEntityNotFound is returned by Lookup for an unknown name.
	ErrEntityNotFound = errors.New("entity not found")
)

// Entry pairs a registered name with its recorder.
type Entry struct {
	Name     string
	Recorder *scribe.Recorder
}

// Registry manages named recorders.
//
// Contract:
// - Concurrency: safe for concurrent use.
// - Ownership: slices returned by List and Names are caller-owned.
type Registry struct {
	mu       sync.RWMutex
	entities map[string]*scribe.Recorder
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{entities: make(map[string]*scribe.Recorder)}
}

// Register adds rec under its object name, or under a generated name when
// the object name is empty, and returns the name used.
func (r *Registry) Register(rec *scribe.Recorder) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("recorder is nil")
	}
	name := rec.ObjectName()
	if name == "" {
		name = GenerateName()
	}
	if err := r.RegisterAs(name, rec); err != nil {
		return "", err
	}
	return name, nil
}

// RegisterUnique adds rec under its object name, suffixed with a generated
// id when the name is empty or already taken, and returns the name used.
func (r *Registry) RegisterUnique(rec *scribe.Recorder) (string, error) {
	if rec == nil {
		return "", fmt.Errorf("recorder is nil")
	}
	name := rec.ObjectName()
	if name != "" {
		err := r.RegisterAs(name, rec)
		if err == nil || !errors.Is(err, ErrEntityExists) {
			return name, err
		}
		name += "-" + shortID()
	} else {
		name = GenerateName()
	}
	return name, r.RegisterAs(name, rec)
}

// RegisterAs adds rec under name.
func (r *Registry) RegisterAs(name string, rec *scribe.Recorder) error {
	if rec == nil {
		return fmt.Errorf("recorder is nil")
	}
	if name == "" {
		return fmt.Errorf("entity name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entities[name]; exists {
		return fmt.Errorf("%w: %s", ErrEntityExists, name)
	}
	r.entities[name] = rec
	return nil
}

// Unregister removes the named entity. Unknown names are ignored.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entities, name)
}

// Get retrieves a recorder by name.
func (r *Registry) Get(name string) (*scribe.Recorder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.entities[name]
	return rec, ok
}

// Lookup is Get returning ErrEntityNotFound for an unknown name.
func (r *Registry) Lookup(name string) (*scribe.Recorder, error) {
	rec, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, name)
	}
	return rec, nil
}

// List returns all entries sorted by name.
func (r *Registry) List() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.entities))
	for name, rec := range r.entities {
		out = append(out, Entry{Name: name, Recorder: rec})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns entity names sorted for deterministic output.
func (r *Registry) Names() []string {
	all := r.List()
	out := make([]string, 0, len(all))
	for _, e := range all {
		out = append(out, e.Name)
	}
	return out
}

// Len returns the number of registered entities.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entities)
}

// GenerateName returns a fresh name for an unnamed entity.
func GenerateName() string {
	return "entity-" + shortID()
}

func shortID() string {
	return uuid.NewString()[:8]
}
