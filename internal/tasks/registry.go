package tasks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/gigwise/eventops/internal/models"
)

// Handler executes one pass of a task over its qualifying events. It reports
// completed=true when a pass did real work; completed=false leaves the
// task's bookkeeping untouched so it is attempted again on the next beat.
type Handler func(ctx context.Context, task *models.Task) (RunResult, error)

// RunResult summarises one runner pass.
type RunResult struct {
	Slug      string
	Ran       bool
	Completed bool
	Processed int
	Skipped   int
}

func (r RunResult) Summary() string {
	if !r.Ran {
		return "not due"
	}
	return fmt.Sprintf("processed %d, skipped %d", r.Processed, r.Skipped)
}

// Registry maps task slugs to handlers. Handlers are registered once at
// startup; resolving behaviour by string at run time beyond this table is
// deliberately impossible.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

func (r *Registry) Register(slug string, h Handler) error {
	if slug == "" || h == nil {
		return fmt.Errorf("invalid registration for %q", slug)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.handlers[slug]; exists {
		return fmt.Errorf("task %q already registered", slug)
	}
	r.handlers[slug] = h
	return nil
}

func (r *Registry) Lookup(slug string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[slug]
	return h, ok
}

func (r *Registry) Slugs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	slugs := make([]string, 0, len(r.handlers))
	for s := range r.handlers {
		slugs = append(slugs, s)
	}
	sort.Strings(slugs)
	return slugs
}
