package remote

import (
	"context"
	"strings"
	"sync"
	"time"
)

// DefaultDebounce is the quiet period before a name check fires.
const DefaultDebounce = 500 * time.Millisecond

// NameCheckResult is the outcome of a server-side project-name check.
type NameCheckResult struct {
	Name   string
	Unique bool
}

// NameChecker coalesces rapid keystrokes into a single document-store
// lookup after a quiet period. Only the most recent check can publish a
// result: older in-flight lookups are cancelled or their late responses
// discarded. A failed lookup publishes nothing, leaving the previous
// result untouched — the true unique constraint is enforced server-side
// at submission anyway.
type NameChecker struct {
	store      Store
	collection string
	debounce   time.Duration

	mu      sync.Mutex
	gen     int
	cancel  context.CancelFunc
	last    NameCheckResult
	hasLast bool
}

// NewNameChecker creates a checker against collection (e.g. "projects").
// A non-positive debounce falls back to DefaultDebounce.
func NewNameChecker(store Store, collection string, debounce time.Duration) *NameChecker {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &NameChecker{store: store, collection: collection, debounce: debounce}
}

// Check schedules a uniqueness lookup for name after the debounce window.
// Each call supersedes any pending or in-flight check. onResult runs on
// the checker's goroutine and only for the latest generation.
func (c *NameChecker) Check(ctx context.Context, name string, onResult func(NameCheckResult)) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	if c.cancel != nil {
		c.cancel()
	}
	checkCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	go func() {
		defer cancel()

		timer := time.NewTimer(c.debounce)
		defer timer.Stop()
		select {
		case <-checkCtx.Done():
			return
		case <-timer.C:
		}

		doc, err := c.store.GetDocument(checkCtx, c.collection+"/"+nameKey(name))
		if err != nil {
			return // degrade: previous result stays as-is
		}
		result := NameCheckResult{Name: name, Unique: doc == nil}

		c.mu.Lock()
		if gen != c.gen {
			c.mu.Unlock()
			return // a newer check superseded this one
		}
		c.last = result
		c.hasLast = true
		c.mu.Unlock()

		if onResult != nil {
			onResult(result)
		}
	}()
}

// Cancel discards any pending or in-flight check without side effects,
// e.g. when the user navigates away.
func (c *NameChecker) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// Last returns the most recently published result, if any.
func (c *NameChecker) Last() (NameCheckResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last, c.hasLast
}

// nameKey normalizes a project name into a document key the way the
// server indexes names: trimmed, lowercased, spaces collapsed to dashes.
func nameKey(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	return strings.Join(strings.Fields(key), "-")
}
