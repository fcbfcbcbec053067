package endpoint

import (
	"context"
	"sync"
)

// Resolver owns the resolved backend base. It is written only by Resolve and
// cleared by Invalidate or by a change to the typed base.
type Resolver struct {
	prober   *Prober
	detected string

	// OnResolved is called with the working origin after a successful probe.
	OnResolved func(base string)

	resolveMu sync.Mutex

	mu       sync.RWMutex
	typed    string
	resolved string
	// gen counts typed-base changes so a probe started against an older
	// address never commits its result.
	gen uint64
}

// NewResolver builds a resolver probing with p. detected is the auto-detected
// base used when nothing is typed and as the second candidate source.
func NewResolver(p *Prober, typed, detected string) *Resolver {
	return &Resolver{prober: p, typed: typed, detected: detected}
}

// Typed returns the current user-supplied base.
func (r *Resolver) Typed() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.typed
}

// Detected returns the auto-detected base.
func (r *Resolver) Detected() string {
	return r.detected
}

// SetTyped replaces the user-supplied base. A changed value drops the
// resolved base.
func (r *Resolver) SetTyped(typed string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if typed != r.typed {
		r.resolved = ""
		r.gen++
	}
	r.typed = typed
}

// Resolved returns the cached base, if any.
func (r *Resolver) Resolved() (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.resolved, r.resolved != ""
}

// Invalidate clears the cached base.
func (r *Resolver) Invalidate() {
	r.mu.Lock()
	r.resolved = ""
	r.mu.Unlock()
}

// Candidates returns a fresh candidate list for the current inputs.
func (r *Resolver) Candidates() []Candidate {
	return Candidates(r.Typed(), r.detected)
}

// Display returns what a user should see as the active address: the resolved
// base when present, otherwise the typed or detected base.
func (r *Resolver) Display() string {
	if base, ok := r.Resolved(); ok {
		return base
	}
	return TypedOrDetected(r.Typed(), r.detected)
}

// Resolve drops the cached base and probes fresh candidates. On success the
// working origin is cached and written back as the typed base.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	r.resolveMu.Lock()
	defer r.resolveMu.Unlock()
	return r.resolveLocked(ctx)
}

// Base returns the cached base, resolving first when none is cached.
func (r *Resolver) Base(ctx context.Context) (string, error) {
	if base, ok := r.Resolved(); ok {
		return base, nil
	}
	r.resolveMu.Lock()
	defer r.resolveMu.Unlock()
	// Another caller may have finished resolving while we waited.
	if base, ok := r.Resolved(); ok {
		return base, nil
	}
	return r.resolveLocked(ctx)
}

func (r *Resolver) resolveLocked(ctx context.Context) (string, error) {
	for {
		r.mu.Lock()
		r.resolved = ""
		gen := r.gen
		candidates := Candidates(r.typed, r.detected)
		r.mu.Unlock()

		c, err := r.prober.Probe(ctx, candidates)
		base := c.Origin()

		r.mu.Lock()
		if r.gen != gen {
			// The address changed mid-probe; probe the new one instead.
			r.mu.Unlock()
			continue
		}
		if err != nil {
			r.mu.Unlock()
			return "", err
		}
		r.resolved = base
		r.typed = base
		r.mu.Unlock()

		if r.OnResolved != nil {
			r.OnResolved(base)
		}
		return base, nil
	}
}
