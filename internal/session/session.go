// Package session holds the state shared by consecutive analyses: the
// registry of names already seen and the cumulative category counts.
//
// A Session is locked for the whole of an analysis run (see Begin), so two
// concurrent analyses against the same session are serialised instead of
// interleaving their registries.
package session

import (
	"sort"
	"sync"

	"analex/internal/token"
)

// Counts maps every counted category to a number of tokens.
type Counts map[token.Kind]int

// NewCounts returns counts with every counted kind present and zero.
func NewCounts() Counts {
	c := make(Counts, len(token.Counted))
	for _, k := range token.Counted {
		c[k] = 0
	}
	return c
}

// Add increments the kind unless it is not counted.
func (c Counts) Add(k token.Kind) {
	if !k.IsCounted() {
		return
	}
	c[k]++
}

// Merge adds other into c.
func (c Counts) Merge(other Counts) {
	for k, n := range other {
		if k.IsCounted() {
			c[k] += n
		}
	}
}

// Total is the sum over all counted kinds.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Labeled returns the counts keyed by human-facing label.
func (c Counts) Labeled() map[string]int {
	out := make(map[string]int, len(token.Counted))
	for _, k := range token.Counted {
		out[k.Label()] = c[k]
	}
	return out
}

// Clone returns an independent copy.
func (c Counts) Clone() Counts {
	out := NewCounts()
	out.Merge(c)
	return out
}

// Session is one logical sequence of analyses.
type Session struct {
	mu       sync.Mutex
	registry map[string]struct{}
	counts   Counts
	runs     int
}

// New returns an empty session.
func New() *Session {
	return &Session{
		registry: make(map[string]struct{}),
		counts:   NewCounts(),
	}
}

// Reset clears the registry and the counts. It has no other effect.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registry = make(map[string]struct{})
	s.counts = NewCounts()
	s.runs = 0
}

// Begin takes exclusive access to the session for one analysis run.
// The returned Run must be finished with End.
func (s *Session) Begin() *Run {
	s.mu.Lock()
	return &Run{s: s, counts: NewCounts()}
}

// Known reports whether name is registered.
func (s *Session) Known(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.registry[name]
	return ok
}

// Names returns the registered names, sorted.
func (s *Session) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.registry))
	for n := range s.registry {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Counts returns a snapshot of the cumulative counts since the last reset.
func (s *Session) Counts() Counts {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.counts.Clone()
}

// Runs is the number of analyses finished since the last reset.
func (s *Session) Runs() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runs
}

// Run is exclusive access to a session during one analysis.
type Run struct {
	s      *Session
	counts Counts
	done   bool
}

// Lookup reports whether name was registered before now.
func (r *Run) Lookup(name string) bool {
	_, ok := r.s.registry[name]
	return ok
}

// Register inserts name; it is a no-op for names already known.
func (r *Run) Register(name string) {
	r.s.registry[name] = struct{}{}
}

// Count records one token of kind k for this run.
func (r *Run) Count(k token.Kind) {
	r.counts.Add(k)
}

// Counts returns this run's counts.
func (r *Run) Counts() Counts {
	return r.counts.Clone()
}

// End folds the run's counts into the session and releases it.
func (r *Run) End() {
	if r.done {
		return
	}
	r.done = true
	r.s.counts.Merge(r.counts)
	r.s.runs++
	r.s.mu.Unlock()
}
