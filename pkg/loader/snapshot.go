package loader

import (
	"sync/atomic"

	"github.com/jeetkhinde/RHTML/pkg/router"
)

// Snapshot is one immutable build of the route collection plus the
// template content backing it. Snapshots are never mutated after build;
// readers may hold one across a request without locking.
type Snapshot struct {
	router    *router.Router
	templates map[string]*Template
}

// Router returns the sorted route collection.
func (s *Snapshot) Router() *router.Router {
	return s.router
}

// Template returns the template behind a route's source path.
func (s *Snapshot) Template(sourcePath string) (*Template, bool) {
	t, ok := s.templates[sourcePath]
	return t, ok
}

// Count reports the number of loaded templates.
func (s *Snapshot) Count() int {
	return len(s.templates)
}

// Patterns returns the ordinary route patterns in match order, for
// diagnostics and the routes CLI listing.
func (s *Snapshot) Patterns() []string {
	routes := s.router.Routes()
	patterns := make([]string, len(routes))
	for i, r := range routes {
		patterns[i] = r.Pattern
	}
	return patterns
}

// Store publishes snapshots to concurrent readers. Readers call Current
// on every request; a rebuild publishes with Swap. The pointer swap is the
// entire synchronization story: the route collection itself stays free of
// locks, per its contract.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// NewStore creates a store holding the given initial snapshot.
func NewStore(snap *Snapshot) *Store {
	s := &Store{}
	s.current.Store(snap)
	return s
}

// Current returns the latest published snapshot.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Swap publishes a new snapshot. In-flight readers keep the snapshot they
// already hold; new readers see the replacement.
func (s *Store) Swap(snap *Snapshot) {
	s.current.Store(snap)
}
