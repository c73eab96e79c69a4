package router

import (
	"sort"

	"github.com/jeetkhinde/RHTML/pkg/routepath"
)

// Router holds compiled routes in three partitions: ordinary routes in a
// priority-ordered list, layout routes keyed by pattern, and error-page
// routes keyed by pattern.
//
// Router does no locking. Match, LayoutFor, and ErrorPageFor are pure
// reads and may run concurrently with each other, but not with Add,
// Remove, or Sort. Live rebuilds should construct a fresh Router and
// publish it atomically (see pkg/loader).
type Router struct {
	routes     []*Route
	layouts    map[string]*Route
	errorPages map[string]*Route
}

// New creates an empty router.
func New() *Router {
	return &Router{
		layouts:    make(map[string]*Route),
		errorPages: make(map[string]*Route),
	}
}

// Add registers a compiled route in the partition its flags select.
func (r *Router) Add(route *Route) {
	switch {
	case route.IsLayout:
		r.layouts[route.Pattern] = route
	case route.IsErrorPage:
		r.errorPages[route.Pattern] = route
	default:
		r.routes = append(r.routes, route)
	}
}

// Remove drops every route with the given pattern from all partitions.
func (r *Router) Remove(pattern string) {
	kept := r.routes[:0]
	for _, route := range r.routes {
		if route.Pattern != pattern {
			kept = append(kept, route)
		}
	}
	// Clear trailing slots so removed routes are not retained.
	for i := len(kept); i < len(r.routes); i++ {
		r.routes[i] = nil
	}
	r.routes = kept

	delete(r.layouts, pattern)
	delete(r.errorPages, pattern)
}

// Sort orders the ordinary routes ascending by priority. The sort is
// stable, so equal-priority routes keep registration order. It must run
// after the last Add and before any Match; skipping it does not corrupt
// state but leaves match precedence undefined.
func (r *Router) Sort() {
	sort.SliceStable(r.routes, func(i, j int) bool {
		return r.routes[i].Priority < r.routes[j].Priority
	})
}

// Match scans the sorted ordinary routes and returns the first structural
// match with its captured parameters, or nil when no route matches. The
// scan is linear in the number of ordinary routes.
func (r *Router) Match(path string, caseInsensitive bool) *RouteMatch {
	for _, route := range r.routes {
		if params := route.Match(path, caseInsensitive); params != nil {
			return &RouteMatch{Route: route, Params: params}
		}
	}
	return nil
}

// LayoutFor resolves the nearest layout for a pattern by walking up the
// pattern hierarchy: the exact pattern first (skipped for the root), then
// each ancestor, finally the root layout. Returns nil when no ancestor
// has a layout.
func (r *Router) LayoutFor(pattern string) *Route {
	return resolve(r.layouts, pattern)
}

// ErrorPageFor resolves the nearest error page for a pattern using the
// same ancestor walk as LayoutFor.
func (r *Router) ErrorPageFor(pattern string) *Route {
	return resolve(r.errorPages, pattern)
}

// resolve walks pattern and its ancestors against a keyed partition.
func resolve(byPattern map[string]*Route, pattern string) *Route {
	for cur := pattern; cur != "/"; cur = routepath.Parent(cur) {
		if route, ok := byPattern[cur]; ok {
			return route
		}
	}
	return byPattern["/"]
}

// Routes returns the ordinary routes in their current order. The slice
// must not be modified.
func (r *Router) Routes() []*Route {
	return r.routes
}

// Layouts returns the layout partition keyed by pattern. The map must not
// be modified.
func (r *Router) Layouts() map[string]*Route {
	return r.layouts
}

// ErrorPages returns the error-page partition keyed by pattern. The map
// must not be modified.
func (r *Router) ErrorPages() map[string]*Route {
	return r.errorPages
}

// Len reports the number of ordinary routes.
func (r *Router) Len() int {
	return len(r.routes)
}
