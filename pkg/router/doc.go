// Package router implements file-based routing for RHTML.
//
// The router turns source file paths under a pages directory into URL
// patterns, classifies each pattern segment, and matches incoming request
// paths against the compiled set:
//
//	pages/
//	├── index.rhtml           → /
//	├── about.rhtml           → /about
//	├── _layout.rhtml         → layout for /
//	├── _error.rhtml          → error page for /
//	├── users/
//	│   ├── index.rhtml       → /users
//	│   ├── new.rhtml         → /users/new
//	│   ├── [id].rhtml        → /users/:id
//	│   └── _layout.rhtml     → layout for /users
//	├── posts/
//	│   └── [id?].rhtml       → /posts/:id?  (id optional)
//	└── docs/
//	    └── [...slug].rhtml   → /docs/*slug  (catch-all)
//
// # Segments
//
// Dynamic route segments use bracket notation in file names:
//
//	[id]       → :id   matches exactly one path segment
//	[id?]      → :id?  matches zero or one path segment
//	[...slug]  → *slug matches the entire remaining path, possibly empty
//
// A segment named "index" contributes nothing and maps its directory to the
// parent pattern. "_layout" and "_error" mark the route as a layout or
// error page for their directory's pattern.
//
// # Priority
//
// Routes are matched in ascending priority order after Sort. Priority is a
// pure function of pattern structure: all-static routes get 0, routes with
// dynamic or optional segments get dynamicCount+depth+1 (without the +1
// when an optional segment is present, so optional-bearing routes are
// tried just ahead of otherwise-equivalent required-dynamic ones), and catch-all
// routes get 1000+depth so they are always tried last. Equal priorities
// keep registration order. The single additive integer can tie across
// unrelated depth/segment combinations; a lexicographic tuple would give a
// strict total order but the additive form matches the published contract.
//
// # Usage
//
//	r := router.New()
//	r.Add(router.Compile("pages/users/new.rhtml", "pages"))
//	r.Add(router.Compile("pages/users/[id].rhtml", "pages"))
//	r.Sort()
//
//	m := r.Match("/users/42", false)
//	// m.Route.Pattern == "/users/:id", m.Params["id"] == "42"
//
//	layout := r.LayoutFor("/users/:id") // nearest ancestor _layout route
//
// The router performs no locking. Match, LayoutFor, and ErrorPageFor are
// pure reads and safe to call concurrently as long as no goroutine is
// calling Add, Remove, or Sort. Callers that rebuild routes at runtime
// should construct a fresh Router and swap it atomically; see pkg/loader.
package router
