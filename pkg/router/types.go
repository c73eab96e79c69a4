package router

// SegmentKind classifies one slash-delimited token of a route pattern.
type SegmentKind int

const (
	// SegmentStatic is literal text requiring exact (or case-insensitive)
	// equality with the corresponding path segment.
	SegmentStatic SegmentKind = iota

	// SegmentDynamic is a named capture matching exactly one path segment.
	SegmentDynamic

	// SegmentOptional is a named capture matching zero or one path segment.
	SegmentOptional

	// SegmentCatchAll is a named capture matching all remaining path
	// segments, possibly none. It is always the final segment.
	SegmentCatchAll
)

// String returns the kind name for diagnostics.
func (k SegmentKind) String() string {
	switch k {
	case SegmentStatic:
		return "static"
	case SegmentDynamic:
		return "dynamic"
	case SegmentOptional:
		return "optional"
	case SegmentCatchAll:
		return "catch-all"
	default:
		return "unknown"
	}
}

// Segment is one compiled pattern segment. Value holds the literal text
// for static segments and the parameter name for all capturing kinds.
// Compiling the tagged form once keeps string re-parsing out of the
// matching hot loop.
type Segment struct {
	Kind  SegmentKind
	Value string
}

// Route is a compiled route. Routes are immutable once built: Compile
// creates them in bulk at startup or on a hot-reload rebuild, and they
// live until a rebuild replaces the whole collection.
type Route struct {
	// Segments is the compiled pattern.
	Segments []Segment

	// Pattern is the slash-joined diagnostic form of Segments, e.g.
	// "/users/:id" or "/docs/*slug". Layout and error-page routes are
	// keyed by it, and Remove addresses all partitions by it.
	Pattern string

	// SourcePath is the originating file path. The router never
	// interprets it; it belongs to the caller (the template loader keys
	// template content by it).
	SourcePath string

	// Params are the parameter names in first-appearance order.
	Params []string

	// OptionalParams is the subset of Params that may be unbound.
	OptionalParams []string

	// HasCatchAll reports whether the pattern contains a catch-all
	// segment. At most one may be present and it must be terminal; the
	// Validator reports violations.
	HasCatchAll bool

	// Priority orders match attempts, smaller first. It is computed from
	// pattern structure only, never from registration order.
	Priority int

	// IsLayout marks a _layout route. Mutually exclusive with IsErrorPage
	// and with being an ordinary route.
	IsLayout bool

	// IsErrorPage marks an _error route.
	IsErrorPage bool
}

// RouteMatch is the result of a successful match: the route plus captured
// parameters. Optional parameters that did not consume a path segment are
// absent from Params, not present with an empty value. A catch-all that
// consumed nothing is present with "".
type RouteMatch struct {
	Route  *Route
	Params map[string]string
}
