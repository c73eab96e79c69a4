package router

import (
	"path"
	"strings"
)

// catchAllBase is the priority floor for catch-all routes. Keeping it far
// above any realistic dynamicCount+depth sum guarantees catch-alls are
// tried after every other route.
const catchAllBase = 1000

// Compile turns one source file path into a Route.
//
// The baseDir prefix and the file extension are stripped, the remainder is
// split on "/", and each segment is classified:
//
//	[name]      → dynamic
//	[...name]   → catch-all
//	[name?]     → optional
//	index       → no segment (maps the directory to the parent pattern)
//	_layout     → no segment, marks the route as a layout
//	_error      → no segment, marks the route as an error page
//	anything else → static
//
// Compile never fails: malformed bracket syntax degrades to a literal
// static segment. Structural defects (duplicate parameter names, multiple
// or non-terminal catch-alls) are reported by the Validator instead.
func Compile(filePath, baseDir string) *Route {
	rel := strings.TrimPrefix(filePath, baseDir)
	rel = strings.TrimPrefix(rel, "/")

	// Strip the source extension, whatever it is.
	if ext := path.Ext(rel); ext != "" {
		rel = strings.TrimSuffix(rel, ext)
	}

	route := &Route{SourcePath: filePath}

	for _, seg := range strings.Split(rel, "/") {
		switch seg {
		case "":
			continue
		case "index":
			continue
		case "_layout":
			route.IsLayout = true
			continue
		case "_error":
			route.IsErrorPage = true
			continue
		}
		route.Segments = append(route.Segments, parseSegment(seg))
	}

	for _, s := range route.Segments {
		switch s.Kind {
		case SegmentDynamic:
			route.Params = append(route.Params, s.Value)
		case SegmentOptional:
			route.Params = append(route.Params, s.Value)
			route.OptionalParams = append(route.OptionalParams, s.Value)
		case SegmentCatchAll:
			route.Params = append(route.Params, s.Value)
			route.HasCatchAll = true
		}
	}

	route.Pattern = patternString(route.Segments)
	route.Priority = priority(route)

	return route
}

// parseSegment classifies a single file-path segment. Anything that does
// not parse as well-formed bracket syntax is a static segment.
func parseSegment(seg string) Segment {
	if len(seg) < 3 || seg[0] != '[' || seg[len(seg)-1] != ']' {
		return Segment{Kind: SegmentStatic, Value: seg}
	}

	inner := seg[1 : len(seg)-1]

	if name, ok := strings.CutPrefix(inner, "..."); ok {
		if name == "" {
			return Segment{Kind: SegmentStatic, Value: seg}
		}
		return Segment{Kind: SegmentCatchAll, Value: name}
	}

	if name, ok := strings.CutSuffix(inner, "?"); ok {
		if name == "" {
			return Segment{Kind: SegmentStatic, Value: seg}
		}
		return Segment{Kind: SegmentOptional, Value: name}
	}

	return Segment{Kind: SegmentDynamic, Value: inner}
}

// patternString renders segments as the slash-joined diagnostic form:
// "/users/:id", "/posts/:id?", "/docs/*slug". The empty pattern is "/".
func patternString(segments []Segment) string {
	if len(segments) == 0 {
		return "/"
	}

	var b strings.Builder
	for _, s := range segments {
		b.WriteByte('/')
		switch s.Kind {
		case SegmentDynamic:
			b.WriteByte(':')
			b.WriteString(s.Value)
		case SegmentOptional:
			b.WriteByte(':')
			b.WriteString(s.Value)
			b.WriteByte('?')
		case SegmentCatchAll:
			b.WriteByte('*')
			b.WriteString(s.Value)
		default:
			b.WriteString(s.Value)
		}
	}
	return b.String()
}

// priority computes the match-attempt order for a route, smaller first:
//
//	catch-all            → 1000 + depth
//	any dynamic/optional → dynamicCount + depth + (0 if optional else 1)
//	all static           → 0
//
// depth is the number of pattern segments. The optional nudge puts
// optional-bearing routes just ahead of otherwise-equivalent
// required-dynamic routes.
func priority(r *Route) int {
	depth := len(r.Segments)

	if r.HasCatchAll {
		return catchAllBase + depth
	}

	dynamic := 0
	optional := false
	for _, s := range r.Segments {
		switch s.Kind {
		case SegmentDynamic:
			dynamic++
		case SegmentOptional:
			dynamic++
			optional = true
		}
	}

	if dynamic == 0 {
		return 0
	}
	if optional {
		return dynamic + depth
	}
	return dynamic + depth + 1
}
