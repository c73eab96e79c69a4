package router

import (
	"strings"

	"github.com/jeetkhinde/RHTML/pkg/routepath"
)

// Match checks whether this route matches the given request path and
// extracts parameters. It returns nil when the route does not match.
//
// Both the pattern and the path are compared segment-wise; empty segments
// are discarded, so leading, trailing, and duplicate slashes are
// insignificant.
func (r *Route) Match(path string, caseInsensitive bool) map[string]string {
	segs := routepath.Split(path)
	params := make(map[string]string)

	cursor := 0
	for i, ps := range r.Segments {
		switch ps.Kind {
		case SegmentCatchAll:
			// Binds the whole remainder, possibly empty, and ends the
			// walk. By invariant no pattern segments follow.
			params[ps.Value] = strings.Join(segs[cursor:], "/")
			return params

		case SegmentOptional:
			if cursor >= len(segs) {
				// Nothing left to consume; stay unbound.
				continue
			}
			// Lookahead: a following static segment that equals the
			// current path segment must be allowed to consume it, so the
			// optional stays unbound in that case. Any other follower
			// (none, dynamic, optional, catch-all) lets the optional
			// consume greedily.
			if next, ok := nextSegment(r.Segments, i); ok && next.Kind == SegmentStatic &&
				segmentEqual(next.Value, segs[cursor], caseInsensitive) {
				continue
			}
			params[ps.Value] = segs[cursor]
			cursor++

		case SegmentDynamic:
			if cursor >= len(segs) {
				return nil
			}
			params[ps.Value] = segs[cursor]
			cursor++

		case SegmentStatic:
			if cursor >= len(segs) || !segmentEqual(ps.Value, segs[cursor], caseInsensitive) {
				return nil
			}
			cursor++
		}
	}

	// Unconsumed trailing path segments mean no match.
	if cursor != len(segs) {
		return nil
	}
	return params
}

// nextSegment returns the pattern segment after index i, if any.
func nextSegment(segments []Segment, i int) (Segment, bool) {
	if i+1 >= len(segments) {
		return Segment{}, false
	}
	return segments[i+1], true
}

// segmentEqual compares one pattern segment against one path segment.
func segmentEqual(pattern, path string, caseInsensitive bool) bool {
	if caseInsensitive {
		return strings.EqualFold(pattern, path)
	}
	return pattern == path
}
