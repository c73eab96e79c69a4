// Package routepath provides the path-string helpers shared by the route
// matcher and the HTTP layer: segment splitting, canonicalization, and
// the ancestor walk used for layout and error-page resolution.
package routepath

import "strings"

// Split breaks a path or pattern into its slash-delimited segments,
// discarding empty ones. Leading, trailing, and duplicate slashes are
// therefore insignificant: "/about", "about/", and "//about//" all split
// to ["about"], and "/" splits to nil.
func Split(path string) []string {
	if path == "" || path == "/" {
		return nil
	}

	parts := strings.Split(path, "/")
	segs := parts[:0]
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	if len(segs) == 0 {
		return nil
	}
	return segs
}

// Canonicalize rewrites a request path into the form the matcher keys on:
// a single leading slash, no duplicate slashes, and no trailing slash
// except for the root itself. "/about/" and "about" both canonicalize to
// "/about"; "" canonicalizes to "/".
func Canonicalize(path string) string {
	segs := Split(path)
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}

// Parent strips the final "/segment" from a pattern. The parent of any
// single-segment pattern is the root, and the root is its own parent.
func Parent(pattern string) string {
	idx := strings.LastIndex(pattern, "/")
	if idx <= 0 {
		return "/"
	}
	return pattern[:idx]
}
