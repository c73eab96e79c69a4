package router

import (
	"reflect"
	"testing"
)

func TestMatchStatic(t *testing.T) {
	route := Compile("pages/users/new.rhtml", "pages")

	params := route.Match("/users/new", false)
	if params == nil {
		t.Fatal("Match(/users/new) = nil, want match")
	}
	if len(params) != 0 {
		t.Errorf("params = %v, want empty", params)
	}

	for _, path := range []string{"/users", "/users/old", "/users/new/extra", "/"} {
		if route.Match(path, false) != nil {
			t.Errorf("Match(%q) matched, want nil", path)
		}
	}
}

func TestMatchTrailingSlashInsensitive(t *testing.T) {
	route := Compile("pages/about.rhtml", "pages")

	for _, path := range []string{"/about", "/about/", "about", "//about//"} {
		if route.Match(path, false) == nil {
			t.Errorf("Match(%q) = nil, want match", path)
		}
	}
}

func TestMatchCaseSensitivity(t *testing.T) {
	route := Compile("pages/about.rhtml", "pages")

	if route.Match("/About", false) != nil {
		t.Error("case-sensitive Match(/About) matched, want nil")
	}
	if route.Match("/About", true) == nil {
		t.Error("case-insensitive Match(/About) = nil, want match")
	}
	if route.Match("/ABOUT", true) == nil {
		t.Error("case-insensitive Match(/ABOUT) = nil, want match")
	}
}

func TestMatchDynamic(t *testing.T) {
	route := Compile("pages/users/[id].rhtml", "pages")

	tests := []struct {
		path string
		want map[string]string
	}{
		{"/users/42", map[string]string{"id": "42"}},
		{"/users/alice", map[string]string{"id": "alice"}},
		{"/users", nil},
		{"/users/42/extra", nil},
		{"/posts/42", nil},
	}

	for _, tt := range tests {
		got := route.Match(tt.path, false)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMatchCatchAll(t *testing.T) {
	route := Compile("pages/docs/[...slug].rhtml", "pages")

	tests := []struct {
		path string
		want map[string]string
	}{
		// A catch-all binds the remainder, including the empty remainder.
		{"/docs", map[string]string{"slug": ""}},
		{"/docs/a", map[string]string{"slug": "a"}},
		{"/docs/a/b", map[string]string{"slug": "a/b"}},
		{"/docs/a/b/c", map[string]string{"slug": "a/b/c"}},
		{"/other/a", nil},
	}

	for _, tt := range tests {
		got := route.Match(tt.path, false)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMatchRootCatchAll(t *testing.T) {
	route := Compile("pages/[...path].rhtml", "pages")

	got := route.Match("/", false)
	want := map[string]string{"path": ""}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match(/) = %v, want %v", got, want)
	}
}

func TestMatchOptional(t *testing.T) {
	route := Compile("pages/posts/[id?].rhtml", "pages")

	// Absent optional params are missing from the map, not empty.
	got := route.Match("/posts", false)
	if got == nil {
		t.Fatal("Match(/posts) = nil, want match")
	}
	if _, present := got["id"]; present {
		t.Errorf("params = %v, want no id key", got)
	}

	got = route.Match("/posts/123", false)
	want := map[string]string{"id": "123"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match(/posts/123) = %v, want %v", got, want)
	}

	if route.Match("/posts/1/2", false) != nil {
		t.Error("Match(/posts/1/2) matched, want nil")
	}
}

func TestMatchOptionalLookahead(t *testing.T) {
	// The optional must not swallow a value that the following static
	// segment in the same pattern needs.
	route := Compile("pages/posts/[id?]/edit.rhtml", "pages")

	tests := []struct {
		path string
		want map[string]string
	}{
		// "edit" equals the next static segment, so the optional stays
		// unbound and the static consumes it.
		{"/posts/edit", map[string]string{}},
		// "5" differs from "edit", so the optional consumes it.
		{"/posts/5/edit", map[string]string{"id": "5"}},
		{"/posts", nil},
		{"/posts/5", nil},
	}

	for _, tt := range tests {
		got := route.Match(tt.path, false)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMatchOptionalLookaheadCaseFlag(t *testing.T) {
	route := Compile("pages/posts/[id?]/edit.rhtml", "pages")

	// Case-insensitively, "EDIT" equals the static follower, so the
	// optional stays unbound.
	got := route.Match("/posts/EDIT", true)
	if got == nil || len(got) != 0 {
		t.Errorf("case-insensitive Match(/posts/EDIT) = %v, want empty params", got)
	}

	// Case-sensitively, "EDIT" differs, the optional consumes it, and the
	// pattern's static "edit" then fails against an exhausted path.
	if route.Match("/posts/EDIT", false) != nil {
		t.Error("case-sensitive Match(/posts/EDIT) matched, want nil")
	}
}

func TestMatchOptionalBeforeDynamic(t *testing.T) {
	// With a non-static follower there is no lookahead: the optional
	// consumes greedily.
	route := Compile("pages/[lang?]/[page].rhtml", "pages")

	tests := []struct {
		path string
		want map[string]string
	}{
		{"/en/home", map[string]string{"lang": "en", "page": "home"}},
		// One segment: the optional consumes it and the dynamic fails...
		{"/home", nil},
		{"/", nil},
	}

	for _, tt := range tests {
		got := route.Match(tt.path, false)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMatchTerminalOptionalThenCatchAll(t *testing.T) {
	route := Compile("pages/[v?]/[...rest].rhtml", "pages")

	tests := []struct {
		path string
		want map[string]string
	}{
		{"/", map[string]string{"rest": ""}},
		{"/a", map[string]string{"v": "a", "rest": ""}},
		{"/a/b/c", map[string]string{"v": "a", "rest": "b/c"}},
	}

	for _, tt := range tests {
		got := route.Match(tt.path, false)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Match(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestMatchDynamicCaseInsensitiveCapture(t *testing.T) {
	// The case flag affects static comparison only; captures keep the
	// path's original casing.
	route := Compile("pages/users/[id].rhtml", "pages")

	got := route.Match("/Users/Alice", true)
	want := map[string]string{"id": "Alice"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Match(/Users/Alice) = %v, want %v", got, want)
	}
}

func TestMatchRoot(t *testing.T) {
	route := Compile("pages/index.rhtml", "pages")

	if route.Match("/", false) == nil {
		t.Error("Match(/) = nil, want match")
	}
	if route.Match("", false) == nil {
		t.Error("Match(\"\") = nil, want match")
	}
	if route.Match("/about", false) != nil {
		t.Error("Match(/about) matched root, want nil")
	}
}
