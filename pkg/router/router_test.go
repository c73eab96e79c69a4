package router

import (
	"reflect"
	"testing"
)

func buildRouter(t *testing.T, files ...string) *Router {
	t.Helper()
	r := New()
	for _, f := range files {
		r.Add(Compile(f, "pages"))
	}
	r.Sort()
	return r
}

func TestRouterStaticOverDynamic(t *testing.T) {
	r := buildRouter(t,
		"pages/users/[id].rhtml",
		"pages/users/new.rhtml",
	)

	m := r.Match("/users/new", false)
	if m == nil {
		t.Fatal("Match(/users/new) = nil, want match")
	}
	if m.Route.Pattern != "/users/new" {
		t.Errorf("Match(/users/new).Pattern = %q, want /users/new", m.Route.Pattern)
	}
	if len(m.Params) != 0 {
		t.Errorf("params = %v, want empty", m.Params)
	}

	m = r.Match("/users/42", false)
	if m == nil {
		t.Fatal("Match(/users/42) = nil, want match")
	}
	if m.Route.Pattern != "/users/:id" {
		t.Errorf("Match(/users/42).Pattern = %q, want /users/:id", m.Route.Pattern)
	}
	if !reflect.DeepEqual(m.Params, map[string]string{"id": "42"}) {
		t.Errorf("params = %v, want {id: 42}", m.Params)
	}
}

func TestRouterCatchAllTriedLast(t *testing.T) {
	r := buildRouter(t,
		"pages/[...rest].rhtml",
		"pages/docs/[id].rhtml",
		"pages/docs/index.rhtml",
	)

	tests := []struct {
		path        string
		wantPattern string
	}{
		{"/docs", "/docs"},
		{"/docs/5", "/docs/:id"},
		{"/docs/5/deep", "/*rest"},
		{"/anything/else", "/*rest"},
	}

	for _, tt := range tests {
		m := r.Match(tt.path, false)
		if m == nil {
			t.Errorf("Match(%q) = nil, want %q", tt.path, tt.wantPattern)
			continue
		}
		if m.Route.Pattern != tt.wantPattern {
			t.Errorf("Match(%q).Pattern = %q, want %q", tt.path, m.Route.Pattern, tt.wantPattern)
		}
	}
}

func TestRouterMatchNone(t *testing.T) {
	r := buildRouter(t, "pages/about.rhtml")

	if m := r.Match("/missing", false); m != nil {
		t.Errorf("Match(/missing) = %v, want nil", m)
	}
}

func TestRouterSortStable(t *testing.T) {
	// Equal-priority routes keep registration order.
	r := New()
	first := Compile("pages/a/[x].rhtml", "pages")
	second := Compile("pages/b/[y].rhtml", "pages")
	if first.Priority != second.Priority {
		t.Fatalf("setup: priorities differ (%d vs %d)", first.Priority, second.Priority)
	}
	r.Add(second)
	r.Add(first)
	r.Sort()

	routes := r.Routes()
	if routes[0] != second || routes[1] != first {
		t.Error("stable sort should keep registration order for equal priorities")
	}
}

func TestRouterPartitions(t *testing.T) {
	r := New()
	r.Add(Compile("pages/users/index.rhtml", "pages"))
	r.Add(Compile("pages/users/_layout.rhtml", "pages"))
	r.Add(Compile("pages/users/_error.rhtml", "pages"))

	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1 ordinary route", r.Len())
	}
	if _, ok := r.Layouts()["/users"]; !ok {
		t.Error("layout partition missing /users")
	}
	if _, ok := r.ErrorPages()["/users"]; !ok {
		t.Error("error-page partition missing /users")
	}
}

func TestRouterRemove(t *testing.T) {
	r := New()
	r.Add(Compile("pages/users/index.rhtml", "pages"))
	r.Add(Compile("pages/users/_layout.rhtml", "pages"))
	r.Add(Compile("pages/about.rhtml", "pages"))
	r.Sort()

	r.Remove("/users")

	if m := r.Match("/users", false); m != nil {
		t.Error("Match(/users) matched after Remove")
	}
	if _, ok := r.Layouts()["/users"]; ok {
		t.Error("layout /users still present after Remove")
	}
	if m := r.Match("/about", false); m == nil {
		t.Error("Match(/about) = nil, unrelated route removed")
	}
}

func TestRouterLayoutFallback(t *testing.T) {
	r := New()
	r.Add(Compile("pages/_layout.rhtml", "pages"))
	r.Add(Compile("pages/users/_layout.rhtml", "pages"))

	l := r.LayoutFor("/users/:id")
	if l == nil || l.Pattern != "/users" {
		t.Fatalf("LayoutFor(/users/:id) = %v, want /users layout", l)
	}

	r.Remove("/users")

	l = r.LayoutFor("/users/:id")
	if l == nil || l.Pattern != "/" {
		t.Fatalf("LayoutFor(/users/:id) after remove = %v, want root layout", l)
	}
}

func TestRouterLayoutExactThenAncestors(t *testing.T) {
	r := New()
	r.Add(Compile("pages/_layout.rhtml", "pages"))
	r.Add(Compile("pages/a/_layout.rhtml", "pages"))
	r.Add(Compile("pages/a/b/_layout.rhtml", "pages"))

	tests := []struct {
		pattern string
		want    string
	}{
		{"/a/b/c/d", "/a/b"},
		{"/a/b", "/a/b"},
		{"/a/x", "/a"},
		{"/a", "/a"},
		{"/other", "/"},
		{"/", "/"},
	}

	for _, tt := range tests {
		l := r.LayoutFor(tt.pattern)
		if l == nil {
			t.Errorf("LayoutFor(%q) = nil, want %q", tt.pattern, tt.want)
			continue
		}
		if l.Pattern != tt.want {
			t.Errorf("LayoutFor(%q) = %q, want %q", tt.pattern, l.Pattern, tt.want)
		}
	}
}

func TestRouterLayoutNone(t *testing.T) {
	r := New()
	r.Add(Compile("pages/users/_layout.rhtml", "pages"))

	if l := r.LayoutFor("/posts/:id"); l != nil {
		t.Errorf("LayoutFor(/posts/:id) = %v, want nil (no ancestor layout)", l)
	}
}

func TestRouterErrorPageFallback(t *testing.T) {
	r := New()
	r.Add(Compile("pages/_error.rhtml", "pages"))
	r.Add(Compile("pages/admin/_error.rhtml", "pages"))

	e := r.ErrorPageFor("/admin/settings")
	if e == nil || e.Pattern != "/admin" {
		t.Fatalf("ErrorPageFor(/admin/settings) = %v, want /admin", e)
	}

	e = r.ErrorPageFor("/public/page")
	if e == nil || e.Pattern != "/" {
		t.Fatalf("ErrorPageFor(/public/page) = %v, want root", e)
	}

	if e := r.ErrorPageFor("/"); e == nil || e.Pattern != "/" {
		t.Fatalf("ErrorPageFor(/) = %v, want root entry", e)
	}
}

func TestRouterScenario(t *testing.T) {
	// Full lifecycle: compile, add, sort, match.
	r := buildRouter(t,
		"pages/users/new.rhtml",
		"pages/users/[id].rhtml",
		"pages/docs/[...slug].rhtml",
		"pages/posts/[id?].rhtml",
	)

	m := r.Match("/users/new", false)
	if m == nil || m.Route.Pattern != "/users/new" || len(m.Params) != 0 {
		t.Errorf("Match(/users/new) = %+v, want static route with no params", m)
	}

	m = r.Match("/users/77", false)
	if m == nil || !reflect.DeepEqual(m.Params, map[string]string{"id": "77"}) {
		t.Errorf("Match(/users/77) = %+v, want {id: 77}", m)
	}

	m = r.Match("/docs/a/b/c", false)
	if m == nil || !reflect.DeepEqual(m.Params, map[string]string{"slug": "a/b/c"}) {
		t.Errorf("Match(/docs/a/b/c) = %+v, want {slug: a/b/c}", m)
	}

	m = r.Match("/posts", false)
	if m == nil || m.Route.Pattern != "/posts/:id?" {
		t.Fatalf("Match(/posts) = %+v, want optional route", m)
	}
	if _, present := m.Params["id"]; present {
		t.Errorf("Match(/posts).Params = %v, want no id key", m.Params)
	}
}

func TestRouterRegistrationOrderIrrelevant(t *testing.T) {
	// Priority comes from structure, so match results are identical
	// under any registration order.
	files := []string{
		"pages/users/new.rhtml",
		"pages/users/[id].rhtml",
		"pages/users/[...rest].rhtml",
	}
	forward := buildRouter(t, files...)
	reversed := buildRouter(t, files[2], files[1], files[0])

	for _, path := range []string{"/users/new", "/users/42", "/users/a/b"} {
		a := forward.Match(path, false)
		b := reversed.Match(path, false)
		if a == nil || b == nil {
			t.Fatalf("Match(%q) = (%v, %v), want matches from both", path, a, b)
		}
		if a.Route.Pattern != b.Route.Pattern {
			t.Errorf("Match(%q) patterns differ by registration order: %q vs %q",
				path, a.Route.Pattern, b.Route.Pattern)
		}
	}
}
