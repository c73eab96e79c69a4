package router

import (
	"fmt"
	"strings"
)

// Validator checks a compiled route set for structural defects before it
// is published. Compile itself never fails; running the validator is how
// callers turn silent mis-routing into a loud error.
type Validator struct {
	routes []*Route
	errors []ValidationError
}

// ValidationError describes one structural defect in a route set.
type ValidationError struct {
	// Type is the error category.
	Type ValidationErrorType

	// Message is the human-readable error message.
	Message string

	// Pattern is the offending URL pattern.
	Pattern string

	// Files are the source files involved.
	Files []string
}

func (e ValidationError) Error() string {
	if len(e.Files) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Type, e.Message, strings.Join(e.Files, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// ValidationErrorType categorizes validation errors.
type ValidationErrorType string

const (
	// ErrorDuplicateRoute indicates multiple files compile to the same
	// pattern within one partition, e.g. users/[id].rhtml and
	// users/[userId].rhtml would not, but two copies of [id].rhtml under
	// differently-spelled index directories would.
	ErrorDuplicateRoute ValidationErrorType = "DUPLICATE_ROUTE"

	// ErrorDuplicateParam indicates a parameter name appears twice in one
	// route, e.g. [id]/posts/[id].rhtml.
	ErrorDuplicateParam ValidationErrorType = "DUPLICATE_PARAM"

	// ErrorCatchAllNotLast indicates a catch-all segment that is not the
	// final segment of its pattern.
	ErrorCatchAllNotLast ValidationErrorType = "CATCH_ALL_NOT_LAST"

	// ErrorMultipleCatchAll indicates more than one catch-all segment in
	// one pattern.
	ErrorMultipleCatchAll ValidationErrorType = "MULTIPLE_CATCH_ALL"
)

// MultiValidationError aggregates every defect found in one pass.
type MultiValidationError struct {
	Errors []ValidationError
}

func (e *MultiValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "no validation errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d route validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// NewValidator creates a validator over a compiled route set.
func NewValidator(routes []*Route) *Validator {
	return &Validator{routes: routes}
}

// Validate checks all routes. It returns nil when the set is clean, or a
// *MultiValidationError carrying every defect found.
func (v *Validator) Validate() error {
	v.errors = nil

	v.validateDuplicateRoutes()
	v.validateParams()
	v.validateCatchAll()

	if len(v.errors) > 0 {
		return &MultiValidationError{Errors: v.errors}
	}
	return nil
}

// validateDuplicateRoutes reports two source files compiling to the same
// pattern in the same partition. Layouts, error pages, and ordinary routes
// are distinct partitions, so users/_layout.rhtml and users/index.rhtml
// sharing the pattern "/users" is fine.
func (v *Validator) validateDuplicateRoutes() {
	type key struct {
		pattern   string
		partition string
	}
	byKey := make(map[key][]string)

	for _, r := range v.routes {
		k := key{pattern: r.Pattern, partition: partitionName(r)}
		byKey[k] = append(byKey[k], r.SourcePath)
	}

	for k, files := range byKey {
		if len(files) <= 1 {
			continue
		}
		v.errors = append(v.errors, ValidationError{
			Type:    ErrorDuplicateRoute,
			Message: fmt.Sprintf("duplicate %s route at %s", k.partition, k.pattern),
			Pattern: k.pattern,
			Files:   files,
		})
	}
}

// validateParams reports parameter names repeated within one route.
func (v *Validator) validateParams() {
	for _, r := range v.routes {
		seen := make(map[string]bool, len(r.Params))
		for _, name := range r.Params {
			if seen[name] {
				v.errors = append(v.errors, ValidationError{
					Type:    ErrorDuplicateParam,
					Message: fmt.Sprintf("parameter %q appears more than once in %s", name, r.Pattern),
					Pattern: r.Pattern,
					Files:   []string{r.SourcePath},
				})
				break
			}
			seen[name] = true
		}
	}
}

// validateCatchAll reports non-terminal and repeated catch-all segments.
// The matcher relies on the catch-all-is-last invariant and will silently
// bind the remainder at the first catch-all it sees, so these defects
// must be surfaced before the router is published.
func (v *Validator) validateCatchAll() {
	for _, r := range v.routes {
		count := 0
		lastIdx := -1
		for i, s := range r.Segments {
			if s.Kind == SegmentCatchAll {
				count++
				lastIdx = i
			}
		}

		if count > 1 {
			v.errors = append(v.errors, ValidationError{
				Type:    ErrorMultipleCatchAll,
				Message: fmt.Sprintf("%d catch-all segments in %s", count, r.Pattern),
				Pattern: r.Pattern,
				Files:   []string{r.SourcePath},
			})
			continue
		}

		if count == 1 && lastIdx != len(r.Segments)-1 {
			v.errors = append(v.errors, ValidationError{
				Type:    ErrorCatchAllNotLast,
				Message: fmt.Sprintf("catch-all is not the final segment of %s", r.Pattern),
				Pattern: r.Pattern,
				Files:   []string{r.SourcePath},
			})
		}
	}
}

// partitionName names the partition a route belongs to, for error text.
func partitionName(r *Route) string {
	switch {
	case r.IsLayout:
		return "layout"
	case r.IsErrorPage:
		return "error-page"
	default:
		return "page"
	}
}

// Validate compiles and checks routes in one call. It is the entry point
// the loader uses before publishing a snapshot.
func Validate(routes []*Route) error {
	return NewValidator(routes).Validate()
}
