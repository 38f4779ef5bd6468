package helpers

import "strings"

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}

// Fill points *dst at a copy of v when *dst is nil
func Fill[T any](dst **T, v T) {
	if *dst == nil {
		*dst = &v
	}
}

// Set copies *v into dst when v is not nil
func Set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// TrimSpace trims *s in place; nil is left untouched
func TrimSpace(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

// NilIfEmpty returns nil when s points at an empty string
func NilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
