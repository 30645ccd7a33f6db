// Package query filters, sorts, and paginates entity snapshots read from the
// store. Every function here is pure: it reads its inputs, allocates its
// outputs, and never touches the store.
package query

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// StringFilter matches a string field. All present operators must hold.
// contains, not_contains, starts_with, and ends_with ignore case; eq, ne,
// in, and not_in do not.
type StringFilter struct {
	Eq          *string  `json:"eq,omitempty"`
	Ne          *string  `json:"ne,omitempty"`
	Contains    *string  `json:"contains,omitempty"`
	NotContains *string  `json:"not_contains,omitempty"`
	In          []string `json:"in,omitempty"`
	NotIn       []string `json:"not_in,omitempty"`
	StartsWith  *string  `json:"starts_with,omitempty"`
	EndsWith    *string  `json:"ends_with,omitempty"`
}

// Match reports whether v satisfies f. A nil filter matches everything.
func (f *StringFilter) Match(v string) bool {
	if f == nil {
		return true
	}
	lower := strings.ToLower(v)
	switch {
	case f.Eq != nil && v != *f.Eq:
		return false
	case f.Ne != nil && v == *f.Ne:
		return false
	case f.Contains != nil && !strings.Contains(lower, strings.ToLower(*f.Contains)):
		return false
	case f.NotContains != nil && strings.Contains(lower, strings.ToLower(*f.NotContains)):
		return false
	case f.In != nil && !slices.Contains(f.In, v):
		return false
	case f.NotIn != nil && slices.Contains(f.NotIn, v):
		return false
	case f.StartsWith != nil && !strings.HasPrefix(lower, strings.ToLower(*f.StartsWith)):
		return false
	case f.EndsWith != nil && !strings.HasSuffix(lower, strings.ToLower(*f.EndsWith)):
		return false
	}
	return true
}

// IntFilter matches an integer field. Optional integers that are unset
// compare as 0.
type IntFilter struct {
	Eq    *int  `json:"eq,omitempty"`
	Ne    *int  `json:"ne,omitempty"`
	Gt    *int  `json:"gt,omitempty"`
	Lt    *int  `json:"lt,omitempty"`
	Gte   *int  `json:"gte,omitempty"`
	Lte   *int  `json:"lte,omitempty"`
	In    []int `json:"in,omitempty"`
	NotIn []int `json:"not_in,omitempty"`
}

// Match reports whether v satisfies f. A nil filter matches everything.
func (f *IntFilter) Match(v int) bool {
	if f == nil {
		return true
	}
	switch {
	case f.Eq != nil && v != *f.Eq:
		return false
	case f.Ne != nil && v == *f.Ne:
		return false
	case f.Gt != nil && v <= *f.Gt:
		return false
	case f.Lt != nil && v >= *f.Lt:
		return false
	case f.Gte != nil && v < *f.Gte:
		return false
	case f.Lte != nil && v > *f.Lte:
		return false
	case f.In != nil && !slices.Contains(f.In, v):
		return false
	case f.NotIn != nil && slices.Contains(f.NotIn, v):
		return false
	}
	return true
}

// MatchPtr is Match for an optional integer.
func (f *IntFilter) MatchPtr(v *int) bool {
	if v == nil {
		return f.Match(0)
	}
	return f.Match(*v)
}

// TimeFilter matches a timestamp field. Between takes exactly two bounds and
// is inclusive at both ends.
type TimeFilter struct {
	Eq      *time.Time  `json:"eq,omitempty"`
	Ne      *time.Time  `json:"ne,omitempty"`
	Gt      *time.Time  `json:"gt,omitempty"`
	Lt      *time.Time  `json:"lt,omitempty"`
	Gte     *time.Time  `json:"gte,omitempty"`
	Lte     *time.Time  `json:"lte,omitempty"`
	Between []time.Time `json:"between,omitempty"`
}

// Validate rejects a between clause that does not have exactly two bounds.
func (f *TimeFilter) Validate() error {
	if f == nil || f.Between == nil {
		return nil
	}
	if len(f.Between) != 2 {
		return types.Invalid("query.TimeFilter.Validate", fmt.Errorf("between needs exactly 2 bounds, got %d", len(f.Between)))
	}
	return nil
}

// Match reports whether v satisfies f. A nil filter matches everything.
// Call Validate first; a malformed between clause never matches.
func (f *TimeFilter) Match(v time.Time) bool {
	if f == nil {
		return true
	}
	switch {
	case f.Eq != nil && !v.Equal(*f.Eq):
		return false
	case f.Ne != nil && v.Equal(*f.Ne):
		return false
	case f.Gt != nil && !v.After(*f.Gt):
		return false
	case f.Lt != nil && !v.Before(*f.Lt):
		return false
	case f.Gte != nil && v.Before(*f.Gte):
		return false
	case f.Lte != nil && v.After(*f.Lte):
		return false
	}
	if f.Between != nil {
		if len(f.Between) != 2 {
			return false
		}
		if v.Before(f.Between[0]) || v.After(f.Between[1]) {
			return false
		}
	}
	return true
}

// keep returns the items for which match holds, in their original order.
// It always allocates, so the result never aliases items.
func keep[T any](items []T, match func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}

func validateTimes(fs ...*TimeFilter) error {
	for _, f := range fs {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	return nil
}
