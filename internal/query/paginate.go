package query

import (
	"fmt"

	"github.com/mesh-intelligence/crm/pkg/types"
)

// PageInfo describes where a page sits in the filtered result.
type PageInfo struct {
	Total       int  `json:"total"` // Items after filtering, before pagination.
	Page        int  `json:"page"`  // Zero-based page index.
	Size        int  `json:"size"`
	HasNext     bool `json:"has_next"`
	HasPrevious bool `json:"has_previous"`
}

// Page is one slice of a result with its metadata.
type Page[T any] struct {
	Items    []T      `json:"items"`
	PageInfo PageInfo `json:"page_info"`
}

// Paginate returns page number page (zero-based) of size items. A page past
// the end is empty but carries accurate metadata. size <= 0 or page < 0 is
// an invalid argument.
func Paginate[T any](items []T, page, size int) (Page[T], error) {
	const op = "query.Paginate"
	if size <= 0 {
		return Page[T]{}, types.Invalid(op, fmt.Errorf("page size must be positive, got %d", size))
	}
	if page < 0 {
		return Page[T]{}, types.Invalid(op, fmt.Errorf("page must not be negative, got %d", page))
	}

	total := len(items)
	start, end := total, total
	if page <= total/size {
		start = page * size
		end = min(start+size, total)
	}

	out := make([]T, end-start)
	copy(out, items[start:end])
	return Page[T]{
		Items: out,
		PageInfo: PageInfo{
			Total:       total,
			Page:        page,
			Size:        size,
			HasNext:     page < total/size && (page+1)*size < total,
			HasPrevious: page > 0,
		},
	}, nil
}
