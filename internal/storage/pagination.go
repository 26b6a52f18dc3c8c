package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
)

// DefaultPageSize is used when a pagination request has no page size
const DefaultPageSize = 25

// SortOrder orders a paginated listing
type SortOrder string

const (
	// SortAsc sorts in ascending order
	SortAsc SortOrder = "asc"

	// SortDesc sorts in descending order
	SortDesc SortOrder = "desc"
)

// Filters restricts the documents of a paginated listing
type Filters struct {
	// Search keeps documents whose search fields contain the text, case insensitive
	Search string

	// SearchFields are the JSON paths searched, "name" when empty
	SearchFields []string

	// Equals keeps documents whose JSON path values equal the given strings
	Equals map[string]string
}

// Pagination selects a page of a listing
type Pagination struct {
	Page      int
	PageSize  int
	SortField string
	SortOrder SortOrder
}

// Pager describes the page returned by a listing
type Pager struct {
	Page      int `json:"page"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
	PageSize  int `json:"pageSize"`
}

// PaginatedObjects is a page of decoded documents
type PaginatedObjects[T any] struct {
	Objects []T   `json:"objects"`
	Pager   Pager `json:"pager"`
}

// GetPaginatedData lists the documents of namespace, filters and sorts them on their
// JSON fields, and decodes the requested page
func GetPaginatedData[T any](
	ctx context.Context, store DocumentStore, namespace string, filters Filters, pagination Pagination,
) (PaginatedObjects[T], error) {
	documents, err := store.ListData(ctx, namespace)
	if err != nil {
		return PaginatedObjects[T]{}, err
	}

	filtered := make([]json.RawMessage, 0, len(documents))
	for _, doc := range documents {
		if filters.matches(doc) {
			filtered = append(filtered, doc)
		}
	}

	if pagination.SortField != "" {
		slices.SortStableFunc(filtered, func(a, b json.RawMessage) int {
			cmp := compareResults(
				gjson.GetBytes(a, pagination.SortField),
				gjson.GetBytes(b, pagination.SortField),
			)
			if pagination.SortOrder == SortDesc {
				return -cmp
			}
			return cmp
		})
	}

	pageSize := pagination.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := max(pagination.Page, 1)
	total := len(filtered)

	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	objects := make([]T, 0, end-start)
	for _, doc := range filtered[start:end] {
		var obj T
		if err := json.Unmarshal(doc, &obj); err != nil {
			return PaginatedObjects[T]{}, fmt.Errorf("failed to decode %s document: %w", namespace, err)
		}
		objects = append(objects, obj)
	}

	return PaginatedObjects[T]{
		Objects: objects,
		Pager: Pager{
			Page:      page,
			PageCount: (total + pageSize - 1) / pageSize,
			Total:     total,
			PageSize:  pageSize,
		},
	}, nil
}

func (f Filters) matches(doc json.RawMessage) bool {
	for path, want := range f.Equals {
		if gjson.GetBytes(doc, path).String() != want {
			return false
		}
	}

	if f.Search == "" {
		return true
	}

	fields := f.SearchFields
	if len(fields) == 0 {
		fields = []string{"name"}
	}
	needle := strings.ToLower(f.Search)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(gjson.GetBytes(doc, field).String()), needle) {
			return true
		}
	}
	return false
}

func compareResults(a, b gjson.Result) int {
	if a.Type == gjson.Number && b.Type == gjson.Number {
		switch {
		case a.Num < b.Num:
			return -1
		case a.Num > b.Num:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(a.String()), strings.ToLower(b.String()))
}
