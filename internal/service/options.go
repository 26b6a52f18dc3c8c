package service

import (
	"fmt"

	"github.com/synclab/metasync/internal/storage"
)

// ListOptions are the options of list operations
type ListOptions struct {
	Filters    storage.Filters
	Pagination storage.Pagination
}

// Option sets an option of a list operation
type Option func(*ListOptions) error

// WithSearch keeps the documents whose name contains search
func WithSearch(search string) Option {
	return func(o *ListOptions) error {
		if search == "" {
			return fmt.Errorf("invalid search: %s", search)
		}
		o.Filters.Search = search
		return nil
	}
}

// WithEquals keeps the documents whose field equals value
func WithEquals(field, value string) Option {
	return func(o *ListOptions) error {
		if field == "" {
			return fmt.Errorf("invalid filter field: %q", field)
		}
		if o.Filters.Equals == nil {
			o.Filters.Equals = make(map[string]string)
		}
		o.Filters.Equals[field] = value
		return nil
	}
}

// WithPage selects the page of the listing, starting at 1
func WithPage(page int) Option {
	return func(o *ListOptions) error {
		if page < 1 {
			return fmt.Errorf("invalid page: %d", page)
		}
		o.Pagination.Page = page
		return nil
	}
}

// WithPageSize sets the number of documents per page
func WithPageSize(size int) Option {
	return func(o *ListOptions) error {
		if size < 1 || size > maxPageSize {
			return fmt.Errorf("invalid page size: %d, must be between 1 and %d", size, maxPageSize)
		}
		o.Pagination.PageSize = size
		return nil
	}
}

// WithSort orders the listing by field
func WithSort(field string, order storage.SortOrder) Option {
	return func(o *ListOptions) error {
		if field == "" {
			return fmt.Errorf("invalid sort field: %q", field)
		}
		switch order {
		case storage.SortAsc, storage.SortDesc:
		default:
			return fmt.Errorf("invalid sort order: %q", order)
		}
		o.Pagination.SortField = field
		o.Pagination.SortOrder = order
		return nil
	}
}

const maxPageSize = 1000

// ApplyOptions returns the list options with defaults, page 1 of DefaultPageSize documents
func ApplyOptions(opts ...Option) (ListOptions, error) {
	options := ListOptions{
		Pagination: storage.Pagination{Page: 1, PageSize: storage.DefaultPageSize},
	}
	for _, opt := range opts {
		if err := opt(&options); err != nil {
			return ListOptions{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
	}
	return options, nil
}
