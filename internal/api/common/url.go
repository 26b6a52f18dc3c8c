package common

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/synclab/metasync/internal/service"
	"github.com/synclab/metasync/internal/storage"
)

// GetAndValidateURLParam extracts and decodes a URL parameter from the request.
// The decoded value must not be blank nor contain whitespace.
func GetAndValidateURLParam(r *http.Request, paramName string) (string, error) {
	decoded, err := url.PathUnescape(chi.URLParam(r, paramName))
	if err != nil {
		return "", fmt.Errorf("invalid URL encoding in %s", paramName)
	}

	if strings.TrimSpace(decoded) == "" {
		return "", fmt.Errorf("%s cannot be empty", paramName)
	}
	if strings.ContainsAny(decoded, " \t\n\r") {
		return "", fmt.Errorf("%s cannot contain whitespace", paramName)
	}
	return decoded, nil
}

// ListOptions reads the list query parameters: search, page, pageSize, sort as
// "field" or "field:desc", and any number of filter parameters as "field:value".
func ListOptions(r *http.Request) ([]service.Option, error) {
	query := r.URL.Query()
	var opts []service.Option

	if search := strings.TrimSpace(query.Get("search")); search != "" {
		opts = append(opts, service.WithSearch(search))
	}

	for _, param := range []struct {
		name string
		opt  func(int) service.Option
	}{
		{name: "page", opt: service.WithPage},
		{name: "pageSize", opt: service.WithPageSize},
	} {
		raw := query.Get(param.name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s parameter: must be an integer", param.name)
		}
		opts = append(opts, param.opt(n))
	}

	for _, filter := range query["filter"] {
		field, value, ok := strings.Cut(filter, ":")
		if !ok {
			return nil, fmt.Errorf("invalid filter parameter %q: expected field:value", filter)
		}
		opts = append(opts, service.WithEquals(field, value))
	}

	if sort := query.Get("sort"); sort != "" {
		field, order, _ := strings.Cut(sort, ":")
		if order == "" {
			order = string(storage.SortAsc)
		}
		opts = append(opts, service.WithSort(field, storage.SortOrder(order)))
	}

	return opts, nil
}
