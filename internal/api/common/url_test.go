package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synclab/metasync/internal/service"
	"github.com/synclab/metasync/internal/storage"
)

func TestGetAndValidateURLParam(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		value     string
		wantValue string
		wantErr   string
	}{
		{name: "plain id", value: "a1B2c3", wantValue: "a1B2c3"},
		{name: "encoded dash", value: "rule%2D1", wantValue: "rule-1"},
		{name: "empty", value: "", wantErr: "id cannot be empty"},
		{name: "blank", value: "%20%20", wantErr: "id cannot be empty"},
		{name: "whitespace", value: "a%20b", wantErr: "id cannot contain whitespace"},
		{name: "bad encoding", value: "%zz", wantErr: "invalid URL encoding in id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.value)
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			got, err := GetAndValidateURLParam(req, "id")
			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, got)
		})
	}
}

func TestListOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		query   string
		want    service.ListOptions
		wantErr string
	}{
		{
			name:  "defaults",
			query: "",
			want: service.ListOptions{
				Pagination: storage.Pagination{Page: 1, PageSize: storage.DefaultPageSize},
			},
		},
		{
			name:  "all parameters",
			query: "search=anc&page=2&pageSize=5&sort=name:desc&filter=type:metadata",
			want: service.ListOptions{
				Filters: storage.Filters{Search: "anc", Equals: map[string]string{"type": "metadata"}},
				Pagination: storage.Pagination{
					Page: 2, PageSize: 5, SortField: "name", SortOrder: storage.SortDesc,
				},
			},
		},
		{
			name:  "ascending by default",
			query: "sort=created",
			want: service.ListOptions{
				Pagination: storage.Pagination{
					Page: 1, PageSize: storage.DefaultPageSize, SortField: "created", SortOrder: storage.SortAsc,
				},
			},
		},
		{name: "page not a number", query: "page=two", wantErr: "invalid page parameter"},
		{name: "malformed filter", query: "filter=type", wantErr: "invalid filter parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)
			opts, err := ListOptions(req)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)

			got, err := service.ApplyOptions(opts...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
