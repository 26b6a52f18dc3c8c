package dhis

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/synclab/metasync/internal/metadata"
)

// newTestServer creates a new test server with keep-alives disabled.
func newTestServer(handler http.Handler) *httptest.Server {
	server := httptest.NewServer(handler)
	server.Config.SetKeepAlivesEnabled(false)
	return server
}

func newTestRepository(url string) *Repository {
	return NewRepository(NewClient(url, "admin", "district",
		WithTimeout(5*time.Second),
		WithRetries(3),
		WithRetryInterval(time.Millisecond),
	))
}

func TestRepository_Get(t *testing.T) {
	t.Parallel()

	requests := make(chan *http.Request, 1)
	server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests <- r
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"pager": {}, "dataElements": [{"id": "A", "code": "C1"}]}`))
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	objects, err := repo.Get(context.Background(), metadata.DataElements, metadata.Query{
		Fields: "id,code,name,path",
		Filter: map[string]metadata.Predicate{
			"id":   metadata.Eq("A"),
			"code": metadata.Eq("C1"),
			"name": metadata.Token(""),
		},
		RootJunction: metadata.JunctionOr,
	})
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "A", objects[0].ID())

	received := <-requests
	assert.Equal(t, "/api/dataElements.json", received.URL.Path)
	assert.Equal(t, []string{"code:eq:C1", "id:eq:A"}, received.URL.Query()["filter"])
	assert.Equal(t, "OR", received.URL.Query().Get("rootJunction"))
	assert.Equal(t, "false", received.URL.Query().Get("paging"))
	user, pass, ok := received.BasicAuth()
	assert.True(t, ok)
	assert.Equal(t, "admin", user)
	assert.Equal(t, "district", pass)
	assert.Equal(t, UserAgent, received.Header.Get("User-Agent"))
}

func TestRepository_GetByIDs(t *testing.T) {
	t.Parallel()

	server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/metadata.json", r.URL.Path)
		assert.Equal(t, "id:in:[A,B]", r.URL.Query().Get("filter"))
		_, _ = w.Write([]byte(`{
			"system": {"version": "2.38"},
			"dataElements": [{"id": "A"}],
			"options": [{"id": "B"}]
		}`))
	}))
	defer server.Close()

	pkg, err := newTestRepository(server.URL).GetByIDs(context.Background(), []string{"A", "B"}, "")
	require.NoError(t, err)
	assert.Len(t, pkg, 2)
	assert.Equal(t, "B", pkg[metadata.Options][0].ID())

	empty, err := newTestRepository(server.URL).GetByIDs(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepository_Post(t *testing.T) {
	t.Parallel()

	server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/metadata", r.URL.Path)
		assert.Equal(t, "DELETE", r.URL.Query().Get("importStrategy"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		var pkg metadata.Package
		assert.NoError(t, json.Unmarshal(body, &pkg))
		assert.Len(t, pkg[metadata.DataElements], 1)

		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"status": "ERROR"}`))
	}))
	defer server.Close()

	resp, err := newTestRepository(server.URL).Post(context.Background(),
		metadata.Package{metadata.DataElements: {{"id": "A"}}},
		metadata.ImportParams{ImportStrategy: metadata.ImportStrategyDelete},
	)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status": "ERROR"}`, string(resp))
}

func TestRepository_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       int
		wantAttempts int32
	}{
		{name: "not found is not retried", status: http.StatusNotFound, wantAttempts: 1},
		{name: "unauthorized is not retried", status: http.StatusUnauthorized, wantAttempts: 1},
		{name: "server errors are retried", status: http.StatusBadGateway, wantAttempts: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var attempts atomic.Int32
			server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				attempts.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			_, err := newTestRepository(server.URL).Get(context.Background(), metadata.Options, metadata.Query{})
			require.Error(t, err)

			var httpErr *HTTPError
			require.ErrorAs(t, err, &httpErr)
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.wantAttempts, attempts.Load())
		})
	}
}

func TestRepository_RetryRecovers(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"options": [{"id": "O"}]}`))
	}))
	defer server.Close()

	objects, err := newTestRepository(server.URL).Get(context.Background(), metadata.Options, metadata.Query{})
	require.NoError(t, err)
	assert.Len(t, objects, 1)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestRepository_Data(t *testing.T) {
	t.Parallel()

	server := newTestServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/dataValueSets.json":
			assert.Equal(t, []string{"DS1"}, r.URL.Query()["dataSet"])
			assert.Equal(t, []string{"OU1"}, r.URL.Query()["orgUnit"])
			assert.Equal(t, "2024-01-01", r.URL.Query().Get("startDate"))
			_, _ = w.Write([]byte(`{"dataValues": [{"dataElement": "A", "value": "1"}]}`))
		case "/api/events.json":
			_, _ = w.Write([]byte(`{"events": [{"event": "e1"}, {"event": "e2"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	repo := newTestRepository(server.URL)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	pkg, err := repo.GetAggregated(context.Background(), metadata.DataParams{
		OrgUnitPaths: []string{"/ROOT/OU1"},
		StartDate:    &start,
	}, []string{"DS1"}, nil)
	require.NoError(t, err)
	assert.Len(t, pkg[metadata.DataValues], 1)

	events, err := repo.GetEvents(context.Background(), metadata.DataParams{Events: []string{"e2"}}, []string{"P1"})
	require.NoError(t, err)
	require.Len(t, events[metadata.Events], 1)
	assert.Equal(t, "e2", events[metadata.Events][0].String("event"))
}
