package metadata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestMemoryRepository_GetAndPost(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository(Package{
		DataElements: {
			{"id": "A", "code": "C1", "name": "ANC visit"},
			{"id": "B", "code": "C2", "name": "Malaria cases"},
		},
		Options: {{"id": "O", "code": "YES"}},
	})

	objects, err := repo.Get(ctx, DataElements, Query{Filter: map[string]Predicate{"name": Token("malaria")}})
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, "B", objects[0].ID())

	pkg, err := repo.GetByIDs(ctx, []string{"A", "O"}, "")
	require.NoError(t, err)
	assert.Len(t, pkg[DataElements], 1)
	assert.Len(t, pkg[Options], 1)

	resp, err := repo.Post(ctx, Package{DataElements: {{"id": "A", "name": "renamed"}, {"id": "N"}}}, ImportParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.GetBytes(resp, "stats.created").Int())
	assert.Equal(t, int64(1), gjson.GetBytes(resp, "stats.updated").Int())

	resp, err = repo.Post(ctx, Package{DataElements: {{"id": "B"}}}, ImportParams{ImportStrategy: ImportStrategyDelete})
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.GetBytes(resp, "stats.deleted").Int())

	objects, err = repo.Get(ctx, DataElements, Query{})
	require.NoError(t, err)
	assert.Len(t, objects, 2)
	assert.Len(t, repo.Posts(), 2)
}

func TestMemoryRepository_Data(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewMemoryRepository(Package{
		DataValues: {
			{"dataElement": "A", "orgUnit": "OU1", "value": "3"},
			{"dataElement": "A", "orgUnit": "OU2", "value": "4"},
		},
	})

	pkg, err := repo.GetAggregated(ctx, DataParams{OrgUnitPaths: []string{"/ROOT/OU1"}}, nil, nil)
	require.NoError(t, err)
	require.Len(t, pkg[DataValues], 1)
	assert.Equal(t, "3", pkg[DataValues][0].String("value"))

	_, err = repo.PostEvents(ctx, Package{Events: {{"event": "e1", "orgUnit": "OU1"}, {"event": "e2", "orgUnit": "OU1"}}}, ImportParams{})
	require.NoError(t, err)

	events, err := repo.GetEvents(ctx, DataParams{}, nil)
	require.NoError(t, err)
	assert.Len(t, events[Events], 2)
}
