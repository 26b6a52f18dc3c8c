package mapping

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/synclab/metasync/internal/metadata"
)

// ErrUnresolvable is returned when a source or destination id does not resolve to
// exactly one element
var ErrUnresolvable = errors.New("metadata could not be resolved to a single element")

const autoMapFields = "id,code,name,path"

// AutoMap finds the destination elements matching item.
//
// Candidates are searched by id, code, name and short name. A candidate with the same id
// wins, then one with the same code, otherwise every match is kept. When filter is not nil,
// candidates whose id is not in filter are discarded. When nothing remains and
// defaultValue is set, a single placeholder candidate with that id and code is returned.
func AutoMap(
	ctx context.Context,
	repo metadata.Repository,
	collection string,
	item Item,
	defaultValue string,
	filter []string,
) ([]MetadataMapping, error) {
	objects, err := repo.Get(ctx, collection, metadata.Query{
		Fields: autoMapFields,
		Filter: map[string]metadata.Predicate{
			"name":      metadata.Token(item.Name),
			"shortName": metadata.Token(item.ShortName),
			"id":        metadata.Eq(metadata.CleanOrgUnitPath(item.ID)),
			"code":      metadata.Eq(item.Code),
		},
		RootJunction: metadata.JunctionOr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search %s candidates: %w", collection, err)
	}

	candidates := make([]Item, 0, len(objects))
	for _, obj := range objects {
		candidates = append(candidates, Item{
			ID:   obj.ID(),
			Code: obj.Code(),
			Name: obj.Name(),
			Path: obj.String("path"),
		})
	}

	id := metadata.CleanOrgUnitPath(item.ID)
	if i := slices.IndexFunc(candidates, func(c Item) bool { return id != "" && c.ID == id }); i >= 0 {
		candidates = candidates[i : i+1]
	} else if i := slices.IndexFunc(candidates, func(c Item) bool { return item.Code != "" && c.Code == item.Code }); i >= 0 {
		candidates = candidates[i : i+1]
	}

	if filter != nil {
		candidates = slices.DeleteFunc(candidates, func(c Item) bool { return !slices.Contains(filter, c.ID) })
	}

	if len(candidates) == 0 && defaultValue != "" {
		candidates = append(candidates, Item{ID: defaultValue, Code: defaultValue})
	}

	mappings := make([]MetadataMapping, 0, len(candidates))
	for _, c := range candidates {
		mappedID := c.ID
		if c.Path != "" {
			mappedID = c.Path
		}
		mappings = append(mappings, MetadataMapping{
			MappedID:   mappedID,
			MappedName: c.Name,
			MappedCode: c.Code,
			Code:       item.Code,
		})
	}
	return mappings, nil
}

// AutoMapCollection maps each source element to the first matching destination element
// among destinations. Unmatched elements map to Disabled and are flagged as conflicts.
func AutoMapCollection(
	ctx context.Context,
	repo metadata.Repository,
	collection string,
	sources []Item,
	destinations []Item,
) (map[string]MetadataMapping, error) {
	result := make(map[string]MetadataMapping)
	if len(sources) == 0 {
		return result, nil
	}

	filter := make([]string, 0, len(destinations))
	for _, d := range destinations {
		if d.ID != "" {
			filter = append(filter, d.ID)
		}
	}

	for _, item := range sources {
		candidates, err := AutoMap(ctx, repo, collection, item, Disabled, filter)
		if err != nil {
			return nil, err
		}
		if item.ID == "" || len(candidates) == 0 {
			continue
		}
		candidate := candidates[0]
		candidate.Conflicts = candidate.MappedID == Disabled
		result[item.ID] = candidate
	}
	return result, nil
}

// CleanNestedMappedID returns the last dash separated segment of a nested mapping id
// such as "programId-programStageId"
func CleanNestedMappedID(id string) string {
	if i := strings.LastIndex(id, "-"); i >= 0 {
		return id[i+1:]
	}
	return id
}
