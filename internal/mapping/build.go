package mapping

import (
	"context"
	"fmt"

	"github.com/synclab/metasync/internal/logger"
	"github.com/synclab/metasync/internal/metadata"
)

const (
	itemFields          = "id,name,shortName,code"
	categoryComboFields = "categoryCombo[id,name,categories[categoryOptions[" + itemFields + "]]]"
	optionSetFields     = "optionSet[options[" + itemFields + "]],commentOptionSet[options[" + itemFields + "]]"
	programStageFields  = "programStages[id,name]"
)

type optionSet struct {
	Options []Item `json:"options"`
}

type category struct {
	CategoryOptions []Item `json:"categoryOptions"`
}

type categoryCombo struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Categories []category `json:"categories"`
}

// combinedMetadata is an element with the nested structures needed to map it
type combinedMetadata struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Code             string         `json:"code"`
	Path             string         `json:"path"`
	CategoryCombo    *categoryCombo `json:"categoryCombo"`
	OptionSet        *optionSet     `json:"optionSet"`
	CommentOptionSet *optionSet     `json:"commentOptionSet"`
	ProgramStages    []Item         `json:"programStages"`
}

func fieldsFor(collection string) string {
	switch collection {
	case metadata.DataElements:
		return "id,name,code," + categoryComboFields + "," + optionSetFields
	case metadata.Programs:
		return "id,name,code," + categoryComboFields + "," + programStageFields
	default:
		return "id,name,code"
	}
}

func getCombinedMetadata(
	ctx context.Context, repo metadata.Repository, collection, id string,
) ([]combinedMetadata, error) {
	objects, err := repo.Get(ctx, collection, metadata.Query{
		Fields: fieldsFor(collection),
		Filter: map[string]metadata.Predicate{
			"id": metadata.Eq(metadata.CleanOrgUnitPath(id)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s %s: %w", collection, id, err)
	}

	out := make([]combinedMetadata, len(objects))
	for i, obj := range objects {
		if err := metadata.Decode(obj, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c combinedMetadata) categoryOptions() []Item {
	if c.CategoryCombo == nil {
		return nil
	}
	var out []Item
	for _, cat := range c.CategoryCombo.Categories {
		out = append(out, cat.CategoryOptions...)
	}
	return out
}

func (c combinedMetadata) options() []Item {
	var out []Item
	seen := make(map[string]struct{})
	for _, set := range []*optionSet{c.OptionSet, c.CommentOptionSet} {
		if set == nil {
			continue
		}
		for _, option := range set.Options {
			if _, ok := seen[option.ID]; ok {
				continue
			}
			seen[option.ID] = struct{}{}
			out = append(out, option)
		}
	}
	return out
}

// BuildMapping builds the mapping of a source element to a destination element,
// including the nested category combo, category option, option and program stage
// groups. Groups without entries are omitted.
//
// A Disabled destination yields a disabled mapping without any destination lookup.
// ErrUnresolvable is returned when either id does not resolve to exactly one element.
func BuildMapping(
	ctx context.Context,
	source, destination metadata.Repository,
	collection, sourceID, destinationID string,
) (MetadataMapping, error) {
	origin, err := getCombinedMetadata(ctx, source, collection, sourceID)
	if err != nil {
		return MetadataMapping{}, err
	}

	if destinationID == Disabled {
		var code string
		if len(origin) == 1 {
			code = origin[0].Code
		}
		return MetadataMapping{
			MappedID:   Disabled,
			MappedCode: Disabled,
			Code:       code,
			Conflicts:  false,
			Mapping:    Dictionary{},
		}, nil
	}

	target, err := getCombinedMetadata(ctx, destination, collection, destinationID)
	if err != nil {
		return MetadataMapping{}, err
	}

	if len(origin) != 1 || len(target) != 1 {
		logger.Debugf("Cannot map %s %s to %s: found %d source and %d destination elements",
			collection, sourceID, destinationID, len(origin), len(target))
		return MetadataMapping{}, fmt.Errorf("%w: %s %s -> %s", ErrUnresolvable, collection, sourceID, destinationID)
	}

	elements, err := AutoMap(ctx, destination, collection,
		Item{ID: destinationID, Code: origin[0].Code}, destinationID,
		[]string{metadata.CleanOrgUnitPath(destinationID)})
	if err != nil {
		return MetadataMapping{}, err
	}
	element := elements[0]

	categoryOptions, err := AutoMapCollection(ctx, destination, metadata.CategoryOptions,
		origin[0].categoryOptions(), target[0].categoryOptions())
	if err != nil {
		return MetadataMapping{}, err
	}

	options, err := AutoMapCollection(ctx, destination, metadata.Options,
		origin[0].options(), target[0].options())
	if err != nil {
		return MetadataMapping{}, err
	}

	programStages, err := autoMapProgramStages(ctx, destination, origin[0], target[0])
	if err != nil {
		return MetadataMapping{}, err
	}

	mapping := Dictionary{}
	for group, entries := range map[string]map[string]MetadataMapping{
		GroupCategoryCombos:  autoMapCategoryCombo(origin[0], target[0]),
		GroupCategoryOptions: categoryOptions,
		GroupOptions:         options,
		GroupProgramStages:   programStages,
	} {
		if len(entries) > 0 {
			mapping[group] = entries
		}
	}

	element.Conflicts = false
	element.Mapping = mapping
	return element, nil
}

func autoMapCategoryCombo(origin, target combinedMetadata) map[string]MetadataMapping {
	if origin.CategoryCombo == nil {
		return nil
	}

	mapped := MetadataMapping{MappedID: Disabled, Mapping: Dictionary{}}
	if target.CategoryCombo != nil && target.CategoryCombo.ID != "" {
		mapped.MappedID = target.CategoryCombo.ID
		mapped.MappedName = target.CategoryCombo.Name
	}
	return map[string]MetadataMapping{origin.CategoryCombo.ID: mapped}
}

func autoMapProgramStages(
	ctx context.Context, repo metadata.Repository, origin, target combinedMetadata,
) (map[string]MetadataMapping, error) {
	if len(origin.ProgramStages) == 1 && len(target.ProgramStages) == 1 {
		return map[string]MetadataMapping{
			origin.ProgramStages[0].ID: {
				MappedID:   target.ProgramStages[0].ID,
				MappedName: target.ProgramStages[0].Name,
				Conflicts:  false,
				Mapping:    Dictionary{},
			},
		}, nil
	}
	return AutoMapCollection(ctx, repo, metadata.ProgramStages, origin.ProgramStages, target.ProgramStages)
}

// GetValidIDs returns the ids of the category options, options and program stages
// nested in an element
func GetValidIDs(ctx context.Context, repo metadata.Repository, collection, id string) ([]string, error) {
	combined, err := getCombinedMetadata(ctx, repo, collection, id)
	if err != nil {
		return nil, err
	}
	if len(combined) != 1 {
		return nil, fmt.Errorf("%w: %s %s", ErrUnresolvable, collection, id)
	}

	var ids []string
	seen := make(map[string]struct{})
	for _, group := range [][]Item{combined[0].categoryOptions(), combined[0].options(), combined[0].ProgramStages} {
		for _, item := range group {
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			ids = append(ids, item.ID)
		}
	}
	return ids, nil
}
