package metadata

import (
	"slices"
	"strings"
)

// referenceFields lists the fields holding references to a collection when they differ
// from the collection name and its singular form
var referenceFields = map[string][]string{
	Attributes:              {"attributeValues.attribute"},
	DataElements:            {"dataSetElements.dataElement", "programStageDataElements.dataElement"},
	TrackedEntityAttributes: {"programTrackedEntityAttributes.trackedEntityAttribute"},
}

// References returns the ids of the objects of collection referenced by the object,
// in order of appearance and without duplicates
func (o Object) References(collection string) []string {
	fields := []string{collection, singular(collection)}
	fields = append(fields, referenceFields[collection]...)

	var out []string
	for _, field := range fields {
		for _, id := range collectIDs(map[string]any(o), strings.Split(field, ".")) {
			if !slices.Contains(out, id) {
				out = append(out, id)
			}
		}
	}
	return out
}

// References returns the ids of the objects of collection referenced by any object of the package
func (p Package) References(collection string) []string {
	var out []string
	for _, objects := range p {
		for _, obj := range objects {
			for _, id := range obj.References(collection) {
				if !slices.Contains(out, id) {
					out = append(out, id)
				}
			}
		}
	}
	return out
}

func collectIDs(v any, path []string) []string {
	switch t := v.(type) {
	case Object:
		return collectIDs(map[string]any(t), path)
	case map[string]any:
		if len(path) == 0 {
			if id, ok := t["id"].(string); ok && id != "" {
				return []string{id}
			}
			return nil
		}
		next, ok := t[path[0]]
		if !ok {
			return nil
		}
		return collectIDs(next, path[1:])
	case []any:
		var out []string
		for _, item := range t {
			out = append(out, collectIDs(item, path)...)
		}
		return out
	case []Object:
		var out []string
		for _, item := range t {
			out = append(out, collectIDs(item, path)...)
		}
		return out
	default:
		return nil
	}
}

func singular(collection string) string {
	if base, ok := strings.CutSuffix(collection, "ies"); ok {
		return base + "y"
	}
	return strings.TrimSuffix(collection, "s")
}
