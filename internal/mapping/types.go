// Package mapping matches metadata elements of a source instance with elements of a
// destination instance and builds the nested mapping dictionaries used to translate ids.
package mapping

import "maps"

// Disabled marks an element excluded from synchronization
const Disabled = "DISABLED"

// Nested mapping groups of an element mapping
const (
	GroupCategoryCombos  = "categoryCombos"
	GroupCategoryOptions = "categoryOptions"
	GroupOptions         = "options"
	GroupProgramStages   = "programStages"
)

// Collections of the instance mapping dictionary used to translate data
const (
	AggregatedDataElements = "aggregatedDataElements"
	OrganisationUnits      = "organisationUnits"
	EventPrograms          = "eventPrograms"
	ProgramDataElements    = "programDataElements"
)

// MetadataMapping describes how one source element maps to a destination element
type MetadataMapping struct {
	MappedID   string `json:"mappedId,omitempty"`
	MappedCode string `json:"mappedCode,omitempty"`
	MappedName string `json:"mappedName,omitempty"`

	// Code is the code of the source element
	Code string `json:"code,omitempty"`

	// Conflicts is set when no usable destination element was found
	Conflicts bool `json:"conflicts"`

	Mapping Dictionary `json:"mapping,omitempty"`
}

// IsDisabled reports whether the element is excluded from synchronization
func (m MetadataMapping) IsDisabled() bool {
	return m.MappedID == Disabled
}

// Dictionary maps a group or collection name to mappings keyed by source id
type Dictionary map[string]map[string]MetadataMapping

// Lookup returns the mapping of a source id within a group
func (d Dictionary) Lookup(group, id string) (MetadataMapping, bool) {
	m, ok := d[group][id]
	return m, ok
}

// Set returns a copy of the dictionary with the mapping of a source id replaced
func (d Dictionary) Set(group, id string, m MetadataMapping) Dictionary {
	out := d.Clone()
	if out == nil {
		out = Dictionary{}
	}
	if out[group] == nil {
		out[group] = map[string]MetadataMapping{}
	}
	out[group][id] = m
	return out
}

// Clone returns a deep copy of the dictionary
func (d Dictionary) Clone() Dictionary {
	if d == nil {
		return nil
	}
	out := make(Dictionary, len(d))
	for group, entries := range d {
		cloned := make(map[string]MetadataMapping, len(entries))
		for id, m := range entries {
			m.Mapping = m.Mapping.Clone()
			cloned[id] = m
		}
		out[group] = cloned
	}
	return out
}

// Merge returns the groups of both dictionaries, other taking precedence for equal ids
func (d Dictionary) Merge(other Dictionary) Dictionary {
	out := d.Clone()
	if out == nil {
		out = Dictionary{}
	}
	for group, entries := range other {
		if out[group] == nil {
			out[group] = map[string]MetadataMapping{}
		}
		maps.Copy(out[group], entries)
	}
	return out
}

// Item is the identifying part of a metadata element used for matching
type Item struct {
	ID        string `json:"id,omitempty"`
	Code      string `json:"code,omitempty"`
	Name      string `json:"name,omitempty"`
	ShortName string `json:"shortName,omitempty"`
	Path      string `json:"path,omitempty"`
}
