package modules

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/synclab/metasync/internal/metadata"
	"github.com/synclab/metasync/internal/rules"
)

// ErrInvalidTransition is returned when rules are moved from a set they do not belong to
var ErrInvalidTransition = errors.New("invalid rule transition")

// ExcludeIncludeRules holds the dependency paths included and excluded for one metadata type
type ExcludeIncludeRules struct {
	IncludeRules []string `json:"includeRules"`
	ExcludeRules []string `json:"excludeRules"`
}

// MetadataIncludeExcludeRules maps a metadata type (collection name) to its rules
type MetadataIncludeExcludeRules map[string]ExcludeIncludeRules

// DefaultRules seeds rules from the schema defaults of each model
func DefaultRules(models []metadata.Model) MetadataIncludeExcludeRules {
	out := make(MetadataIncludeExcludeRules, len(models))
	for _, model := range models {
		out[model.Collection] = ExcludeIncludeRules{
			IncludeRules: slices.Clone(model.IncludeRules),
			ExcludeRules: slices.Clone(model.ExcludeRules),
		}
	}
	return out
}

// Clone returns a deep copy of the rules
func (r MetadataIncludeExcludeRules) Clone() MetadataIncludeExcludeRules {
	if r == nil {
		return nil
	}
	out := maps.Clone(r)
	for k, v := range out {
		out[k] = ExcludeIncludeRules{
			IncludeRules: slices.Clone(v.IncludeRules),
			ExcludeRules: slices.Clone(v.ExcludeRules),
		}
	}
	return out
}

// MoveToInclude moves paths of a metadata type from exclude to include, together with
// all of their ancestors. Every path must currently be excluded.
func (r MetadataIncludeExcludeRules) MoveToInclude(metadataType string, paths []string) (MetadataIncludeExcludeRules, error) {
	current, ok := r[metadataType]
	if !ok {
		return nil, fmt.Errorf("%w: no rules defined for %s", ErrInvalidTransition, metadataType)
	}

	if !rules.ContainsAll(current.ExcludeRules, paths) {
		return nil, fmt.Errorf("%w: Rules error: It's not possible move rules that do not exist in exclude to include",
			ErrInvalidTransition)
	}

	closure := slices.Clone(paths)
	for _, path := range paths {
		closure = rules.Union(closure, rules.ParentsOf(path))
	}

	out := r.Clone()
	out[metadataType] = ExcludeIncludeRules{
		IncludeRules: rules.Union(current.IncludeRules, closure),
		ExcludeRules: rules.Difference(current.ExcludeRules, closure),
	}
	return out, nil
}

// MoveToExclude moves paths of a metadata type from include to exclude, together with
// their included descendants. Every path must currently be included.
func (r MetadataIncludeExcludeRules) MoveToExclude(metadataType string, paths []string) (MetadataIncludeExcludeRules, error) {
	current, ok := r[metadataType]
	if !ok {
		return nil, fmt.Errorf("%w: no rules defined for %s", ErrInvalidTransition, metadataType)
	}

	if !rules.ContainsAll(current.IncludeRules, paths) {
		return nil, fmt.Errorf("%w: Rules error: It's not possible move rules that do not exist in include to exclude",
			ErrInvalidTransition)
	}

	closure := slices.Clone(paths)
	for _, path := range paths {
		closure = rules.Union(closure, rules.DescendantsOf(path, current.IncludeRules))
	}

	out := r.Clone()
	out[metadataType] = ExcludeIncludeRules{
		IncludeRules: rules.Difference(current.IncludeRules, closure),
		ExcludeRules: rules.Union(current.ExcludeRules, closure),
	}
	return out, nil
}
