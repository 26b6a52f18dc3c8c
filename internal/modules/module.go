// Package modules defines synchronization modules, reusable bundles of metadata selection
// and include/exclude configuration, and their persistence.
package modules

import (
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/synclab/metasync/internal/metadata"
)

// Type is the kind of synchronization a module configures
type Type string

// Module types
const (
	TypeMetadata   Type = "metadata"
	TypeAggregated Type = "aggregated"
	TypeEvents     Type = "events"
)

// Reference points to a named entity of the instance such as a user or user group
type Reference struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Module holds the properties shared by every module type
type Module struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Department  Reference `json:"department"`
	Type        Type      `json:"type"`
	Created     time.Time `json:"created"`
	LastUpdated time.Time `json:"lastUpdated"`
	User        Reference `json:"user"`
}

// MetadataModule selects metadata elements to synchronize together with the
// dependency rules applied to each metadata type.
// Values are never modified in place: every operation returns a new module.
type MetadataModule struct {
	Module

	MetadataIDs              []string `json:"metadataIds"`
	ExcludedIDs              []string `json:"excludedIds"`
	UseDefaultIncludeExclude bool     `json:"useDefaultIncludeExclude"`

	// MetadataIncludeExcludeRules is populated only when UseDefaultIncludeExclude is false
	MetadataIncludeExcludeRules MetadataIncludeExcludeRules `json:"metadataIncludeExcludeRules"`
}

// NewMetadataModule returns a module with default values and a fresh id
func NewMetadataModule() MetadataModule {
	return MetadataModule{
		Module: Module{
			ID:   uuid.NewString(),
			Type: TypeMetadata,
		},
		MetadataIDs:                 []string{},
		ExcludedIDs:                 []string{},
		UseDefaultIncludeExclude:    true,
		MetadataIncludeExcludeRules: MetadataIncludeExcludeRules{},
	}
}

// Update returns a copy of the module modified by fn
func (m MetadataModule) Update(fn func(*MetadataModule)) MetadataModule {
	out := m.clone()
	if fn != nil {
		fn(&out)
	}
	return out
}

// MarkToUseDefaultIncludeExclude switches to the schema default rules and clears custom rules
func (m MetadataModule) MarkToUseDefaultIncludeExclude() MetadataModule {
	return m.Update(func(out *MetadataModule) {
		out.UseDefaultIncludeExclude = true
		out.MetadataIncludeExcludeRules = MetadataIncludeExcludeRules{}
	})
}

// MarkToNotUseDefaultIncludeExclude switches to custom rules seeded from the defaults of models
func (m MetadataModule) MarkToNotUseDefaultIncludeExclude(models []metadata.Model) MetadataModule {
	return m.Update(func(out *MetadataModule) {
		out.UseDefaultIncludeExclude = false
		out.MetadataIncludeExcludeRules = DefaultRules(models)
	})
}

// MoveRuleFromExcludeToInclude includes paths and their ancestors for metadataType.
// The module is left untouched when the transition is invalid.
func (m MetadataModule) MoveRuleFromExcludeToInclude(metadataType string, paths []string) (MetadataModule, error) {
	updated, err := m.MetadataIncludeExcludeRules.MoveToInclude(metadataType, paths)
	if err != nil {
		return m, err
	}
	return m.Update(func(out *MetadataModule) { out.MetadataIncludeExcludeRules = updated }), nil
}

// MoveRuleFromIncludeToExclude excludes paths and their included descendants for metadataType.
// The module is left untouched when the transition is invalid.
func (m MetadataModule) MoveRuleFromIncludeToExclude(metadataType string, paths []string) (MetadataModule, error) {
	updated, err := m.MetadataIncludeExcludeRules.MoveToExclude(metadataType, paths)
	if err != nil {
		return m, err
	}
	return m.Update(func(out *MetadataModule) { out.MetadataIncludeExcludeRules = updated }), nil
}

// RulesFor returns the include rules applied to a metadata type
func (m MetadataModule) RulesFor(model metadata.Model) []string {
	if m.UseDefaultIncludeExclude {
		return slices.Clone(model.IncludeRules)
	}
	if r, ok := m.MetadataIncludeExcludeRules[model.Collection]; ok {
		return slices.Clone(r.IncludeRules)
	}
	return slices.Clone(model.IncludeRules)
}

// Validate checks that the module has a name and selected metadata
func (m MetadataModule) Validate() error {
	return errors.Join(
		HasText("name", m.Name),
		HasItems("metadataIds", "metadata element", m.MetadataIDs),
	)
}

func (m MetadataModule) clone() MetadataModule {
	out := m
	out.MetadataIDs = slices.Clone(m.MetadataIDs)
	out.ExcludedIDs = slices.Clone(m.ExcludedIDs)
	out.MetadataIncludeExcludeRules = m.MetadataIncludeExcludeRules.Clone()
	return out
}
