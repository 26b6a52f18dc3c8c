// Package syncrule defines synchronization rules: a saved selection of what to synchronize,
// where to send it and when to run it.
package syncrule

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/synclab/metasync/internal/metadata"
	"github.com/synclab/metasync/internal/modules"
)

// Type is the kind of synchronization a rule runs
type Type string

// Synchronization types
const (
	TypeMetadata   Type = "metadata"
	TypeAggregated Type = "aggregated"
	TypeEvents     Type = "events"
	TypeDeleted    Type = "deleted"
)

// Types lists every synchronization type
var Types = []Type{TypeMetadata, TypeAggregated, TypeEvents, TypeDeleted}

// IsValid reports whether t is a known synchronization type
func (t Type) IsValid() bool {
	return slices.Contains(Types, t)
}

// CronParser parses rule frequencies: six fields, seconds first, or a descriptor
// such as @daily
var CronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ErrInvalidRule is wrapped by the errors returned for rules that fail validation
var ErrInvalidRule = errors.New("invalid synchronization rule")

// SyncParams are the import parameters sent with metadata
type SyncParams struct {
	ImportStrategy         metadata.ImportStrategy `json:"importStrategy,omitempty"`
	AtomicMode             string                  `json:"atomicMode,omitempty"`
	MergeMode              string                  `json:"mergeMode,omitempty"`
	DryRun                 bool                    `json:"dryRun,omitempty"`
	IncludeSharingSettings bool                    `json:"includeSharingSettings"`
}

// ImportParams returns the parameters of a metadata import
func (p *SyncParams) ImportParams() metadata.ImportParams {
	if p == nil {
		return metadata.ImportParams{ImportStrategy: metadata.ImportStrategyCreateAndUpdate}
	}
	params := metadata.ImportParams{
		ImportStrategy: p.ImportStrategy,
		AtomicMode:     p.AtomicMode,
		MergeMode:      p.MergeMode,
		DryRun:         p.DryRun,
	}
	if params.ImportStrategy == "" {
		params.ImportStrategy = metadata.ImportStrategyCreateAndUpdate
	}
	return params
}

// Builder is the selection a synchronizer builds its payload from
type Builder struct {
	MetadataIDs                 []string                            `json:"metadataIds"`
	ExcludedIDs                 []string                            `json:"excludedIds"`
	TargetInstances             []string                            `json:"targetInstances"`
	UseDefaultIncludeExclude    bool                                `json:"useDefaultIncludeExclude"`
	MetadataIncludeExcludeRules modules.MetadataIncludeExcludeRules `json:"metadataIncludeExcludeRules,omitempty"`
	SyncParams                  *SyncParams                         `json:"syncParams,omitempty"`
	DataParams                  *metadata.DataParams                `json:"dataParams,omitempty"`
}

// Clone returns a deep copy of the builder
func (b Builder) Clone() Builder {
	out := b
	out.MetadataIDs = slices.Clone(b.MetadataIDs)
	out.ExcludedIDs = slices.Clone(b.ExcludedIDs)
	out.TargetInstances = slices.Clone(b.TargetInstances)
	out.MetadataIncludeExcludeRules = b.MetadataIncludeExcludeRules.Clone()
	if b.SyncParams != nil {
		params := *b.SyncParams
		out.SyncParams = &params
	}
	if b.DataParams != nil {
		params := *b.DataParams
		params.OrgUnitPaths = slices.Clone(b.DataParams.OrgUnitPaths)
		params.Events = slices.Clone(b.DataParams.Events)
		out.DataParams = &params
	}
	return out
}

// RulesFor returns the include rules applied to a metadata type
func (b Builder) RulesFor(model metadata.Model) []string {
	if !b.UseDefaultIncludeExclude {
		if r, ok := b.MetadataIncludeExcludeRules[model.Collection]; ok {
			return slices.Clone(r.IncludeRules)
		}
	}
	return slices.Clone(model.IncludeRules)
}

// SyncRule is a saved synchronization. Values are never modified in place: every
// operation returns a new rule.
type SyncRule struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description,omitempty"`
	Type         Type              `json:"type"`
	Builder      Builder           `json:"builder"`
	Frequency    string            `json:"frequency,omitempty"`
	Enabled      bool              `json:"enabled"`
	LastExecuted *time.Time        `json:"lastExecuted,omitempty"`
	Created      time.Time         `json:"created"`
	User         modules.Reference `json:"user"`
}

// New returns an empty rule of the given type with a fresh id
func New(t Type) SyncRule {
	return SyncRule{
		ID:   uuid.NewString(),
		Type: t,
		Builder: Builder{
			MetadataIDs:                 []string{},
			ExcludedIDs:                 []string{},
			TargetInstances:             []string{},
			UseDefaultIncludeExclude:    true,
			MetadataIncludeExcludeRules: modules.MetadataIncludeExcludeRules{},
		},
	}
}

// FromModule returns a metadata rule selecting the metadata of a module
func FromModule(module modules.MetadataModule) SyncRule {
	return New(TypeMetadata).Update(func(r *SyncRule) {
		r.Name = module.Name
		r.Description = module.Description
		r.Builder.MetadataIDs = slices.Clone(module.MetadataIDs)
		r.Builder.ExcludedIDs = slices.Clone(module.ExcludedIDs)
		r.Builder.UseDefaultIncludeExclude = module.UseDefaultIncludeExclude
		r.Builder.MetadataIncludeExcludeRules = module.MetadataIncludeExcludeRules.Clone()
	})
}

// Update returns a copy of the rule modified by fn
func (r SyncRule) Update(fn func(*SyncRule)) SyncRule {
	out := r
	out.Builder = r.Builder.Clone()
	if r.LastExecuted != nil {
		t := *r.LastExecuted
		out.LastExecuted = &t
	}
	if fn != nil {
		fn(&out)
	}
	return out
}

// UpdateLastExecuted returns a copy of the rule executed at t
func (r SyncRule) UpdateLastExecuted(t time.Time) SyncRule {
	return r.Update(func(out *SyncRule) {
		executed := t.UTC()
		out.LastExecuted = &executed
	})
}

// UpdateTargetInstances returns a copy of the rule sending to instances
func (r SyncRule) UpdateTargetInstances(instances []string) SyncRule {
	return r.Update(func(out *SyncRule) { out.Builder.TargetInstances = slices.Clone(instances) })
}

// UpdateMetadataIDs returns a copy of the rule selecting ids
func (r SyncRule) UpdateMetadataIDs(ids []string) SyncRule {
	return r.Update(func(out *SyncRule) { out.Builder.MetadataIDs = slices.Clone(ids) })
}

// IsScheduled reports whether the rule runs in the background
func (r SyncRule) IsScheduled() bool {
	return r.Enabled && r.Frequency != ""
}

// Schedule returns the parsed frequency of the rule
func (r SyncRule) Schedule() (cron.Schedule, error) {
	return CronParser.Parse(r.Frequency)
}

// Validate checks the rule and returns the joined validation errors wrapped in
// ErrInvalidRule
func (r SyncRule) Validate() error {
	errs := []error{modules.HasText("name", r.Name)}

	if !r.Type.IsValid() {
		errs = append(errs, &modules.ValidationError{
			Property:    "type",
			Code:        modules.CodeInvalid,
			Description: fmt.Sprintf("unknown synchronization type %q", r.Type),
		})
	}

	errs = append(errs,
		modules.HasItems("metadataIds", selectionAlias(r.Type), r.Builder.MetadataIDs),
		modules.HasItems("targetInstances", "instance", r.Builder.TargetInstances),
	)

	if r.Enabled && r.Frequency == "" {
		errs = append(errs, modules.HasText("frequency", r.Frequency))
	}
	if r.Frequency != "" {
		if _, err := r.Schedule(); err != nil {
			errs = append(errs, &modules.ValidationError{
				Property:    "frequency",
				Code:        modules.CodeInvalid,
				Description: fmt.Sprintf("frequency %q is not a valid cron expression: %v", r.Frequency, err),
			})
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRule, err)
	}
	return nil
}

func selectionAlias(t Type) string {
	switch t {
	case TypeAggregated:
		return "data set or data element group"
	case TypeEvents:
		return "program"
	default:
		return "metadata element"
	}
}
