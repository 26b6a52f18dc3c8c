package metadata

import (
	"context"
	"encoding/json"
	"time"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=repository.go Repository,DataRepository

// ImportStrategy selects how an instance applies posted metadata
type ImportStrategy string

const (
	// ImportStrategyCreateAndUpdate creates new objects and updates existing ones
	ImportStrategyCreateAndUpdate ImportStrategy = "CREATE_AND_UPDATE"

	// ImportStrategyDelete deletes the posted objects
	ImportStrategyDelete ImportStrategy = "DELETE"
)

// ImportParams are the parameters sent along with a metadata or data import
type ImportParams struct {
	ImportStrategy ImportStrategy `json:"importStrategy,omitempty" yaml:"importStrategy,omitempty"`
	AtomicMode     string         `json:"atomicMode,omitempty" yaml:"atomicMode,omitempty"`
	MergeMode      string         `json:"mergeMode,omitempty" yaml:"mergeMode,omitempty"`
	DryRun         bool           `json:"dryRun,omitempty" yaml:"dryRun,omitempty"`
}

// DataParams restricts the data read from an instance for data synchronization
type DataParams struct {
	OrgUnitPaths []string   `json:"orgUnitPaths,omitempty" yaml:"orgUnitPaths,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	AllEvents    bool       `json:"allEvents,omitempty" yaml:"allEvents,omitempty"`
	Events       []string   `json:"events,omitempty" yaml:"events,omitempty"`
}

// OrgUnits returns the organisation unit ids of the configured paths
func (p DataParams) OrgUnits() []string {
	out := make([]string, 0, len(p.OrgUnitPaths))
	for _, path := range p.OrgUnitPaths {
		out = append(out, CleanOrgUnitPath(path))
	}
	return out
}

// Repository reads and writes metadata on one instance
type Repository interface {
	// Get lists the objects of a collection matching the query
	Get(ctx context.Context, collection string, query Query) ([]Object, error)

	// GetByIDs returns the objects with the given ids grouped by collection
	GetByIDs(ctx context.Context, ids []string, fields string) (Package, error)

	// Post imports a metadata package and returns the raw import report
	Post(ctx context.Context, payload Package, params ImportParams) (json.RawMessage, error)
}

// DataRepository reads and writes aggregated values and events on one instance
type DataRepository interface {
	GetAggregated(ctx context.Context, params DataParams, dataSets, dataElementGroups []string) (Package, error)
	PostAggregated(ctx context.Context, payload Package, params ImportParams) (json.RawMessage, error)
	GetEvents(ctx context.Context, params DataParams, programs []string) (Package, error)
	PostEvents(ctx context.Context, payload Package, params ImportParams) (json.RawMessage, error)
}

// Collection names of data packages
const (
	DataValues = "dataValues"
	Events     = "events"
)
