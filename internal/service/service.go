// Package service provides the use cases exposed by the synchronization API
package service

import (
	"context"
	"errors"

	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/mapping"
	"github.com/synclab/metasync/internal/modules"
	"github.com/synclab/metasync/internal/packages"
	"github.com/synclab/metasync/internal/report"
	"github.com/synclab/metasync/internal/storage"
	"github.com/synclab/metasync/internal/syncrule"
)

var (
	// ErrNotFound is returned when a requested document does not exist
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when a request fails validation
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotReady is returned by CheckReadiness while store migrations are pending
	ErrNotReady = errors.New("service not ready")
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go Service

// Service defines the operations of the synchronization API
type Service interface {
	// CheckReadiness checks that the document store is reachable and migrated
	CheckReadiness(ctx context.Context) error

	ListModules(ctx context.Context, opts ...Option) (storage.PaginatedObjects[modules.MetadataModule], error)
	GetModule(ctx context.Context, id string) (modules.MetadataModule, error)
	SaveModule(ctx context.Context, module modules.MetadataModule) (modules.MetadataModule, error)
	DeleteModule(ctx context.Context, id string) error

	// MoveModuleRules includes or excludes the dependency paths of a metadata type
	MoveModuleRules(ctx context.Context, id string, move RuleMove) (modules.MetadataModule, error)

	ListRules(ctx context.Context, opts ...Option) (storage.PaginatedObjects[syncrule.SyncRule], error)
	GetRule(ctx context.Context, id string) (syncrule.SyncRule, error)
	SaveRule(ctx context.Context, rule syncrule.SyncRule) (syncrule.SyncRule, error)
	DeleteRule(ctx context.Context, id string) error

	// CreateRuleFromModule saves a metadata rule selecting the metadata of a module
	CreateRuleFromModule(ctx context.Context, moduleID string, targets []string) (syncrule.SyncRule, error)

	// RunRule synchronizes a rule now and returns its report
	RunRule(ctx context.Context, id, user string) (report.SynchronizationReport, error)

	ListInstances(ctx context.Context, opts ...Option) (storage.PaginatedObjects[instance.Instance], error)
	GetInstance(ctx context.Context, id string) (instance.Instance, error)
	SaveInstance(ctx context.Context, inst instance.Instance) (instance.Instance, error)
	DeleteInstance(ctx context.Context, id string) error

	// SetInstanceMapping builds the mapping of a local element to an element of the
	// instance and stores it in the instance mapping dictionary
	SetInstanceMapping(ctx context.Context, id string, req MappingRequest) (mapping.MetadataMapping, error)

	// AutoMapInstance matches local elements with elements of the instance and stores
	// the matches in the instance mapping dictionary
	AutoMapInstance(ctx context.Context, id string, req AutoMapRequest) (map[string]mapping.MetadataMapping, error)

	ListReports(ctx context.Context, opts ...Option) (storage.PaginatedObjects[report.SynchronizationReport], error)
	GetReport(ctx context.Context, id string) (report.SynchronizationReport, error)
	DeleteReport(ctx context.Context, id string) error

	ListStores(ctx context.Context) ([]packages.Store, error)
	SaveStore(ctx context.Context, store packages.Store) (packages.Store, error)
	DeleteStore(ctx context.Context, id string) error
	SetDefaultStore(ctx context.Context, id string) error
	ListStorePackages(ctx context.Context, storeID string) ([]packages.Package, error)
}

// RuleAction selects the direction of a rule move
type RuleAction string

const (
	// RuleInclude moves paths from the exclude rules to the include rules
	RuleInclude RuleAction = "include"
	// RuleExclude moves paths from the include rules to the exclude rules
	RuleExclude RuleAction = "exclude"
)

// RuleMove describes a change of the dependency rules of a module
type RuleMove struct {
	Action       RuleAction `json:"action"`
	MetadataType string     `json:"metadataType"`
	Paths        []string   `json:"paths"`
}

// MappingRequest maps one local element to an element of an instance.
// DestinationID may be mapping.Disabled. The mapping is stored under MappingType,
// the collection when empty.
type MappingRequest struct {
	Collection    string `json:"collection"`
	MappingType   string `json:"mappingType,omitempty"`
	SourceID      string `json:"sourceId"`
	DestinationID string `json:"destinationId"`
}

// AutoMapRequest lists the local elements to match in a collection of an instance.
// When Destinations is not empty, matches are restricted to them.
type AutoMapRequest struct {
	Collection   string         `json:"collection"`
	MappingType  string         `json:"mappingType,omitempty"`
	Sources      []mapping.Item `json:"sources"`
	Destinations []mapping.Item `json:"destinations,omitempty"`
}
