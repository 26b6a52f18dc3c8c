package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"sync"
)

// MemoryRepository is a Repository and DataRepository kept in process memory.
// Field selection is not applied: objects are returned whole.
type MemoryRepository struct {
	mu      sync.RWMutex
	objects Package
	posts   []Package
}

var (
	_ Repository     = (*MemoryRepository)(nil)
	_ DataRepository = (*MemoryRepository)(nil)
)

// NewMemoryRepository creates a repository holding a copy of objects
func NewMemoryRepository(objects Package) *MemoryRepository {
	return &MemoryRepository{objects: objects.Clone()}
}

// Get lists the objects of a collection matching the query
func (r *MemoryRepository) Get(_ context.Context, collection string, query Query) ([]Object, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Object
	for _, obj := range r.objects[collection] {
		if query.Matches(obj) {
			out = append(out, obj.Clone())
		}
	}
	return out, nil
}

// GetByIDs returns the objects with the given ids grouped by collection
func (r *MemoryRepository) GetByIDs(_ context.Context, ids []string, _ string) (Package, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := Package{}
	for _, collection := range r.collections() {
		for _, obj := range r.objects[collection] {
			if slices.Contains(ids, obj.ID()) {
				out[collection] = append(out[collection], obj.Clone())
			}
		}
	}
	return out, nil
}

// Post applies the payload: objects are created or replaced by id, or removed when
// the import strategy is DELETE.
func (r *MemoryRepository) Post(_ context.Context, payload Package, params ImportParams) (json.RawMessage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.posts = append(r.posts, payload.Clone())
	if params.DryRun {
		return importReport(0, 0, 0, payload.Count())
	}

	var created, updated, deleted int
	for collection, objects := range payload {
		for _, obj := range objects {
			idx := -1
			if obj.ID() != "" {
				idx = slices.IndexFunc(r.objects[collection], func(o Object) bool { return o.ID() == obj.ID() })
			}
			switch {
			case params.ImportStrategy == ImportStrategyDelete:
				if idx >= 0 {
					r.objects[collection] = slices.Delete(r.objects[collection], idx, idx+1)
					deleted++
				}
			case idx >= 0:
				r.objects[collection][idx] = obj.Clone()
				updated++
			default:
				if r.objects == nil {
					r.objects = Package{}
				}
				r.objects[collection] = append(r.objects[collection], obj.Clone())
				created++
			}
		}
	}

	ignored := payload.Count() - created - updated - deleted
	return importReport(created, updated, deleted, ignored)
}

// GetAggregated returns the stored data values of the given organisation units
func (r *MemoryRepository) GetAggregated(_ context.Context, params DataParams, _, _ []string) (Package, error) {
	return r.dataFor(DataValues, "orgUnit", params), nil
}

// PostAggregated stores data values
func (r *MemoryRepository) PostAggregated(ctx context.Context, payload Package, params ImportParams) (json.RawMessage, error) {
	return r.Post(ctx, Package{DataValues: payload[DataValues]}, params)
}

// GetEvents returns the stored events of the given organisation units
func (r *MemoryRepository) GetEvents(_ context.Context, params DataParams, _ []string) (Package, error) {
	return r.dataFor(Events, "orgUnit", params), nil
}

// PostEvents stores events
func (r *MemoryRepository) PostEvents(ctx context.Context, payload Package, params ImportParams) (json.RawMessage, error) {
	return r.Post(ctx, Package{Events: payload[Events]}, params)
}

// Posts returns the payloads posted so far
func (r *MemoryRepository) Posts() []Package {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.posts)
}

func (r *MemoryRepository) dataFor(collection, orgUnitField string, params DataParams) Package {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orgUnits := params.OrgUnits()
	var out []Object
	for _, obj := range r.objects[collection] {
		if len(orgUnits) == 0 || slices.Contains(orgUnits, obj.String(orgUnitField)) {
			out = append(out, obj.Clone())
		}
	}
	return Package{collection: out}
}

func (r *MemoryRepository) collections() []string {
	out := make([]string, 0, len(r.objects))
	for collection := range r.objects {
		out = append(out, collection)
	}
	sort.Strings(out)
	return out
}

func importReport(created, updated, deleted, ignored int) (json.RawMessage, error) {
	report := map[string]any{
		"status": "OK",
		"stats": map[string]int{
			"created": created,
			"updated": updated,
			"deleted": deleted,
			"ignored": ignored,
			"total":   created + updated + deleted + ignored,
		},
	}
	data, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode import report: %w", err)
	}
	return data, nil
}
