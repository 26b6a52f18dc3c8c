package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/mapping"
	"github.com/synclab/metasync/internal/metadata"
	"github.com/synclab/metasync/internal/modules"
	"github.com/synclab/metasync/internal/storage"
)

const kindInstance = "instance"

func (s *service) ListInstances(
	ctx context.Context, opts ...Option,
) (storage.PaginatedObjects[instance.Instance], error) {
	options, err := ApplyOptions(opts...)
	if err != nil {
		return storage.PaginatedObjects[instance.Instance]{}, err
	}
	page, err := s.deps.Instances.List(ctx, options.Filters, options.Pagination)
	if err != nil {
		return page, err
	}
	for i, inst := range page.Objects {
		page.Objects[i] = inst.Redacted()
	}
	return page, nil
}

func (s *service) GetInstance(ctx context.Context, id string) (instance.Instance, error) {
	inst, err := get(ctx, kindInstance, id, s.deps.Instances.Get)
	if err != nil {
		return instance.Instance{}, err
	}
	return inst.Redacted(), nil
}

// SaveInstance keeps the stored password and mapping of an existing instance when the
// request leaves them empty
func (s *service) SaveInstance(ctx context.Context, inst instance.Instance) (instance.Instance, error) {
	if inst.ID != "" {
		existing, found, err := s.deps.Instances.Get(ctx, inst.ID)
		if err != nil {
			return inst, fmt.Errorf("failed to get instance %s: %w", inst.ID, err)
		}
		if found {
			if inst.Password == "" {
				inst.Password = existing.Password
			}
			if inst.MetadataMapping == nil {
				inst.MetadataMapping = existing.MetadataMapping
			}
		}
	}

	saved, err := s.deps.Instances.Save(ctx, inst)
	if errors.Is(err, instance.ErrInvalidInstance) {
		return inst, invalid(err)
	}
	if err != nil {
		return inst, err
	}
	return saved.Redacted(), nil
}

func (s *service) DeleteInstance(ctx context.Context, id string) error {
	if _, err := s.GetInstance(ctx, id); err != nil {
		return err
	}
	return s.deps.Instances.Delete(ctx, id)
}

func (s *service) SetInstanceMapping(
	ctx context.Context, id string, req MappingRequest,
) (mapping.MetadataMapping, error) {
	if err := errors.Join(
		modules.HasText("collection", req.Collection),
		modules.HasText("sourceId", req.SourceID),
		modules.HasText("destinationId", req.DestinationID),
	); err != nil {
		return mapping.MetadataMapping{}, invalid(err)
	}

	inst, conn, err := s.connect(ctx, id)
	if err != nil {
		return mapping.MetadataMapping{}, err
	}

	m, err := mapping.BuildMapping(ctx, s.deps.Sync.Local, conn, req.Collection, req.SourceID, req.DestinationID)
	if errors.Is(err, mapping.ErrUnresolvable) {
		return mapping.MetadataMapping{}, invalid(err)
	}
	if err != nil {
		return mapping.MetadataMapping{}, fmt.Errorf("failed to build mapping of %s: %w", req.SourceID, err)
	}

	inst = inst.SetMapping(mappingType(req.MappingType, req.Collection), req.SourceID, m)
	if _, err := s.deps.Instances.Save(ctx, inst); err != nil {
		return mapping.MetadataMapping{}, fmt.Errorf("failed to save instance %s: %w", id, err)
	}
	return m, nil
}

func (s *service) AutoMapInstance(
	ctx context.Context, id string, req AutoMapRequest,
) (map[string]mapping.MetadataMapping, error) {
	if err := errors.Join(
		modules.HasText("collection", req.Collection),
		modules.HasItems("sources", "element", req.Sources),
	); err != nil {
		return nil, invalid(err)
	}

	inst, conn, err := s.connect(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := autoMap(ctx, conn, req)
	if err != nil {
		return nil, fmt.Errorf("failed to map %s: %w", req.Collection, err)
	}

	group := mappingType(req.MappingType, req.Collection)
	for sourceID, m := range result {
		inst = inst.SetMapping(group, sourceID, m)
	}
	if _, err := s.deps.Instances.Save(ctx, inst); err != nil {
		return nil, fmt.Errorf("failed to save instance %s: %w", id, err)
	}
	return result, nil
}

// connect loads a stored instance, with its credentials, and opens a connection to it
func (s *service) connect(ctx context.Context, id string) (instance.Instance, instance.Connection, error) {
	inst, err := get(ctx, kindInstance, id, s.deps.Instances.Get)
	if err != nil {
		return instance.Instance{}, nil, err
	}
	conn, err := s.deps.Sync.Connector.Connect(inst)
	if err != nil {
		return instance.Instance{}, nil, fmt.Errorf("failed to connect to instance %s: %w", inst.Name, err)
	}
	return inst, conn, nil
}

// autoMap restricts matches to the requested destinations, or searches the whole
// collection when there are none
func autoMap(
	ctx context.Context, repo metadata.Repository, req AutoMapRequest,
) (map[string]mapping.MetadataMapping, error) {
	if len(req.Destinations) > 0 {
		return mapping.AutoMapCollection(ctx, repo, req.Collection, req.Sources, req.Destinations)
	}

	result := make(map[string]mapping.MetadataMapping)
	for _, item := range req.Sources {
		if item.ID == "" {
			continue
		}
		candidates, err := mapping.AutoMap(ctx, repo, req.Collection, item, mapping.Disabled, nil)
		if err != nil {
			return nil, err
		}
		candidate := candidates[0]
		candidate.Conflicts = candidate.IsDisabled()
		result[item.ID] = candidate
	}
	return result, nil
}

func mappingType(mappingType, collection string) string {
	if t := strings.TrimSpace(mappingType); t != "" {
		return t
	}
	return collection
}
