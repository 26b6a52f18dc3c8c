package sync

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/logger"
	"github.com/synclab/metasync/internal/metadata"
	"github.com/synclab/metasync/internal/report"
	"github.com/synclab/metasync/internal/rules"
	"github.com/synclab/metasync/internal/syncrule"
)

const allFields = ":all"

// sharingFields are removed from metadata unless sharing settings are synchronized
var sharingFields = []string{"user", "userAccesses", "userGroupAccesses", "publicAccess", "sharing"}

// metadataSync sends the selected metadata together with the dependencies reached by
// the include rules of each metadata type
type metadataSync struct {
	*baseSync
}

func (*metadataSync) Type() syncrule.Type {
	return syncrule.TypeMetadata
}

func (s *metadataSync) buildPayload(ctx context.Context) (Payload, error) {
	ids := rules.Difference(s.builder.MetadataIDs, s.builder.ExcludedIDs)
	if len(ids) == 0 {
		return Payload{}, nil
	}

	selected, err := s.deps.Local.GetByIDs(ctx, ids, allFields)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch selected metadata: %w", err)
	}

	payload := selected.Clone()
	collections := make([]string, 0, len(selected))
	for collection := range selected {
		collections = append(collections, collection)
	}
	sort.Strings(collections)

	for _, collection := range collections {
		model, ok := metadata.LookupModel(collection)
		if !ok {
			logger.Debugf("No dependency rules for %s, sending selected objects only", collection)
			continue
		}
		deps, err := s.collectDependencies(ctx, selected[collection], s.builder.RulesFor(model))
		if err != nil {
			return nil, err
		}
		payload = payload.Merge(deps)
	}

	return s.withoutExcluded(payload), nil
}

// collectDependencies fetches the objects referenced along each rule path, level by level
func (s *metadataSync) collectDependencies(
	ctx context.Context, objects []metadata.Object, paths []string,
) (Payload, error) {
	out := Payload{}
	var roots []string
	for _, path := range paths {
		if root := rules.Root(path); !slices.Contains(roots, root) {
			roots = append(roots, root)
		}
	}

	for _, root := range roots {
		ids := rules.Difference(metadata.Package{root: objects}.References(root), s.builder.ExcludedIDs)
		if len(ids) == 0 {
			continue
		}

		fetched, err := s.deps.Local.Get(ctx, root, metadata.Query{
			Fields: allFields,
			Filter: map[string]metadata.Predicate{"id": metadata.In(ids...)},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s dependencies: %w", root, err)
		}
		out = out.Merge(Payload{root: fetched})

		var children []string
		for _, path := range rules.DescendantsOf(root, paths) {
			children = append(children, path[len(root)+1:])
		}
		if len(children) == 0 || len(fetched) == 0 {
			continue
		}

		nested, err := s.collectDependencies(ctx, fetched, children)
		if err != nil {
			return nil, err
		}
		out = out.Merge(nested)
	}
	return out, nil
}

func (s *metadataSync) withoutExcluded(payload Payload) Payload {
	if len(s.builder.ExcludedIDs) == 0 {
		return payload
	}
	for collection, objects := range payload {
		payload[collection] = slices.DeleteFunc(objects, func(o metadata.Object) bool {
			return slices.Contains(s.builder.ExcludedIDs, o.ID())
		})
	}
	return payload
}

// MapPayload removes sharing settings unless they are synchronized. Metadata keeps
// its ids on every instance.
func (s *metadataSync) MapPayload(_ context.Context, _ instance.Instance, payload Payload) (Payload, error) {
	if s.builder.SyncParams != nil && s.builder.SyncParams.IncludeSharingSettings {
		return payload, nil
	}

	out := make(Payload, len(payload))
	for collection, objects := range payload {
		cleaned := make([]metadata.Object, 0, len(objects))
		for _, obj := range objects {
			obj = obj.Clone()
			for _, field := range sharingFields {
				delete(obj, field)
			}
			cleaned = append(cleaned, obj)
		}
		out[collection] = cleaned
	}
	return out, nil
}

func (s *metadataSync) PostPayload(ctx context.Context, inst instance.Instance) ([]report.SynchronizationResult, error) {
	payload, err := s.mappedPayload(ctx, s, inst)
	if err != nil {
		return nil, err
	}

	conn, err := s.connect(inst)
	if err != nil {
		return nil, err
	}

	logger.Debugf("Posting %d metadata objects to %s", payload.Count(), inst.Name)
	response, err := conn.Post(ctx, payload, s.builder.SyncParams.ImportParams())
	if err != nil {
		return nil, err
	}
	return []report.SynchronizationResult{CleanMetadataImportResponse(response, inst, s.Type())}, nil
}

func (*metadataSync) BuildDataStats(context.Context) (*DataStats, error) {
	return nil, nil
}
