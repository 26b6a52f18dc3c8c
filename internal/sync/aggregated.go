package sync

import (
	"context"
	"fmt"
	"slices"

	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/logger"
	"github.com/synclab/metasync/internal/mapping"
	"github.com/synclab/metasync/internal/metadata"
	"github.com/synclab/metasync/internal/report"
	"github.com/synclab/metasync/internal/syncrule"
)

// aggregatedSync sends the data values of the selected data sets and data element groups.
// Selected data elements narrow the values to those elements.
type aggregatedSync struct {
	*baseSync
}

func (*aggregatedSync) Type() syncrule.Type {
	return syncrule.TypeAggregated
}

func (s *aggregatedSync) dataParams() metadata.DataParams {
	if s.builder.DataParams == nil {
		return metadata.DataParams{}
	}
	return *s.builder.DataParams
}

func (s *aggregatedSync) buildPayload(ctx context.Context) (Payload, error) {
	selected, err := s.deps.Local.GetByIDs(ctx, s.builder.MetadataIDs, "id")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve selected metadata: %w", err)
	}

	dataSets := ids(selected[metadata.DataSets])
	groups := ids(selected[metadata.DataElementGroups])
	dataElements := ids(selected[metadata.DataElements])

	data, err := s.deps.Local.GetAggregated(ctx, s.dataParams(), dataSets, groups)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data values: %w", err)
	}

	values := data[metadata.DataValues]
	if len(dataElements) > 0 {
		values = slices.DeleteFunc(slices.Clone(values), func(v metadata.Object) bool {
			return !slices.Contains(dataElements, v.String("dataElement"))
		})
	}
	return Payload{metadata.DataValues: values}, nil
}

// MapPayload translates data elements, category option combos and organisation units.
// Values of disabled elements are dropped.
func (s *aggregatedSync) MapPayload(_ context.Context, inst instance.Instance, payload Payload) (Payload, error) {
	dictionary := inst.MetadataMapping
	values := payload[metadata.DataValues]
	mapped := make([]metadata.Object, 0, len(values))

	for _, value := range values {
		value = value.Clone()

		element, ok := dictionary.Lookup(mapping.AggregatedDataElements, value.String("dataElement"))
		if ok {
			if element.IsDisabled() {
				continue
			}
			value["dataElement"] = element.MappedID

			if coc := value.String("categoryOptionCombo"); coc != "" {
				if nested, ok := element.Mapping.Lookup(mapping.GroupCategoryOptions, coc); ok {
					if nested.IsDisabled() {
						continue
					}
					value["categoryOptionCombo"] = nested.MappedID
				}
			}
		}

		orgUnit, keep := mapOrgUnit(dictionary, value.String("orgUnit"))
		if !keep {
			continue
		}
		value["orgUnit"] = orgUnit
		mapped = append(mapped, value)
	}
	return Payload{metadata.DataValues: mapped}, nil
}

func (s *aggregatedSync) PostPayload(ctx context.Context, inst instance.Instance) ([]report.SynchronizationResult, error) {
	payload, err := s.mappedPayload(ctx, s, inst)
	if err != nil {
		return nil, err
	}

	conn, err := s.connect(inst)
	if err != nil {
		return nil, err
	}

	logger.Debugf("Posting %d data values to %s", len(payload[metadata.DataValues]), inst.Name)
	response, err := conn.PostAggregated(ctx, payload, s.builder.SyncParams.ImportParams())
	if err != nil {
		return nil, err
	}
	return []report.SynchronizationResult{CleanDataImportResponse(response, inst, s.Type())}, nil
}

func (s *aggregatedSync) BuildDataStats(ctx context.Context) (*DataStats, error) {
	payload, err := s.BuildPayload(ctx)
	if err != nil {
		return nil, err
	}
	return &DataStats{DataValues: len(payload[metadata.DataValues])}, nil
}

func ids(objects []metadata.Object) []string {
	out := make([]string, 0, len(objects))
	for _, obj := range objects {
		out = append(out, obj.ID())
	}
	return out
}

// mapOrgUnit translates an organisation unit id. The dictionary is keyed by paths.
// It returns false when the unit is disabled.
func mapOrgUnit(dictionary mapping.Dictionary, id string) (string, bool) {
	for key, m := range dictionary[mapping.OrganisationUnits] {
		if metadata.CleanOrgUnitPath(key) != id {
			continue
		}
		if m.IsDisabled() {
			return "", false
		}
		return metadata.CleanOrgUnitPath(m.MappedID), true
	}
	return id, true
}
