package sync

import (
	"context"
	"fmt"

	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/logger"
	"github.com/synclab/metasync/internal/mapping"
	"github.com/synclab/metasync/internal/metadata"
	"github.com/synclab/metasync/internal/report"
	"github.com/synclab/metasync/internal/syncrule"
)

// eventsSync sends the events of the selected programs
type eventsSync struct {
	*baseSync
}

func (*eventsSync) Type() syncrule.Type {
	return syncrule.TypeEvents
}

func (s *eventsSync) buildPayload(ctx context.Context) (Payload, error) {
	selected, err := s.deps.Local.GetByIDs(ctx, s.builder.MetadataIDs, "id")
	if err != nil {
		return nil, fmt.Errorf("failed to resolve selected programs: %w", err)
	}

	programs := ids(selected[metadata.Programs])
	if len(programs) == 0 {
		return Payload{metadata.Events: nil}, nil
	}

	params := metadata.DataParams{}
	if s.builder.DataParams != nil {
		params = *s.builder.DataParams
	}
	data, err := s.deps.Local.GetEvents(ctx, params, programs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	return Payload{metadata.Events: data[metadata.Events]}, nil
}

// MapPayload translates programs, program stages, organisation units and the data
// elements of each event. Events of disabled programs are dropped, as are data values
// of disabled data elements.
func (s *eventsSync) MapPayload(_ context.Context, inst instance.Instance, payload Payload) (Payload, error) {
	dictionary := inst.MetadataMapping
	events := payload[metadata.Events]
	mapped := make([]metadata.Object, 0, len(events))

	for _, event := range events {
		event = event.Clone()
		programID := event.String("program")

		if program, ok := dictionary.Lookup(mapping.EventPrograms, programID); ok {
			if program.IsDisabled() {
				continue
			}
			event["program"] = program.MappedID

			if stage, ok := program.Mapping.Lookup(mapping.GroupProgramStages, event.String("programStage")); ok {
				event["programStage"] = mapping.CleanNestedMappedID(stage.MappedID)
			}
		}

		orgUnit, keep := mapOrgUnit(dictionary, event.String("orgUnit"))
		if !keep {
			continue
		}
		event["orgUnit"] = orgUnit

		var values []any
		for _, value := range event.Objects("dataValues") {
			key := programID + "-" + value.String("dataElement")
			if element, ok := dictionary.Lookup(mapping.ProgramDataElements, key); ok {
				if element.IsDisabled() {
					continue
				}
				value["dataElement"] = mapping.CleanNestedMappedID(element.MappedID)
			}
			values = append(values, map[string]any(value))
		}
		if _, ok := event["dataValues"]; ok {
			event["dataValues"] = values
		}

		mapped = append(mapped, event)
	}
	return Payload{metadata.Events: mapped}, nil
}

func (s *eventsSync) PostPayload(ctx context.Context, inst instance.Instance) ([]report.SynchronizationResult, error) {
	payload, err := s.mappedPayload(ctx, s, inst)
	if err != nil {
		return nil, err
	}

	conn, err := s.connect(inst)
	if err != nil {
		return nil, err
	}

	logger.Debugf("Posting %d events to %s", len(payload[metadata.Events]), inst.Name)
	response, err := conn.PostEvents(ctx, payload, s.builder.SyncParams.ImportParams())
	if err != nil {
		return nil, err
	}
	return []report.SynchronizationResult{CleanDataImportResponse(response, inst, s.Type())}, nil
}

func (s *eventsSync) BuildDataStats(ctx context.Context) (*DataStats, error) {
	payload, err := s.BuildPayload(ctx)
	if err != nil {
		return nil, err
	}
	return &DataStats{Events: len(payload[metadata.Events])}, nil
}
