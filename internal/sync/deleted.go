package sync

import (
	"context"
	"fmt"

	"github.com/synclab/metasync/internal/instance"
	"github.com/synclab/metasync/internal/logger"
	"github.com/synclab/metasync/internal/metadata"
	"github.com/synclab/metasync/internal/report"
	"github.com/synclab/metasync/internal/syncrule"
)

// deletedSync removes the selected metadata from target instances
type deletedSync struct {
	*baseSync
}

func (*deletedSync) Type() syncrule.Type {
	return syncrule.TypeDeleted
}

// MapPayload returns payload unchanged
func (*deletedSync) MapPayload(_ context.Context, _ instance.Instance, payload Payload) (Payload, error) {
	return payload, nil
}

// PostPayload reads the selected objects from the target instance and posts them back
// with the DELETE import strategy
func (s *deletedSync) PostPayload(ctx context.Context, inst instance.Instance) ([]report.SynchronizationResult, error) {
	conn, err := s.connect(inst)
	if err != nil {
		return nil, err
	}

	payload, err := conn.GetByIDs(ctx, s.builder.MetadataIDs, "id")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch metadata to delete: %w", err)
	}

	params := s.builder.SyncParams.ImportParams()
	params.ImportStrategy = metadata.ImportStrategyDelete

	logger.Debugf("Deleting %d metadata objects on %s", payload.Count(), inst.Name)
	response, err := conn.Post(ctx, payload, params)
	if err != nil {
		return nil, err
	}
	return []report.SynchronizationResult{CleanMetadataImportResponse(response, inst, s.Type())}, nil
}

func (*deletedSync) BuildDataStats(context.Context) (*DataStats, error) {
	return nil, nil
}
