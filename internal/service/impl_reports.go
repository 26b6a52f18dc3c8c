package service

import (
	"context"

	"github.com/synclab/metasync/internal/report"
	"github.com/synclab/metasync/internal/storage"
)

const kindReport = "report"

func (s *service) ListReports(
	ctx context.Context, opts ...Option,
) (storage.PaginatedObjects[report.SynchronizationReport], error) {
	options, err := ApplyOptions(opts...)
	if err != nil {
		return storage.PaginatedObjects[report.SynchronizationReport]{}, err
	}
	if options.Pagination.SortField == "" {
		options.Pagination.SortField = "timestamp"
		options.Pagination.SortOrder = storage.SortDesc
	}
	return s.deps.Reports.List(ctx, options.Filters, options.Pagination)
}

func (s *service) GetReport(ctx context.Context, id string) (report.SynchronizationReport, error) {
	return get(ctx, kindReport, id, s.deps.Reports.Get)
}

func (s *service) DeleteReport(ctx context.Context, id string) error {
	if _, err := s.GetReport(ctx, id); err != nil {
		return err
	}
	return s.deps.Reports.Delete(ctx, id)
}
