package service

import (
	"context"

	"github.com/synclab/metasync/internal/logger"
	"github.com/synclab/metasync/internal/report"
	"github.com/synclab/metasync/internal/storage"
	"github.com/synclab/metasync/internal/sync"
	"github.com/synclab/metasync/internal/syncrule"
)

const kindRule = "synchronization rule"

func (s *service) ListRules(ctx context.Context, opts ...Option) (storage.PaginatedObjects[syncrule.SyncRule], error) {
	options, err := ApplyOptions(opts...)
	if err != nil {
		return storage.PaginatedObjects[syncrule.SyncRule]{}, err
	}
	return s.deps.Rules.List(ctx, options.Filters, options.Pagination)
}

func (s *service) GetRule(ctx context.Context, id string) (syncrule.SyncRule, error) {
	return get(ctx, kindRule, id, s.deps.Rules.Get)
}

func (s *service) SaveRule(ctx context.Context, rule syncrule.SyncRule) (syncrule.SyncRule, error) {
	if err := rule.Validate(); err != nil {
		return rule, invalid(err)
	}
	saved, err := s.deps.Rules.Save(ctx, rule)
	if err != nil {
		return rule, err
	}
	s.reload(ctx)
	return saved, nil
}

func (s *service) DeleteRule(ctx context.Context, id string) error {
	if _, err := s.GetRule(ctx, id); err != nil {
		return err
	}
	if err := s.deps.Rules.Delete(ctx, id); err != nil {
		return err
	}
	s.reload(ctx)
	return nil
}

func (s *service) RunRule(ctx context.Context, id, user string) (report.SynchronizationReport, error) {
	rule, err := s.GetRule(ctx, id)
	if err != nil {
		return report.SynchronizationReport{}, err
	}

	logger.Infof("Running synchronization rule %s (%s) for %s", rule.Name, rule.ID, user)
	syncReport, err := sync.Run(ctx, rule, s.deps.Sync, user)
	if err != nil {
		return syncReport, err
	}

	if _, err := s.deps.Rules.Save(ctx, rule.UpdateLastExecuted(syncReport.Timestamp)); err != nil {
		logger.Warnf("Failed to record the execution of rule %s: %v", rule.ID, err)
	}
	return syncReport, nil
}
