package service

import (
	"context"
	"fmt"

	"github.com/synclab/metasync/internal/modules"
	"github.com/synclab/metasync/internal/storage"
	"github.com/synclab/metasync/internal/syncrule"
)

const kindModule = "module"

func (s *service) ListModules(
	ctx context.Context, opts ...Option,
) (storage.PaginatedObjects[modules.MetadataModule], error) {
	options, err := ApplyOptions(opts...)
	if err != nil {
		return storage.PaginatedObjects[modules.MetadataModule]{}, err
	}
	return s.deps.Modules.List(ctx, options.Filters, options.Pagination)
}

func (s *service) GetModule(ctx context.Context, id string) (modules.MetadataModule, error) {
	return get(ctx, kindModule, id, s.deps.Modules.Get)
}

func (s *service) SaveModule(ctx context.Context, module modules.MetadataModule) (modules.MetadataModule, error) {
	if err := module.Validate(); err != nil {
		return module, invalid(err)
	}
	return s.deps.Modules.Save(ctx, module)
}

func (s *service) DeleteModule(ctx context.Context, id string) error {
	if _, err := s.GetModule(ctx, id); err != nil {
		return err
	}
	return s.deps.Modules.Delete(ctx, id)
}

func (s *service) MoveModuleRules(ctx context.Context, id string, move RuleMove) (modules.MetadataModule, error) {
	module, err := s.GetModule(ctx, id)
	if err != nil {
		return modules.MetadataModule{}, err
	}

	var updated modules.MetadataModule
	switch move.Action {
	case RuleInclude:
		updated, err = module.MoveRuleFromExcludeToInclude(move.MetadataType, move.Paths)
	case RuleExclude:
		updated, err = module.MoveRuleFromIncludeToExclude(move.MetadataType, move.Paths)
	default:
		return module, invalid(fmt.Errorf("unknown rule action %q", move.Action))
	}
	if err != nil {
		return module, invalid(err)
	}
	return s.deps.Modules.Save(ctx, updated)
}

func (s *service) CreateRuleFromModule(
	ctx context.Context, moduleID string, targets []string,
) (syncrule.SyncRule, error) {
	module, err := s.GetModule(ctx, moduleID)
	if err != nil {
		return syncrule.SyncRule{}, err
	}
	return s.SaveRule(ctx, syncrule.FromModule(module).UpdateTargetInstances(targets))
}
