package packages

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/synclab/metasync/internal/git"
	"github.com/synclab/metasync/internal/logger"
	"github.com/synclab/metasync/internal/metadata"
	"github.com/synclab/metasync/internal/modules"
)

// maxConcurrentRequests bounds the branches and module files fetched at once
const maxConcurrentRequests = 5

// UserGroupLister returns the names of the user groups whose packages are visible
type UserGroupLister interface {
	UserGroupNames(ctx context.Context) ([]string, error)
}

// UserGroupListerFunc adapts a function to UserGroupLister
type UserGroupListerFunc func(ctx context.Context) ([]string, error)

// UserGroupNames calls f
func (f UserGroupListerFunc) UserGroupNames(ctx context.Context) ([]string, error) {
	return f(ctx)
}

// InstanceUserGroups lists the user groups of an instance
func InstanceUserGroups(repo metadata.Repository) UserGroupLister {
	return UserGroupListerFunc(func(ctx context.Context) ([]string, error) {
		groups, err := repo.Get(ctx, metadata.UserGroups, metadata.Query{Fields: "id,name"})
		if err != nil {
			return nil, fmt.Errorf("failed to list user groups: %w", err)
		}
		names := make([]string, 0, len(groups))
		for _, group := range groups {
			names = append(names, group.Name())
		}
		return names, nil
	})
}

// Lister lists the packages of a store visible to the user groups
type Lister struct {
	stores StoreRepository
	git    git.Repository
	groups UserGroupLister
}

// NewLister creates a package lister
func NewLister(stores StoreRepository, repo git.Repository, groups UserGroupLister) *Lister {
	return &Lister{stores: stores, git: repo, groups: groups}
}

// BranchName returns the branch of a user group: every whitespace character becomes "-"
func BranchName(userGroup string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, userGroup)
}

// ListStorePackages returns the packages of every branch matching a user group.
// Unknown stores fail with ErrStoreNotFound and git failures keep their git.ErrorKind.
func (l *Lister) ListStorePackages(ctx context.Context, storeID string) ([]Package, error) {
	store, err := l.stores.Get(ctx, storeID)
	if err != nil {
		return nil, err
	}
	remote := store.Remote()

	userGroups, err := l.groups.UserGroupNames(ctx)
	if err != nil {
		return nil, err
	}

	branches, err := l.git.ListBranches(ctx, remote)
	if err != nil {
		return nil, err
	}

	var matching []string
	for _, group := range userGroups {
		name := BranchName(group)
		if slices.ContainsFunc(branches, func(b git.Branch) bool { return b.Name == name }) &&
			!slices.Contains(matching, name) {
			matching = append(matching, name)
		}
	}

	results := make([][]Package, len(matching))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentRequests)
	for i, branch := range matching {
		g.Go(func() error {
			packages, err := l.branchPackages(gctx, remote, branch)
			if err != nil {
				return fmt.Errorf("failed to list packages of %s: %w", branch, err)
			}
			results[i] = packages
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := slices.Concat(results...)
	Sort(out)
	return out, nil
}

func (l *Lister) branchPackages(ctx context.Context, remote git.Remote, branch string) ([]Package, error) {
	files, err := l.git.ListFiles(ctx, remote, branch)
	if err != nil {
		return nil, err
	}

	moduleURLs := map[string]string{}
	var packageFiles []git.File
	for _, file := range files {
		if file.Type != git.FileTypeBlob {
			continue
		}
		if strings.Contains(file.Path, ModuleFile) {
			moduleURLs[file.Path] = file.URL
		} else {
			packageFiles = append(packageFiles, file)
		}
	}

	modulesByName := newModuleCache(l.git, remote, moduleURLs)
	var packages []Package
	for _, file := range packageFiles {
		details, ok := ParsePath(file.Path)
		if !ok {
			logger.Debugf("Skipping %s: not a package file", file.Path)
			continue
		}
		packages = append(packages, Package{
			ID:          file.URL,
			Name:        details.Name,
			Version:     details.Version,
			DHISVersion: details.DHISVersion,
			Created:     details.Created,
			Module:      modulesByName.get(ctx, details.ModuleName),
		})
	}
	return packages, nil
}

// moduleCache reads each module file of a branch once
type moduleCache struct {
	git    git.Repository
	remote git.Remote
	urls   map[string]string

	mu      sync.Mutex
	modules map[string]modules.MetadataModule
}

func newModuleCache(repo git.Repository, remote git.Remote, urls map[string]string) *moduleCache {
	return &moduleCache{git: repo, remote: remote, urls: urls, modules: map[string]modules.MetadataModule{}}
}

func (c *moduleCache) get(ctx context.Context, moduleName string) modules.MetadataModule {
	c.mu.Lock()
	defer c.mu.Unlock()

	if module, ok := c.modules[moduleName]; ok {
		return module
	}

	module := unknownModule()
	if url, ok := c.urls[moduleName+"/"+ModuleFile]; ok {
		blob, err := c.git.Request(ctx, c.remote, url)
		if err == nil {
			err = git.ReadFileContents(blob, &module)
		}
		if err != nil {
			logger.Warnf("Failed to read module file of %s: %v", moduleName, err)
			module = unknownModule()
		}
	}
	c.modules[moduleName] = module
	return module
}
