package packages

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/synclab/metasync/internal/git"
	"github.com/synclab/metasync/internal/git/mocks"
	"github.com/synclab/metasync/internal/metadata"
	"github.com/synclab/metasync/internal/storage"
)

func groups(names ...string) UserGroupLister {
	return UserGroupListerFunc(func(context.Context) ([]string, error) { return names, nil })
}

func blob(content string) git.Blob {
	return git.Blob{Encoding: git.EncodingBase64, Content: base64.StdEncoding.EncodeToString([]byte(content))}
}

func savedStore(t *testing.T) (StoreRepository, Store) {
	t.Helper()
	stores := NewStoreRepository(storage.NewMemoryStore())
	store, err := stores.Save(context.Background(), Store{Account: "eyeseetea", Repository: "packages", Token: "t"})
	require.NoError(t, err)
	return stores, store
}

func TestLister_ListStorePackages(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctrl := gomock.NewController(t)
	stores, store := savedStore(t)
	remote := store.Remote()

	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().ListBranches(gomock.Any(), remote).Return([]git.Branch{
		{Name: "master"}, {Name: "Health-Workers"}, {Name: "Admins"},
	}, nil)
	repo.EXPECT().ListFiles(gomock.Any(), remote, "Health-Workers").Return([]git.File{
		{Path: "immunization", Type: git.FileTypeTree},
		{Path: "immunization/module.json", Type: git.FileTypeBlob, URL: "u-module"},
		{Path: "immunization/vaccines-1.0.0-2.36-202401011230", Type: git.FileTypeBlob, URL: "u1"},
		{Path: "immunization/vaccines-1.1.0-rc1-2.36-202402011230", Type: git.FileTypeBlob, URL: "u2"},
		{Path: "orphan/cases-1.0.0-2.36-202401011230", Type: git.FileTypeBlob, URL: "u3"},
		{Path: "README.md", Type: git.FileTypeBlob, URL: "u4"},
	}, nil)
	repo.EXPECT().Request(gomock.Any(), remote, "u-module").
		Return(blob(`{"id":"M1","name":"Immunization","type":"metadata"}`), nil).Times(1)

	lister := NewLister(stores, repo, groups("Health Workers", "Data Entry"))
	packages, err := lister.ListStorePackages(ctx, store.ID)
	require.NoError(t, err)
	require.Len(t, packages, 3)

	assert.Equal(t, "u2", packages[0].ID)
	assert.Equal(t, "1.1.0-rc1", packages[0].Version)
	assert.Equal(t, "Immunization", packages[0].Module.Name)
	assert.Equal(t, "u1", packages[1].ID)
	assert.Equal(t, "M1", packages[1].Module.ID)

	assert.Equal(t, "u3", packages[2].ID)
	assert.Equal(t, UnknownModule, packages[2].Module.Name)
	assert.Equal(t, UnknownModule, packages[2].Module.ID)
}

func TestLister_UnreadableModuleFile(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	stores, store := savedStore(t)

	repo := mocks.NewMockRepository(ctrl)
	repo.EXPECT().ListBranches(gomock.Any(), gomock.Any()).Return([]git.Branch{{Name: "Admins"}}, nil)
	repo.EXPECT().ListFiles(gomock.Any(), gomock.Any(), "Admins").Return([]git.File{
		{Path: "m/module.json", Type: git.FileTypeBlob, URL: "u-module"},
		{Path: "m/p-1.0.0-2.36-202401011230", Type: git.FileTypeBlob, URL: "u1"},
	}, nil)
	repo.EXPECT().Request(gomock.Any(), gomock.Any(), "u-module").Return(blob("not json"), nil)

	packages, err := NewLister(stores, repo, groups("Admins")).ListStorePackages(context.Background(), store.ID)
	require.NoError(t, err)
	require.Len(t, packages, 1)
	assert.Equal(t, UnknownModule, packages[0].Module.Name)
}

func TestLister_Errors(t *testing.T) {
	t.Parallel()

	t.Run("unknown store", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		stores, _ := savedStore(t)
		lister := NewLister(stores, mocks.NewMockRepository(ctrl), groups("Admins"))

		_, err := lister.ListStorePackages(context.Background(), "missing")
		require.ErrorIs(t, err, ErrStoreNotFound)
	})

	t.Run("git error keeps its kind", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		stores, store := savedStore(t)
		repo := mocks.NewMockRepository(ctrl)
		repo.EXPECT().ListBranches(gomock.Any(), gomock.Any()).
			Return(nil, &git.Error{Kind: git.KindBadCredentials, Err: errors.New("401")})

		_, err := NewLister(stores, repo, groups("Admins")).ListStorePackages(context.Background(), store.ID)
		require.Error(t, err)
		assert.Equal(t, git.KindBadCredentials, git.KindOf(err))
	})

	t.Run("branch listing failure", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		stores, store := savedStore(t)
		repo := mocks.NewMockRepository(ctrl)
		repo.EXPECT().ListBranches(gomock.Any(), gomock.Any()).Return([]git.Branch{{Name: "Admins"}}, nil)
		repo.EXPECT().ListFiles(gomock.Any(), gomock.Any(), "Admins").
			Return(nil, &git.Error{Kind: git.KindNotFound})

		_, err := NewLister(stores, repo, groups("Admins")).ListStorePackages(context.Background(), store.ID)
		require.Error(t, err)
		assert.Equal(t, git.KindNotFound, git.KindOf(err))
	})

	t.Run("no matching branch", func(t *testing.T) {
		t.Parallel()

		ctrl := gomock.NewController(t)
		stores, store := savedStore(t)
		repo := mocks.NewMockRepository(ctrl)
		repo.EXPECT().ListBranches(gomock.Any(), gomock.Any()).Return([]git.Branch{{Name: "master"}}, nil)

		packages, err := NewLister(stores, repo, groups("Admins")).ListStorePackages(context.Background(), store.ID)
		require.NoError(t, err)
		assert.Empty(t, packages)
	})
}

func TestInstanceUserGroups(t *testing.T) {
	t.Parallel()

	repo := metadata.NewMemoryRepository(metadata.Package{
		metadata.UserGroups: {{"id": "UG1", "name": "Health Workers"}, {"id": "UG2", "name": "Admins"}},
	})
	names, err := InstanceUserGroups(repo).UserGroupNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Health Workers", "Admins"}, names)
}

func TestBranchName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Health-Workers", BranchName("Health Workers"))
	assert.Equal(t, "A--B-C", BranchName("A  B\tC"))
	assert.Equal(t, "Admins", BranchName("Admins"))
}
