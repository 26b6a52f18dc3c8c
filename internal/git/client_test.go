package git

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testAuthor = &object.Signature{Name: "Test Author", Email: "test@example.com"}

func commitFiles(t *testing.T, repoDir string, workTree *git.Worktree, files map[string]string, message string) {
	t.Helper()

	for filename, content := range files {
		filePath := filepath.Join(repoDir, filename)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
		_, err := workTree.Add(filename)
		require.NoError(t, err)
	}

	_, err := workTree.Commit(message, &git.CommitOptions{Author: testAuthor})
	require.NoError(t, err)
}

// createStoreRepo creates a repository with a master branch and one branch per entry
// of branches, each branched from master
func createStoreRepo(t *testing.T, master map[string]string, branches map[string]map[string]string) string {
	t.Helper()

	repoDir := t.TempDir()
	repo, err := git.PlainInit(repoDir, false)
	require.NoError(t, err)
	workTree, err := repo.Worktree()
	require.NoError(t, err)

	commitFiles(t, repoDir, workTree, master, "Initial commit")

	for branch, files := range branches {
		require.NoError(t, workTree.Checkout(&git.CheckoutOptions{
			Branch: plumbing.NewBranchReferenceName("master"),
		}))
		require.NoError(t, workTree.Checkout(&git.CheckoutOptions{
			Branch: plumbing.NewBranchReferenceName(branch),
			Create: true,
		}))
		commitFiles(t, repoDir, workTree, files, "Add "+branch)
	}
	return repoDir
}

const moduleJSON = `{"id":"M1","name":"Immunization","type":"metadata"}`

func TestRepository_ListBranchesAndFiles(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repoDir := createStoreRepo(t,
		map[string]string{"README.md": "packages"},
		map[string]map[string]string{
			"Group-A": {
				"immunization/module.json":                           moduleJSON,
				"immunization/vaccines-1.0.0-2.36-202401011230.json": `{}`,
			},
			"Group-B": {"other/file.json": `{}`},
		},
	)

	repo := NewRepository()
	remote := Remote{URL: repoDir}

	branches, err := repo.ListBranches(ctx, remote)
	require.NoError(t, err)
	var names []string
	for _, b := range branches {
		names = append(names, b.Name)
		assert.NotEmpty(t, b.SHA)
	}
	assert.ElementsMatch(t, []string{"master", "Group-A", "Group-B"}, names)

	files, err := repo.ListFiles(ctx, remote, "Group-A")
	require.NoError(t, err)

	byPath := map[string]File{}
	for _, f := range files {
		byPath[f.Path] = f
	}
	require.Contains(t, byPath, "immunization")
	assert.Equal(t, FileTypeTree, byPath["immunization"].Type)
	require.Contains(t, byPath, "immunization/module.json")
	assert.Equal(t, FileTypeBlob, byPath["immunization/module.json"].Type)
	assert.Contains(t, byPath, "immunization/vaccines-1.0.0-2.36-202401011230.json")
	assert.Contains(t, byPath, "README.md")
	assert.NotContains(t, byPath, "other/file.json")

	blob, err := repo.Request(ctx, remote, byPath["immunization/module.json"].URL)
	require.NoError(t, err)
	assert.Equal(t, EncodingBase64, blob.Encoding)

	var module struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, ReadFileContents(blob, &module))
	assert.Equal(t, "M1", module.ID)
	assert.Equal(t, "Immunization", module.Name)
}

func TestRepository_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repoDir := createStoreRepo(t, map[string]string{"README.md": "packages"}, nil)
	repo := NewRepository()

	_, err := repo.ListFiles(ctx, Remote{URL: repoDir}, "missing-branch")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = repo.Request(ctx, Remote{URL: repoDir}, "not-a-blob-url")
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))

	_, err = repo.ListBranches(ctx, Remote{URL: "https://github.com/example/store.git"})
	require.Error(t, err)
	assert.Equal(t, KindNoToken, KindOf(err))

	_, err = repo.ListFiles(ctx, Remote{URL: "https://github.com/example/store.git"}, "main")
	require.Error(t, err)
	assert.Equal(t, KindNoToken, KindOf(err))

	_, err = repo.ListBranches(ctx, Remote{URL: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
}

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		hasToken bool
		want     ErrorKind
	}{
		{name: "repository not found", err: transport.ErrRepositoryNotFound, want: KindNotFound},
		{name: "empty remote", err: transport.ErrEmptyRemoteRepository, want: KindNotFound},
		{name: "missing reference", err: fmt.Errorf("resolve: %w", plumbing.ErrReferenceNotFound), want: KindNotFound},
		{name: "authentication without token", err: transport.ErrAuthenticationRequired, want: KindNoToken},
		{name: "authentication with token", err: transport.ErrAuthenticationRequired, hasToken: true, want: KindBadCredentials},
		{name: "authorization failed", err: transport.ErrAuthorizationFailed, hasToken: true, want: KindBadCredentials},
		{name: "other", err: errors.New("boom"), want: KindUnknown},
		{name: "already classified", err: &Error{Kind: KindWritePermissions}, want: KindWritePermissions},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := classify(tt.err, tt.hasToken)
			assert.Equal(t, tt.want, KindOf(err))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.NoError(t, classify(nil, false))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
}

func TestReadFileContents(t *testing.T) {
	t.Parallel()

	var out map[string]string
	content := base64.StdEncoding.EncodeToString([]byte(`{"name":"x"}`))
	require.NoError(t, ReadFileContents(Blob{Encoding: EncodingBase64, Content: content[:4] + "\n" + content[4:]}, &out))
	assert.Equal(t, "x", out["name"])

	require.NoError(t, ReadFileContents(Blob{Content: `{"name":"y"}`}, &out))
	assert.Equal(t, "y", out["name"])

	require.Error(t, ReadFileContents(Blob{Encoding: EncodingBase64, Content: "%%%"}, &out))
	require.Error(t, ReadFileContents(Blob{Content: "not json"}, &out))
}

func TestError(t *testing.T) {
	t.Parallel()

	inner := errors.New("denied")
	err := &Error{Kind: KindBadCredentials, Err: inner}
	assert.Equal(t, "BAD_CREDENTIALS: denied", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "NOT_FOUND", (&Error{Kind: KindNotFound}).Error())
}
