// Package git reads package stores kept in remote git repositories, one branch per
// user group.
package git

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/cache"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	githttp "github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/storage/filesystem"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/synclab/metasync/internal/logger"
)

const (
	// FileTypeBlob is a regular file
	FileTypeBlob = "blob"
	// FileTypeTree is a directory
	FileTypeTree = "tree"

	// EncodingBase64 is the encoding of blob contents returned by Request
	EncodingBase64 = "base64"

	remoteName = "origin"
	blobsPath  = "/git/blobs/"
)

// Remote identifies a repository and the credentials used to read it
type Remote struct {
	URL     string
	Account string
	Token   string
}

// Branch is a branch of a remote repository
type Branch struct {
	Name string `json:"name"`
	SHA  string `json:"sha"`
}

// File is an entry of a branch tree
type File struct {
	Path string `json:"path"`
	Type string `json:"type"`
	SHA  string `json:"sha"`

	// URL locates the blob for Request
	URL string `json:"url"`
}

// Blob is the encoded content of a file
type Blob struct {
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

// Repository reads files from remote repositories
//
//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks -source=client.go Repository
type Repository interface {
	// ListBranches returns the branches of the remote
	ListBranches(ctx context.Context, remote Remote) ([]Branch, error)

	// ListFiles returns every entry of the tree of a branch
	ListFiles(ctx context.Context, remote Remote, branch string) ([]File, error)

	// Request fetches the blob located by the URL of a listed file
	Request(ctx context.Context, remote Remote, url string) (Blob, error)
}

// defaultRepository implements Repository using go-git with in-memory storage
type defaultRepository struct {
	mu     sync.Mutex
	clones map[string]*git.Repository
}

// NewRepository creates a repository client
func NewRepository() Repository {
	return &defaultRepository{clones: make(map[string]*git.Repository)}
}

func (r *Remote) auth() *githttp.BasicAuth {
	if r.Token == "" {
		return nil
	}
	username := r.Account
	if username == "" {
		username = "token"
	}
	return &githttp.BasicAuth{Username: username, Password: r.Token}
}

// checkToken rejects remote http repositories without a token
func (r *Remote) checkToken() error {
	if r.Token == "" && (strings.HasPrefix(r.URL, "http://") || strings.HasPrefix(r.URL, "https://")) {
		return &Error{Kind: KindNoToken, Err: errors.New("a token is required to access " + r.URL)}
	}
	return nil
}

func (*defaultRepository) ListBranches(ctx context.Context, remote Remote) ([]Branch, error) {
	if err := remote.checkToken(); err != nil {
		return nil, err
	}

	rem := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: remoteName,
		URLs: []string{remote.URL},
	})

	opts := &git.ListOptions{}
	if auth := remote.auth(); auth != nil {
		opts.Auth = auth
	}
	refs, err := rem.ListContext(ctx, opts)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to list branches: %w", err), remote.Token != "")
	}

	var branches []Branch
	for _, ref := range refs {
		if ref.Name().IsBranch() {
			branches = append(branches, Branch{Name: ref.Name().Short(), SHA: ref.Hash().String()})
		}
	}
	return branches, nil
}

func (r *defaultRepository) ListFiles(ctx context.Context, remote Remote, branch string) ([]File, error) {
	repo, err := r.clone(ctx, remote, true)
	if err != nil {
		return nil, err
	}

	ref, err := branchReference(repo, branch)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to resolve branch %s: %w", branch, err), remote.Token != "")
	}

	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, classify(fmt.Errorf("failed to get commit object: %w", err), remote.Token != "")
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, classify(fmt.Errorf("failed to get tree: %w", err), remote.Token != "")
	}

	walker := object.NewTreeWalker(tree, true, nil)
	defer walker.Close()

	var files []File
	for {
		name, entry, err := walker.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, classify(fmt.Errorf("failed to walk tree: %w", err), remote.Token != "")
		}

		fileType := FileTypeBlob
		if entry.Mode == filemode.Dir {
			fileType = FileTypeTree
		}
		files = append(files, File{
			Path: name,
			Type: fileType,
			SHA:  entry.Hash.String(),
			URL:  strings.TrimSuffix(remote.URL, "/") + blobsPath + entry.Hash.String(),
		})
	}
	return files, nil
}

func (r *defaultRepository) Request(ctx context.Context, remote Remote, url string) (Blob, error) {
	idx := strings.LastIndex(url, blobsPath)
	if idx < 0 {
		return Blob{}, &Error{Kind: KindNotFound, Err: fmt.Errorf("unsupported blob url %q", url)}
	}
	hash := plumbing.NewHash(url[idx+len(blobsPath):])

	repo, err := r.clone(ctx, remote, false)
	if err != nil {
		return Blob{}, err
	}

	blob, err := repo.BlobObject(hash)
	if err != nil {
		return Blob{}, classify(fmt.Errorf("failed to get blob %s: %w", hash, err), remote.Token != "")
	}
	reader, err := blob.Reader()
	if err != nil {
		return Blob{}, classify(fmt.Errorf("failed to read blob %s: %w", hash, err), remote.Token != "")
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return Blob{}, classify(fmt.Errorf("failed to read blob %s: %w", hash, err), remote.Token != "")
	}
	return Blob{Encoding: EncodingBase64, Content: base64.StdEncoding.EncodeToString(content)}, nil
}

// clone returns an in-memory bare clone of the remote. A cached clone is reused unless
// refresh is set.
func (r *defaultRepository) clone(ctx context.Context, remote Remote, refresh bool) (*git.Repository, error) {
	if err := remote.checkToken(); err != nil {
		return nil, err
	}

	key := remote.URL + "\x00" + remote.Account
	r.mu.Lock()
	cached, ok := r.clones[key]
	r.mu.Unlock()
	if ok && !refresh {
		return cached, nil
	}

	opts := &git.CloneOptions{
		URL:        remote.URL,
		RemoteName: remoteName,
		Tags:       git.NoTags,
	}
	if auth := remote.auth(); auth != nil {
		opts.Auth = auth
		logger.Debugf("Using HTTP basic authentication for %s", remote.URL)
	}

	// Bare clone kept in memory, go-git stores objects on a billy filesystem
	storer := filesystem.NewStorage(memfs.New(), cache.NewObjectLRUDefault())
	repo, err := git.CloneContext(ctx, storer, nil, opts)
	if err != nil {
		return nil, classify(fmt.Errorf("failed to clone repository: %w", err), remote.Token != "")
	}

	r.mu.Lock()
	r.clones[key] = repo
	r.mu.Unlock()
	return repo, nil
}

func branchReference(repo *git.Repository, branch string) (*plumbing.Reference, error) {
	ref, err := repo.Reference(plumbing.NewRemoteReferenceName(remoteName, branch), true)
	if err == nil {
		return ref, nil
	}
	return repo.Reference(plumbing.NewBranchReferenceName(branch), true)
}

// ReadFileContents decodes a blob holding a JSON document into out
func ReadFileContents(blob Blob, out any) error {
	data := []byte(blob.Content)
	if blob.Encoding == EncodingBase64 {
		decoded, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(blob.Content, "\n", ""))
		if err != nil {
			return fmt.Errorf("failed to decode file contents: %w", err)
		}
		data = decoded
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse file contents: %w", err)
	}
	return nil
}
