package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// ErrorKind classifies failures of remote repository operations
type ErrorKind string

// Error kinds
const (
	KindNotFound         ErrorKind = "NOT_FOUND"
	KindNoToken          ErrorKind = "NO_TOKEN"
	KindBadCredentials   ErrorKind = "BAD_CREDENTIALS"
	KindWritePermissions ErrorKind = "WRITE_PERMISSIONS"
	KindUnknown          ErrorKind = "UNKNOWN"
)

// Error is a failed repository operation
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of err, UNKNOWN when it carries none
func KindOf(err error) ErrorKind {
	var gitErr *Error
	if errors.As(err, &gitErr) {
		return gitErr.Kind
	}
	return KindUnknown
}

// classify wraps a go-git error with its kind
func classify(err error, hasToken bool) error {
	if err == nil {
		return nil
	}
	var gitErr *Error
	if errors.As(err, &gitErr) {
		return err
	}

	kind := KindUnknown
	switch {
	case errors.Is(err, transport.ErrRepositoryNotFound),
		errors.Is(err, transport.ErrEmptyRemoteRepository),
		errors.Is(err, plumbing.ErrReferenceNotFound),
		errors.Is(err, plumbing.ErrObjectNotFound),
		errors.Is(err, object.ErrFileNotFound):
		kind = KindNotFound
	case errors.Is(err, transport.ErrAuthenticationRequired):
		kind = KindBadCredentials
		if !hasToken {
			kind = KindNoToken
		}
	case errors.Is(err, transport.ErrAuthorizationFailed):
		kind = KindBadCredentials
	}
	return &Error{Kind: kind, Err: err}
}
