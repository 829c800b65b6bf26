package service

import (
	"errors"
	"fmt"

	"github.com/Comraich/sortr-sub001/internal/store"
)

var (
	ErrNotFound = errors.New("not found")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")

	ErrUnknownProvider     = errors.New("unknown sign-in provider")
	ErrProviderRejected    = errors.New("sign-in provider rejected the token")
	ErrProviderUnavailable = errors.New("sign-in provider is unavailable")

	ErrForbidden        = errors.New("not allowed")
	ErrSelfModification = errors.New("admins cannot change or delete their own account")

	ErrLocationHasBoxes = errors.New("location still contains boxes")
	ErrDuplicateName    = errors.New("name already in use")
	ErrAlreadyShared    = errors.New("resource is already shared with this user")

	ErrNoImage = errors.New("item has no image")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)

// NotFoundError names the missing record, e.g. "location 12 not found".
// It matches ErrNotFound with errors.Is.
type NotFoundError struct {
	Kind string
	ID   int64
	Name string
}

func (e *NotFoundError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s %s not found", e.Kind, e.Name)
	}
	return fmt.Sprintf("%s %d not found", e.Kind, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func notFound(kind string, id int64) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// notFoundOr turns a missing-row error of the store into a NotFoundError for
// kind/id and passes every other error through.
func notFoundOr(err error, kind string, id int64) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound(kind, id)
	}
	return err
}

// referenceOr is notFoundOr for foreign key violations: the referenced
// kind/id is the missing record.
func referenceOr(err error, kind string, id int64) error {
	if errors.Is(err, store.ErrReferenceNotFound) {
		return notFound(kind, id)
	}
	return err
}
