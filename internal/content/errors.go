package content

import (
	"errors"
	"fmt"
)

var (
	ErrPostNotFound     = errors.New("content: post not found")
	ErrRootUnreadable   = errors.New("content: content root unreadable")
	ErrDocumentInvalid  = errors.New("content: document front matter invalid")
	ErrDateUnparseable  = errors.New("content: date is not a recognised ISO 8601 value")
	ErrLoaderRequired   = errors.New("content: loader is required")
	ErrWatchRootMissing = errors.New("content: watch root is not a directory")
)

// NotFoundError names the lookup that failed. It matches ErrPostNotFound
// under errors.Is.
type NotFoundError struct {
	Category string
	Slug     string
}

func (e *NotFoundError) Error() string {
	if e.Category == "" {
		return fmt.Sprintf("content: post %q not found", e.Slug)
	}
	return fmt.Sprintf("content: post %q not found in category %q", e.Slug, e.Category)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrPostNotFound
}
