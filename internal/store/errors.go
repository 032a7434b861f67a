package store

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrConflict       = errors.New("already exists")
	ErrNotContributor = errors.New("user is not a contributor of this project")
)
