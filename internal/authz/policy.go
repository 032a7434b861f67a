// Package authz holds the permission predicates gating every
// project-scoped endpoint. Each predicate is a pure function of the
// caller, the resolved entities and the request method; handlers declare
// the conjunction they need instead of re-deriving checks inline.
package authz

import (
	"errors"

	"github.com/google/uuid"

	"github.com/immacora/softdesk/internal/models"
	"github.com/immacora/softdesk/internal/types"
)

// ErrForbidden is returned whenever a predicate fails. Handlers map it
// to 403 without detail.
var ErrForbidden = errors.New("forbidden")

// Caller is the authenticated identity the HTTP layer resolved.
type Caller struct {
	ID          uuid.UUID
	IsSuperuser bool
}

// ReadOnly reports whether method is one of the safe methods exempt
// from author-only restrictions.
func ReadOnly(method string) bool {
	switch method {
	case "GET", "HEAD", "OPTIONS":
		return true
	}
	return false
}

// ContributorOnly passes iff the caller is a superuser or holds a
// contributor row on the project. membership is the caller's row for
// the enclosing project, nil when there is none.
func ContributorOnly(caller Caller, membership *models.Contributor) error {
	if caller.IsSuperuser {
		return nil
	}
	if membership != nil && membership.UserID == caller.ID {
		return nil
	}
	return ErrForbidden
}

// AuthorOrReadOnly passes for superusers, for the project's AUTHOR
// contributor, and for any contributor when the method is safe.
func AuthorOrReadOnly(caller Caller, membership *models.Contributor, method string) error {
	if caller.IsSuperuser {
		return nil
	}
	if membership == nil || membership.UserID != caller.ID {
		return ErrForbidden
	}
	if membership.Permission == types.PermissionAuthor {
		return nil
	}
	if ReadOnly(method) {
		return nil
	}
	return ErrForbidden
}

// CommentAuthorOnly passes iff the caller is a superuser or authored
// the comment.
func CommentAuthorOnly(caller Caller, comment *models.Comment) error {
	if caller.IsSuperuser {
		return nil
	}
	if comment != nil && comment.AuthorUserID == caller.ID {
		return nil
	}
	return ErrForbidden
}

// IssueAuthorOnly passes iff the caller is a superuser or authored the
// issue. Layered on top of ContributorOnly for issue mutations.
func IssueAuthorOnly(caller Caller, issue *models.Issue) error {
	if caller.IsSuperuser {
		return nil
	}
	if issue != nil && issue.AuthorUserID == caller.ID {
		return nil
	}
	return ErrForbidden
}
