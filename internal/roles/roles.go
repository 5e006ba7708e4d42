// Package roles derives a caller's permission snapshot for a forum context.
// A Status is a pure function of (user, forum snapshot); it is recomputed on
// every fetch and never cached, because membership can change between
// requests.
package roles

import (
	"github.com/courseloop/forum-gateway/internal/models"
)

// Status is the derived per-forum permission snapshot.
type Status struct {
	IsAdmin      bool `json:"is_admin"`
	IsMember     bool `json:"is_member"`
	IsAuthorized bool `json:"is_authorized"`
	IsRestricted bool `json:"is_restricted"`

	// HasForumContext is false when the status was resolved without a forum
	// snapshot; only IsAdmin is meaningful then.
	HasForumContext bool `json:"has_forum_context"`
}

// Resolve computes the caller's status for a forum snapshot. A nil forum
// yields the global-only status: IsAdmin is a user attribute and is always
// reported, the forum-scoped flags stay unset until context is available.
func Resolve(user models.User, forum *models.Forum) Status {
	s := Status{IsAdmin: user.IsAdmin}
	if forum == nil {
		return s
	}
	s.HasForumContext = true
	s.IsMember = forum.HasMember(user.ID)
	for _, id := range forum.AuthorizedIDs {
		if id == user.ID {
			s.IsAuthorized = true
			break
		}
	}
	for _, id := range forum.RestrictedIDs {
		if id == user.ID {
			s.IsRestricted = true
			break
		}
	}
	return s
}

// CanCreateContent reports whether the caller may create posts or comments
// in the forum. Restriction always wins over authorization; admins bypass
// membership checks.
func (s Status) CanCreateContent() bool {
	if s.IsRestricted {
		return false
	}
	return s.IsAdmin || s.IsMember
}

// CanModerate reports whether the caller may act on other users' content.
func (s Status) CanModerate() bool {
	if s.IsRestricted {
		return false
	}
	return s.IsAdmin || s.IsAuthorized
}

// CanViewThreads reports whether the forum's thread list is shown at all.
// Non-members get a join prompt and restricted members a restriction notice
// instead.
func (s Status) CanViewThreads() bool {
	if s.IsRestricted {
		return false
	}
	return s.IsAdmin || s.IsMember
}
