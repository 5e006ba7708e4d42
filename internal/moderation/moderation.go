// Package moderation executes the gated state transitions of the forum:
// content creation, soft deletes, membership changes, and role grants.
// Every transition re-checks the caller's role snapshot at execution time;
// a control shown by the UI is a convenience, never the authority, and the
// upstream store re-checks once more on its side.
package moderation

import (
	"context"

	"github.com/courseloop/forum-gateway/internal/models"
	"github.com/courseloop/forum-gateway/internal/roles"
	"github.com/courseloop/forum-gateway/internal/upstream"
)

// Engine drives moderation transitions against the upstream store.
type Engine struct {
	store upstream.Store
}

// New creates a moderation engine backed by the given store.
func New(store upstream.Store) *Engine {
	return &Engine{store: store}
}

// CreatePost appends a post to a forum. Restricted callers are rejected
// before any request is sent; restriction always wins over any other flag.
func (e *Engine) CreatePost(ctx context.Context, actor models.User, status roles.Status, forumID int64, req models.CreatePostRequest) (*models.Post, error) {
	if status.IsRestricted {
		return nil, models.NewAuthorizationError("restricted members cannot create posts")
	}
	if !status.CanCreateContent() {
		return nil, models.NewAuthorizationError("you must join this forum before posting")
	}
	if err := models.ScreenContent(req.Title); err != nil {
		return nil, err
	}
	if err := models.ScreenContent(req.Body); err != nil {
		return nil, err
	}
	return e.store.CreatePost(ctx, forumID, actor, req)
}

// CreateComment appends a comment or reply to a post, under the same gating
// as CreatePost.
func (e *Engine) CreateComment(ctx context.Context, actor models.User, status roles.Status, postID int64, req models.CreateCommentRequest) (*models.Comment, error) {
	if status.IsRestricted {
		return nil, models.NewAuthorizationError("restricted members cannot comment")
	}
	if !status.CanCreateContent() {
		return nil, models.NewAuthorizationError("you must join this forum before commenting")
	}
	if err := models.ScreenContent(req.Body); err != nil {
		return nil, err
	}
	return e.store.CreateComment(ctx, postID, actor, req)
}

// DeletePost soft-deletes a post. Authors may delete their own posts;
// moderators and admins may delete anyone's. Deleting an already-deleted
// post is a no-op success.
func (e *Engine) DeletePost(ctx context.Context, actor models.User, status roles.Status, post *models.Post) error {
	if post.IsDeleted {
		return nil
	}
	if !canDeleteContent(actor, status, post.AuthorID) {
		return models.NewAuthorizationError("you may only delete your own posts")
	}
	return e.store.DeletePost(ctx, post.ID, actor)
}

// DeleteComment soft-deletes a comment. Children keep their own state.
func (e *Engine) DeleteComment(ctx context.Context, actor models.User, status roles.Status, comment *models.Comment) error {
	if comment.IsDeleted {
		return nil
	}
	if !canDeleteContent(actor, status, comment.AuthorID) {
		return models.NewAuthorizationError("you may only delete your own comments")
	}
	return e.store.DeleteComment(ctx, comment.ID, actor)
}

// canDeleteContent applies the ownership exception: authors always may,
// admins and authorized moderators may for anyone.
func canDeleteContent(actor models.User, status roles.Status, authorID int64) bool {
	if actor.ID == authorID {
		return true
	}
	return status.CanModerate()
}

// Join makes the caller a member. Joining a forum the caller already
// belongs to is a no-op success.
func (e *Engine) Join(ctx context.Context, actor models.User, status roles.Status, forumID int64) error {
	if status.IsMember {
		return nil
	}
	return e.store.JoinForum(ctx, forumID, actor)
}

// Leave removes the caller's membership. Leaving a forum the caller never
// joined is a no-op success.
func (e *Engine) Leave(ctx context.Context, actor models.User, status roles.Status, forumID int64) error {
	if !status.IsMember {
		return nil
	}
	return e.store.LeaveForum(ctx, forumID, actor)
}

// Authorize grants a member the forum's moderator role. Only admins grant
// moderator rank. Granting it lifts an existing restriction, since the two
// roles are corrective of each other at write time.
func (e *Engine) Authorize(ctx context.Context, actor models.User, status roles.Status, forum *models.Forum, userID int64) error {
	if !status.IsAdmin {
		return models.NewAuthorizationError("only admins may authorize moderators")
	}
	if !forum.HasMember(userID) {
		return models.NewValidationError("user is not a member of this forum")
	}
	if err := e.store.AuthorizeUser(ctx, forum.ID, userID, actor); err != nil {
		return err
	}
	if containsID(forum.RestrictedIDs, userID) {
		return e.store.UnrestrictUser(ctx, forum.ID, userID, actor)
	}
	return nil
}

// Deauthorize revokes a member's moderator role.
func (e *Engine) Deauthorize(ctx context.Context, actor models.User, status roles.Status, forum *models.Forum, userID int64) error {
	if !status.IsAdmin {
		return models.NewAuthorizationError("only admins may deauthorize moderators")
	}
	if !containsID(forum.AuthorizedIDs, userID) {
		return nil
	}
	return e.store.DeauthorizeUser(ctx, forum.ID, userID, actor)
}

// Restrict puts a member under restriction, revoking moderator rank if
// they had it.
func (e *Engine) Restrict(ctx context.Context, actor models.User, status roles.Status, forum *models.Forum, userID int64) error {
	if !status.CanModerate() {
		return models.NewAuthorizationError("only moderators may restrict members")
	}
	if !forum.HasMember(userID) {
		return models.NewValidationError("user is not a member of this forum")
	}
	if err := e.store.RestrictUser(ctx, forum.ID, userID, actor); err != nil {
		return err
	}
	if containsID(forum.AuthorizedIDs, userID) {
		return e.store.DeauthorizeUser(ctx, forum.ID, userID, actor)
	}
	return nil
}

// Unrestrict lifts a member's restriction.
func (e *Engine) Unrestrict(ctx context.Context, actor models.User, status roles.Status, forum *models.Forum, userID int64) error {
	if !status.CanModerate() {
		return models.NewAuthorizationError("only moderators may unrestrict members")
	}
	if !containsID(forum.RestrictedIDs, userID) {
		return nil
	}
	return e.store.UnrestrictUser(ctx, forum.ID, userID, actor)
}

// DeleteForum destroys a forum and, transitively in the store, everything
// in it. Admin only.
func (e *Engine) DeleteForum(ctx context.Context, actor models.User, status roles.Status, forumID int64) error {
	if !status.IsAdmin {
		return models.NewAuthorizationError("only admins may delete forums")
	}
	return e.store.DeleteForum(ctx, forumID, actor)
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
