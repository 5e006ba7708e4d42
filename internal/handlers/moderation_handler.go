package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/courseloop/forum-gateway/internal/models"
	"github.com/courseloop/forum-gateway/internal/moderation"
	"github.com/courseloop/forum-gateway/internal/roles"
	"github.com/courseloop/forum-gateway/internal/thread"
	"github.com/courseloop/forum-gateway/internal/upstream"
)

// ModerationHandler handles HTTP requests for gated state transitions:
// soft deletes, role grants, restrictions, and forum deletion
type ModerationHandler struct {
	store  upstream.Store
	engine *moderation.Engine
}

// NewModerationHandler creates a new ModerationHandler
func NewModerationHandler(store upstream.Store, engine *moderation.Engine) *ModerationHandler {
	return &ModerationHandler{
		store:  store,
		engine: engine,
	}
}

// RegisterModerationRoutes registers moderation-related routes
func (h *ModerationHandler) RegisterModerationRoutes(g *echo.Group) {
	g.DELETE("/posts/:post_id", h.DeletePost)
	g.DELETE("/posts/:post_id/comments/:comment_id", h.DeleteComment)
	g.POST("/forums/:forum_id/moderators", h.AuthorizeUser)
	g.DELETE("/forums/:forum_id/moderators/:user_id", h.DeauthorizeUser)
	g.POST("/forums/:forum_id/restrictions", h.RestrictUser)
	g.DELETE("/forums/:forum_id/restrictions/:user_id", h.UnrestrictUser)
	g.DELETE("/forums/:forum_id", h.DeleteForum)
}

// DeletePost soft-deletes a post
func (h *ModerationHandler) DeletePost(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "post_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.store.FetchPost(ctx, postID)
	if err != nil {
		return respondError(c, err, nil)
	}

	// Role state can change between render and action, so the snapshot is
	// taken fresh here, not trusted from the client.
	status := h.resolveForForum(c, user, post.ForumID)
	if err := h.engine.DeletePost(ctx, user, status, post); err != nil {
		return respondError(c, err, &status)
	}
	return c.JSON(http.StatusOK, echo.Map{"post_id": postID, "is_deleted": true})
}

// DeleteComment soft-deletes a comment without touching its children
func (h *ModerationHandler) DeleteComment(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "post_id")
	if err != nil {
		return err
	}
	commentID, err := paramID(c, "comment_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	post, err := h.store.FetchPost(ctx, postID)
	if err != nil {
		return respondError(c, err, nil)
	}
	tree, err := thread.Build(post)
	if err != nil {
		return respondError(c, err, nil)
	}
	node, ok := tree.Node(commentID)
	if !ok {
		return respondError(c, models.NewNotFoundError("comment not found in this thread"), nil)
	}

	status := h.resolveForForum(c, user, post.ForumID)
	if err := h.engine.DeleteComment(ctx, user, status, &node.Comment); err != nil {
		return respondError(c, err, &status)
	}
	return c.JSON(http.StatusOK, echo.Map{"comment_id": commentID, "is_deleted": true})
}

// AuthorizeUser grants a member the forum's moderator role
func (h *ModerationHandler) AuthorizeUser(c echo.Context) error {
	return h.memberAction(c, h.engine.Authorize)
}

// RestrictUser puts a member under restriction
func (h *ModerationHandler) RestrictUser(c echo.Context) error {
	return h.memberAction(c, h.engine.Restrict)
}

// DeauthorizeUser revokes a member's moderator role
func (h *ModerationHandler) DeauthorizeUser(c echo.Context) error {
	return h.memberActionByParam(c, h.engine.Deauthorize)
}

// UnrestrictUser lifts a member's restriction
func (h *ModerationHandler) UnrestrictUser(c echo.Context) error {
	return h.memberActionByParam(c, h.engine.Unrestrict)
}

// DeleteForum destroys a forum; the store cascades to its content
func (h *ModerationHandler) DeleteForum(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	forumID, err := paramID(c, "forum_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	forum, err := h.store.FetchForum(ctx, forumID)
	if err != nil {
		return respondError(c, err, nil)
	}
	status := roles.Resolve(user, forum)

	if err := h.engine.DeleteForum(ctx, user, status, forumID); err != nil {
		return respondError(c, err, &status)
	}
	return c.NoContent(http.StatusNoContent)
}

type memberActionFunc func(ctx context.Context, actor models.User, status roles.Status, forum *models.Forum, userID int64) error

// memberAction runs an engine transition whose target comes from the
// request body.
func (h *ModerationHandler) memberAction(c echo.Context, action memberActionFunc) error {
	var req models.MemberActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	return h.runMemberAction(c, req.UserID, action)
}

// memberActionByParam runs an engine transition whose target comes from the
// path.
func (h *ModerationHandler) memberActionByParam(c echo.Context, action memberActionFunc) error {
	targetID, err := paramID(c, "user_id")
	if err != nil {
		return err
	}
	return h.runMemberAction(c, targetID, action)
}

func (h *ModerationHandler) runMemberAction(c echo.Context, targetID int64, action memberActionFunc) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	forumID, err := paramID(c, "forum_id")
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	forum, err := h.store.FetchForum(ctx, forumID)
	if err != nil {
		return respondError(c, err, nil)
	}
	status := roles.Resolve(user, forum)

	if err := action(ctx, user, status, forum, targetID); err != nil {
		return respondError(c, err, &status)
	}
	return c.JSON(http.StatusOK, echo.Map{"forum_id": forumID, "user_id": targetID})
}

// resolveForForum resolves the caller's role for a forum id, degrading to
// the global-only status when the snapshot cannot be fetched.
func (h *ModerationHandler) resolveForForum(c echo.Context, user models.User, forumID int64) roles.Status {
	if forumID == 0 {
		return roles.Resolve(user, nil)
	}
	forum, err := h.store.FetchForum(c.Request().Context(), forumID)
	if err != nil {
		c.Logger().Warnf("failed to fetch forum %d for role resolution: %v", forumID, err)
		return roles.Resolve(user, nil)
	}
	return roles.Resolve(user, forum)
}
