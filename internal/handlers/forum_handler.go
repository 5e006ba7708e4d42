package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/courseloop/forum-gateway/internal/models"
	"github.com/courseloop/forum-gateway/internal/moderation"
	"github.com/courseloop/forum-gateway/internal/recent"
	"github.com/courseloop/forum-gateway/internal/roles"
	"github.com/courseloop/forum-gateway/internal/upstream"
)

// ForumHandler handles HTTP requests related to forums
type ForumHandler struct {
	store   upstream.Store
	engine  *moderation.Engine
	recents *recent.RedisStore
}

// NewForumHandler creates a new ForumHandler
func NewForumHandler(store upstream.Store, engine *moderation.Engine, recents *recent.RedisStore) *ForumHandler {
	return &ForumHandler{
		store:   store,
		engine:  engine,
		recents: recents,
	}
}

// RegisterForumRoutes registers forum-related routes
func (h *ForumHandler) RegisterForumRoutes(g *echo.Group) {
	g.GET("/forums", h.ListForums)
	g.GET("/forums/:forum_id", h.GetForum)
	g.POST("/forums/:forum_id/join", h.JoinForum)
	g.POST("/forums/:forum_id/leave", h.LeaveForum)
}

// ForumSummary is a dashboard row.
type ForumSummary struct {
	ID        int64  `json:"id"`
	Name      string `json:"course_name"`
	PostCount int    `json:"post_count"`
}

// ListForums returns every forum for the dashboard
func (h *ForumHandler) ListForums(c echo.Context) error {
	if _, err := caller(c); err != nil {
		return err
	}

	forums, err := h.store.FetchForums(c.Request().Context())
	if err != nil {
		return respondError(c, err, nil)
	}

	out := make([]ForumSummary, 0, len(forums))
	for _, f := range forums {
		out = append(out, ForumSummary{ID: f.ID, Name: f.Name, PostCount: len(f.Posts)})
	}
	return c.JSON(http.StatusOK, echo.Map{"forums": out})
}

// ForumDetailResponse is the forum page payload. Posts and members are only
// included when the caller may view threads; non-members get a join prompt
// and restricted members a restriction notice instead.
type ForumDetailResponse struct {
	ID                int64                `json:"id"`
	Name              string               `json:"course_name"`
	RoleStatus        roles.Status         `json:"role_status"`
	JoinPrompt        bool                 `json:"join_prompt,omitempty"`
	RestrictionNotice bool                 `json:"restriction_notice,omitempty"`
	Posts             []models.PostSummary `json:"posts,omitempty"`
	Members           []models.User        `json:"members,omitempty"`
}

// GetForum retrieves one forum, resolves the caller's role for it, and
// records the visit in the recency tracker
func (h *ForumHandler) GetForum(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	forumID, err := paramID(c, "forum_id")
	if err != nil {
		return err
	}

	forum, err := h.store.FetchForum(c.Request().Context(), forumID)
	if err != nil {
		return respondError(c, err, nil)
	}
	status := roles.Resolve(user, forum)

	resp := ForumDetailResponse{
		ID:         forum.ID,
		Name:       forum.Name,
		RoleStatus: status,
	}
	if status.CanViewThreads() {
		resp.Posts = forum.Posts
		resp.Members = forum.Members
	} else {
		resp.JoinPrompt = !status.IsMember
		resp.RestrictionNotice = status.IsRestricted
	}

	// Recording the visit is best effort; a redis hiccup never fails the
	// page.
	if _, err := h.recents.Record(c.Request().Context(), user.ID, forum.ID, forum.Name); err != nil {
		c.Logger().Warnf("failed to record forum visit: %v", err)
	}

	return c.JSON(http.StatusOK, resp)
}

// JoinForum adds the caller to the forum's membership
func (h *ForumHandler) JoinForum(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	forumID, err := paramID(c, "forum_id")
	if err != nil {
		return err
	}

	forum, err := h.store.FetchForum(c.Request().Context(), forumID)
	if err != nil {
		return respondError(c, err, nil)
	}
	status := roles.Resolve(user, forum)

	if err := h.engine.Join(c.Request().Context(), user, status, forumID); err != nil {
		return respondError(c, err, &status)
	}
	return c.JSON(http.StatusOK, echo.Map{"forum_id": forumID, "joined": true})
}

// LeaveForum removes the caller from the forum's membership
func (h *ForumHandler) LeaveForum(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	forumID, err := paramID(c, "forum_id")
	if err != nil {
		return err
	}

	forum, err := h.store.FetchForum(c.Request().Context(), forumID)
	if err != nil {
		return respondError(c, err, nil)
	}
	status := roles.Resolve(user, forum)

	if err := h.engine.Leave(c.Request().Context(), user, status, forumID); err != nil {
		return respondError(c, err, &status)
	}
	return c.JSON(http.StatusOK, echo.Map{"forum_id": forumID, "joined": false})
}
