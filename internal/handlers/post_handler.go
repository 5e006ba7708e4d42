package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/courseloop/forum-gateway/internal/models"
	"github.com/courseloop/forum-gateway/internal/moderation"
	"github.com/courseloop/forum-gateway/internal/reactions"
	"github.com/courseloop/forum-gateway/internal/roles"
	"github.com/courseloop/forum-gateway/internal/thread"
	"github.com/courseloop/forum-gateway/internal/upstream"
	"github.com/courseloop/forum-gateway/internal/viewstate"
)

// PostHandler handles HTTP requests related to posts and their threads
type PostHandler struct {
	store  upstream.Store
	engine *moderation.Engine
	views  *viewstate.RedisStore
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(store upstream.Store, engine *moderation.Engine, views *viewstate.RedisStore) *PostHandler {
	return &PostHandler{
		store:  store,
		engine: engine,
		views:  views,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.GET("/posts/:post_id", h.GetPost)
	g.POST("/forums/:forum_id/posts", h.CreatePost)
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.POST("/posts/:post_id/comments/:comment_id/expand", h.ExpandComments)
	g.POST("/posts/:post_id/comments/:comment_id/collapse", h.CollapseComments)
}

// PostDetailResponse is the post page payload: the post with its assembled
// reply tree, reaction summary, and the caller's role snapshot.
type PostDetailResponse struct {
	ID           int64                       `json:"id"`
	ForumID      int64                       `json:"forum_id"`
	Title        string                      `json:"title"`
	Body         string                      `json:"message"`
	Author       string                      `json:"poster"`
	IsDeleted    bool                        `json:"is_deleted"`
	CreatedAt    time.Time                   `json:"created_at"`
	Reactions    map[models.ReactionType]int `json:"reactions,omitempty"`
	RoleStatus   roles.Status                `json:"role_status"`
	CommentCount int                         `json:"comment_count"`
	Comments     []thread.View               `json:"comments"`
}

// resolveForPost computes the caller's role for the forum a post belongs
// to. When the forum id is absent or the snapshot cannot be fetched, the
// partial status still reports the global admin flag; the forum-scoped
// flags resolve on the next fetch that has context.
func (h *PostHandler) resolveForPost(c echo.Context, user models.User, post *models.Post) roles.Status {
	if post.ForumID == 0 {
		return roles.Resolve(user, nil)
	}
	forum, err := h.store.FetchForum(c.Request().Context(), post.ForumID)
	if err != nil {
		c.Logger().Warnf("failed to fetch forum %d for role resolution: %v", post.ForumID, err)
		return roles.Resolve(user, nil)
	}
	return roles.Resolve(user, forum)
}

// GetPost retrieves a post with its assembled comment tree
func (h *PostHandler) GetPost(c echo.Context) error {
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

	tree, err := thread.Build(post)
	if err != nil {
		return respondError(c, err, nil)
	}

	// Re-apply the caller's saved expansion windows on the fresh tree.
	windows, err := h.views.Windows(ctx, user.ID, postID)
	if err != nil {
		c.Logger().Warnf("failed to load view state: %v", err)
	}
	for id, visible := range windows {
		tree.SetVisible(id, visible)
	}

	status := h.resolveForPost(c, user, post)
	post.Redact()

	resp := PostDetailResponse{
		ID:           post.ID,
		ForumID:      post.ForumID,
		Title:        post.Title,
		Body:         post.Body,
		Author:       post.Author,
		IsDeleted:    post.IsDeleted,
		CreatedAt:    post.CreatedAt,
		RoleStatus:   status,
		CommentCount: tree.Len(),
		Comments:     tree.Render(),
	}
	if s := reactions.Summary(post.Reactions); len(s) > 0 {
		resp.Reactions = s
	}
	return c.JSON(http.StatusOK, resp)
}

// CreatePost creates a new post in a forum
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	forumID, err := paramID(c, "forum_id")
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	forum, err := h.store.FetchForum(ctx, forumID)
	if err != nil {
		return respondError(c, err, nil)
	}
	status := roles.Resolve(user, forum)

	post, err := h.engine.CreatePost(ctx, user, status, forumID, req)
	if err != nil {
		return respondError(c, err, &status)
	}
	return c.JSON(http.StatusCreated, post)
}

// CreateComment creates a comment on a post, optionally as a reply to an
// existing comment
func (h *PostHandler) CreateComment(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}
	postID, err := paramID(c, "post_id")
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
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

	// A reply's parent must exist in the current tree and not be deleted.
	if req.ParentID != 0 {
		parent, ok := tree.Node(req.ParentID)
		if !ok {
			return respondError(c, thread.ErrNoSuchParent, nil)
		}
		if parent.Comment.IsDeleted {
			return respondError(c, models.NewValidationError("cannot reply to a deleted comment"), nil)
		}
	}

	status := h.resolveForPost(c, user, post)
	comment, err := h.engine.CreateComment(ctx, user, status, postID, req)
	if err != nil {
		return respondError(c, err, &status)
	}

	// Insert locally so a fully open parent window auto-extends; persist the
	// widened window so the fresh reply stays visible on the next render.
	if err := tree.Insert(*comment); err == nil && comment.ParentID != 0 {
		if parent, ok := tree.Node(comment.ParentID); ok {
			if err := h.views.SetWindow(ctx, user.ID, postID, comment.ParentID, parent.Visible); err != nil {
				c.Logger().Warnf("failed to save view state: %v", err)
			}
		}
	}

	return c.JSON(http.StatusCreated, comment)
}

// windowResponse reports one node's visible-children window.
type windowResponse struct {
	CommentID       int64 `json:"comment_id"`
	VisibleChildren int   `json:"visible_children"`
	TotalChildren   int   `json:"total_children"`
}

// ExpandComments widens a comment's visible-children window by 3
func (h *PostHandler) ExpandComments(c echo.Context) error {
	return h.adjustWindow(c, func(t *thread.Tree, id int64) error {
		return t.ShowMore(id)
	})
}

// CollapseComments resets a comment's visible-children window
func (h *PostHandler) CollapseComments(c echo.Context) error {
	return h.adjustWindow(c, func(t *thread.Tree, id int64) error {
		return t.Collapse(id)
	})
}

func (h *PostHandler) adjustWindow(c echo.Context, adjust func(*thread.Tree, int64) error) error {
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

	windows, err := h.views.Windows(ctx, user.ID, postID)
	if err != nil {
		c.Logger().Warnf("failed to load view state: %v", err)
	}
	for id, visible := range windows {
		tree.SetVisible(id, visible)
	}

	if err := adjust(tree, commentID); err != nil {
		return respondError(c, err, nil)
	}

	node, _ := tree.Node(commentID)
	if err := h.views.SetWindow(ctx, user.ID, postID, commentID, node.Visible); err != nil {
		c.Logger().Warnf("failed to save view state: %v", err)
	}

	return c.JSON(http.StatusOK, windowResponse{
		CommentID:       commentID,
		VisibleChildren: node.Visible,
		TotalChildren:   node.TotalChildren(),
	})
}
