package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/courseloop/forum-gateway/internal/models"
	"github.com/courseloop/forum-gateway/internal/reactions"
	"github.com/courseloop/forum-gateway/internal/thread"
	"github.com/courseloop/forum-gateway/internal/upstream"
)

// ReactionHandler handles HTTP requests related to reactions
type ReactionHandler struct {
	store upstream.Store
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(store upstream.Store) *ReactionHandler {
	return &ReactionHandler{store: store}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/reactions", h.ToggleReaction)
}

// ToggleReaction flips the caller's reaction of one type on one target.
// The local copy is toggled optimistically; if the store disagrees (a stale
// copy), the count is recomputed from a fresh fetch instead of trusting the
// optimistic value.
func (h *ReactionHandler) ToggleReaction(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	var req models.ToggleReactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	// Optimistic local toggle on the pre-toggle copy.
	localAdded, localCount, err := h.localToggle(ctx, user.ID, req)
	if err != nil {
		return respondError(c, err, nil)
	}

	resp, err := h.store.ToggleReaction(ctx, user, req)
	if err != nil {
		// The optimistic change is dropped with the request scope; nothing
		// stranded.
		return respondError(c, err, nil)
	}

	count := localCount
	if resp.Added != localAdded {
		// Local copy was stale; roll back to the store's view of the world.
		count, err = h.authoritativeCount(ctx, req)
		if err != nil {
			return respondError(c, err, nil)
		}
	}

	return c.JSON(http.StatusOK, models.ToggleReactionResponse{
		TargetID: req.TargetID,
		Type:     req.Type,
		Added:    resp.Added,
		Count:    count,
	})
}

// localToggle applies the toggle to the locally fetched copy, touching only
// the one affected target.
func (h *ReactionHandler) localToggle(ctx context.Context, actorID int64, req models.ToggleReactionRequest) (bool, int, error) {
	if req.TargetKind == models.TargetPost {
		post, err := h.store.FetchPost(ctx, req.TargetID)
		if err != nil {
			return false, 0, err
		}
		list, added := reactions.Toggle(post.Reactions, actorID, req.Type)
		return added, reactions.Count(list, req.Type), nil
	}

	post, err := h.store.FetchPost(ctx, req.PostID)
	if err != nil {
		return false, 0, err
	}
	tree, err := thread.Build(post)
	if err != nil {
		return false, 0, err
	}
	return tree.ToggleReaction(req.TargetID, actorID, req.Type)
}

// authoritativeCount refetches the target and counts from the canonical
// record.
func (h *ReactionHandler) authoritativeCount(ctx context.Context, req models.ToggleReactionRequest) (int, error) {
	if req.TargetKind == models.TargetPost {
		post, err := h.store.FetchPost(ctx, req.TargetID)
		if err != nil {
			return 0, err
		}
		return reactions.Count(post.Reactions, req.Type), nil
	}

	post, err := h.store.FetchPost(ctx, req.PostID)
	if err != nil {
		return 0, err
	}
	tree, err := thread.Build(post)
	if err != nil {
		return 0, err
	}
	node, ok := tree.Node(req.TargetID)
	if !ok {
		return 0, models.NewStructuralError("comment no longer present in thread")
	}
	return reactions.Count(node.Comment.Reactions, req.Type), nil
}
