package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/courseloop/forum-gateway/internal/recent"
)

// RecentHandler handles HTTP requests for the recently-visited forums list
type RecentHandler struct {
	recents *recent.RedisStore
}

// NewRecentHandler creates a new RecentHandler
func NewRecentHandler(recents *recent.RedisStore) *RecentHandler {
	return &RecentHandler{recents: recents}
}

// RegisterRecentRoutes registers recency-related routes
func (h *RecentHandler) RegisterRecentRoutes(g *echo.Group) {
	g.GET("/recent-forums", h.GetRecentForums)
}

// GetRecentForums returns the caller's recently-visited forums, most-recent
// first
func (h *RecentHandler) GetRecentForums(c echo.Context) error {
	user, err := caller(c)
	if err != nil {
		return err
	}

	list, err := h.recents.List(c.Request().Context(), user.ID)
	if err != nil {
		return respondError(c, err, nil)
	}

	entries := list.Entries
	if entries == nil {
		entries = []recent.Entry{}
	}
	return c.JSON(http.StatusOK, echo.Map{"recent_forums": entries})
}
