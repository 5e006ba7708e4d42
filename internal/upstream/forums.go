package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/courseloop/forum-gateway/internal/models"
)

// FetchForums returns every forum's snapshot for the dashboard.
func (c *Client) FetchForums(ctx context.Context) ([]models.Forum, error) {
	var resp struct {
		Forums []models.Forum `json:"forums"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/forums", models.User{}, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Forums, nil
}

// FetchForum returns one forum's snapshot: name, post summaries, member
// list, and the authorized/restricted id lists.
func (c *Client) FetchForum(ctx context.Context, forumID int64) (*models.Forum, error) {
	var forum models.Forum
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/forums/%d", forumID), models.User{}, nil, &forum); err != nil {
		return nil, err
	}
	return &forum, nil
}

type memberChange struct {
	UserID int64 `json:"user_id"`
}

// JoinForum adds the actor to the forum's membership.
func (c *Client) JoinForum(ctx context.Context, forumID int64, actor models.User) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/forums/%d/join", forumID), actor, memberChange{UserID: actor.ID}, nil)
}

// LeaveForum removes the actor from the forum's membership.
func (c *Client) LeaveForum(ctx context.Context, forumID int64, actor models.User) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/forums/%d/leave", forumID), actor, memberChange{UserID: actor.ID}, nil)
}

// AuthorizeUser grants a member the forum's moderator role.
func (c *Client) AuthorizeUser(ctx context.Context, forumID, userID int64, actor models.User) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/forums/%d/authorize", forumID), actor, memberChange{UserID: userID}, nil)
}

// DeauthorizeUser revokes a member's moderator role.
func (c *Client) DeauthorizeUser(ctx context.Context, forumID, userID int64, actor models.User) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/forums/%d/deauthorize", forumID), actor, memberChange{UserID: userID}, nil)
}

// RestrictUser puts a member under restriction.
func (c *Client) RestrictUser(ctx context.Context, forumID, userID int64, actor models.User) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/forums/%d/restrict", forumID), actor, memberChange{UserID: userID}, nil)
}

// UnrestrictUser lifts a member's restriction.
func (c *Client) UnrestrictUser(ctx context.Context, forumID, userID int64, actor models.User) error {
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/api/forums/%d/unrestrict", forumID), actor, memberChange{UserID: userID}, nil)
}

// DeleteForum destroys a forum and all of its content. The cascade is the
// store's concern; from here it is a single terminal transition.
func (c *Client) DeleteForum(ctx context.Context, forumID int64, actor models.User) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/forums/%d", forumID), actor, nil, nil)
}
