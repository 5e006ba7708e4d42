package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/courseloop/forum-gateway/internal/models"
)

// FetchPost returns one post with its reactions and full comment
// collection, nested or flat as the store happens to serialize it.
func (c *Client) FetchPost(ctx context.Context, postID int64) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", postID), models.User{}, nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

type createPostBody struct {
	Title    string `json:"title"`
	Body     string `json:"message"`
	PosterID int64  `json:"poster_id"`
}

// CreatePost creates a post in a forum and returns the canonical record.
func (c *Client) CreatePost(ctx context.Context, forumID int64, actor models.User, req models.CreatePostRequest) (*models.Post, error) {
	var post models.Post
	body := createPostBody{Title: req.Title, Body: req.Body, PosterID: actor.ID}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/forums/%d/posts", forumID), actor, body, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

type createCommentBody struct {
	Body     string `json:"message"`
	ParentID int64  `json:"parent_id,omitempty"`
	PosterID int64  `json:"poster_id"`
}

// CreateComment creates a comment (or a reply when ParentID is set) and
// returns the canonical record.
func (c *Client) CreateComment(ctx context.Context, postID int64, actor models.User, req models.CreateCommentRequest) (*models.Comment, error) {
	var comment models.Comment
	body := createCommentBody{Body: req.Body, ParentID: req.ParentID, PosterID: actor.ID}
	if err := c.do(ctx, http.MethodPost, fmt.Sprintf("/api/posts/%d/comments", postID), actor, body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

type toggleReactionBody struct {
	TargetID   int64               `json:"target_id"`
	TargetKind models.TargetKind   `json:"target_kind"`
	Type       models.ReactionType `json:"reaction_type"`
	UserID     int64               `json:"user_id"`
}

// ToggleReaction flips the actor's reaction of one type on one target. The
// store resolves concurrent toggles with its own atomic counters; the
// response says whether the reaction is now present and the new count.
func (c *Client) ToggleReaction(ctx context.Context, actor models.User, req models.ToggleReactionRequest) (*models.ToggleReactionResponse, error) {
	var resp models.ToggleReactionResponse
	body := toggleReactionBody{
		TargetID:   req.TargetID,
		TargetKind: req.TargetKind,
		Type:       req.Type,
		UserID:     actor.ID,
	}
	if err := c.do(ctx, http.MethodPost, "/api/reactions", actor, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeletePost soft-deletes a post. The store treats repeat deletes as a
// no-op success.
func (c *Client) DeletePost(ctx context.Context, postID int64, actor models.User) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), actor, nil, nil)
}

// DeleteComment soft-deletes a comment without touching its children.
func (c *Client) DeleteComment(ctx context.Context, commentID int64, actor models.User) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/comments/%d", commentID), actor, nil, nil)
}
