// Package upstream is the typed REST client for the external forum store.
// The gateway never owns persistence; every mutation is executed by the
// store and the authoritative entity comes back in the response.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/courseloop/forum-gateway/internal/models"
)

// Store is the part of the upstream API the gateway consumes. Handlers and
// the moderation engine depend on this interface so tests can stand up an
// httptest server behind a real Client.
type Store interface {
	FetchForums(ctx context.Context) ([]models.Forum, error)
	FetchForum(ctx context.Context, forumID int64) (*models.Forum, error)
	FetchPost(ctx context.Context, postID int64) (*models.Post, error)

	CreatePost(ctx context.Context, forumID int64, actor models.User, req models.CreatePostRequest) (*models.Post, error)
	CreateComment(ctx context.Context, postID int64, actor models.User, req models.CreateCommentRequest) (*models.Comment, error)
	ToggleReaction(ctx context.Context, actor models.User, req models.ToggleReactionRequest) (*models.ToggleReactionResponse, error)

	DeletePost(ctx context.Context, postID int64, actor models.User) error
	DeleteComment(ctx context.Context, commentID int64, actor models.User) error

	JoinForum(ctx context.Context, forumID int64, actor models.User) error
	LeaveForum(ctx context.Context, forumID int64, actor models.User) error
	AuthorizeUser(ctx context.Context, forumID, userID int64, actor models.User) error
	DeauthorizeUser(ctx context.Context, forumID, userID int64, actor models.User) error
	RestrictUser(ctx context.Context, forumID, userID int64, actor models.User) error
	UnrestrictUser(ctx context.Context, forumID, userID int64, actor models.User) error
	DeleteForum(ctx context.Context, forumID int64, actor models.User) error
}

// Client implements Store over HTTP.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// New creates a Client. timeout bounds every request; cancellation beyond
// that is the caller's context.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// errorBody is the store's machine-readable failure envelope.
type errorBody struct {
	Error string `json:"error"`
}

// do executes one request and decodes a 2xx response into out (when out is
// non-nil). Failures are classified per the gateway error taxonomy:
// network-level problems are retryable transport errors, store-reported
// denials keep their message verbatim.
func (c *Client) do(ctx context.Context, method, path string, actor models.User, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if actor.ID != 0 {
		req.Header.Set("X-Acting-User", fmt.Sprintf("%d", actor.ID))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Timeouts and connection failures look the same to the caller: a
		// retryable transport error.
		c.logger.Warn("upstream request failed", "method", method, "path", path, "error", err)
		return models.NewTransportError("the forum service did not respond, please try again")
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return models.NewTransportError("unreadable response from the forum service")
		}
		return nil
	}

	var eb errorBody
	msg := http.StatusText(resp.StatusCode)
	if err := json.NewDecoder(resp.Body).Decode(&eb); err == nil && eb.Error != "" {
		msg = eb.Error
	}
	return classify(resp.StatusCode, msg)
}

// classify maps an upstream HTTP status onto the gateway error taxonomy.
func classify(status int, msg string) *models.AppError {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return models.NewAuthorizationError(msg)
	case status == http.StatusNotFound:
		return models.NewNotFoundError(msg)
	case status >= 400 && status < 500:
		return models.NewValidationError(msg)
	default:
		return models.NewTransportError(msg)
	}
}
