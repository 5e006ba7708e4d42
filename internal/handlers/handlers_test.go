package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/courseloop/forum-gateway/internal/models"
	"github.com/courseloop/forum-gateway/internal/recent"
	"github.com/courseloop/forum-gateway/internal/viewstate"
	"github.com/courseloop/forum-gateway/validators"
)

// fakeStore is an in-memory upstream double. Mutations record themselves so
// tests can assert which calls reached the store.
type fakeStore struct {
	forums map[int64]*models.Forum
	posts  map[int64]*models.Post

	calls      []string
	failWith   error
	toggleResp *models.ToggleReactionResponse
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		forums: make(map[int64]*models.Forum),
		posts:  make(map[int64]*models.Post),
	}
}

func (f *fakeStore) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeStore) FetchForums(ctx context.Context) ([]models.Forum, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	out := make([]models.Forum, 0, len(f.forums))
	for _, forum := range f.forums {
		out = append(out, *forum)
	}
	return out, nil
}

func (f *fakeStore) FetchForum(ctx context.Context, forumID int64) (*models.Forum, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	forum, ok := f.forums[forumID]
	if !ok {
		return nil, models.NewNotFoundError("forum not found")
	}
	copied := *forum
	return &copied, nil
}

func (f *fakeStore) FetchPost(ctx context.Context, postID int64) (*models.Post, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	post, ok := f.posts[postID]
	if !ok {
		return nil, models.NewNotFoundError("post not found")
	}
	copied := *post
	return &copied, nil
}

func (f *fakeStore) CreatePost(ctx context.Context, forumID int64, actor models.User, req models.CreatePostRequest) (*models.Post, error) {
	f.record("CreatePost")
	return &models.Post{ID: 100, ForumID: forumID, Title: req.Title, Body: req.Body, Author: actor.Username, AuthorID: actor.ID}, nil
}

func (f *fakeStore) CreateComment(ctx context.Context, postID int64, actor models.User, req models.CreateCommentRequest) (*models.Comment, error) {
	f.record("CreateComment")
	return &models.Comment{ID: 200, PostID: postID, ParentID: req.ParentID, Body: req.Body, Author: actor.Username, AuthorID: actor.ID}, nil
}

func (f *fakeStore) ToggleReaction(ctx context.Context, actor models.User, req models.ToggleReactionRequest) (*models.ToggleReactionResponse, error) {
	f.record("ToggleReaction")
	if f.toggleResp != nil {
		return f.toggleResp, nil
	}
	return &models.ToggleReactionResponse{TargetID: req.TargetID, Type: req.Type, Added: true, Count: 1}, nil
}

func (f *fakeStore) DeletePost(ctx context.Context, postID int64, actor models.User) error {
	f.record("DeletePost")
	return nil
}

func (f *fakeStore) DeleteComment(ctx context.Context, commentID int64, actor models.User) error {
	f.record("DeleteComment")
	return nil
}

func (f *fakeStore) JoinForum(ctx context.Context, forumID int64, actor models.User) error {
	f.record("JoinForum")
	return nil
}

func (f *fakeStore) LeaveForum(ctx context.Context, forumID int64, actor models.User) error {
	f.record("LeaveForum")
	return nil
}

func (f *fakeStore) AuthorizeUser(ctx context.Context, forumID, userID int64, actor models.User) error {
	f.record("AuthorizeUser")
	return nil
}

func (f *fakeStore) DeauthorizeUser(ctx context.Context, forumID, userID int64, actor models.User) error {
	f.record("DeauthorizeUser")
	return nil
}

func (f *fakeStore) RestrictUser(ctx context.Context, forumID, userID int64, actor models.User) error {
	f.record("RestrictUser")
	return nil
}

func (f *fakeStore) UnrestrictUser(ctx context.Context, forumID, userID int64, actor models.User) error {
	f.record("UnrestrictUser")
	return nil
}

func (f *fakeStore) DeleteForum(ctx context.Context, forumID int64, actor models.User) error {
	f.record("DeleteForum")
	return nil
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

func newRedisStores(t *testing.T) (*recent.RedisStore, *viewstate.RedisStore) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return recent.NewRedisStoreWithClient(client), viewstate.NewRedisStoreWithClient(client)
}

// newTestContext builds an echo context with the acting user already on it,
// the way the JWT middleware would leave it.
func newTestContext(t *testing.T, e *echo.Echo, method, target string, body any, user models.User) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user", &models.JwtCustomClaims{UserID: user.ID, Username: user.Username, IsAdmin: user.IsAdmin})
	return c, rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

// httpStatus unwraps a handler error into its response status; a nil error
// means the recorder already has the status.
func httpStatus(rec *httptest.ResponseRecorder, err error) int {
	if err == nil {
		return rec.Code
	}
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	return http.StatusInternalServerError
}
