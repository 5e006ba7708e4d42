package handlers

import (
	"net/http"
	"testing"

	"github.com/courseloop/forum-gateway/internal/models"
)

func TestToggleReactionOnPost(t *testing.T) {
	store := newFakeStore()
	store.posts[10] = threadedPost()
	h := NewReactionHandler(store)
	e := newTestEcho()

	req := models.ToggleReactionRequest{TargetID: 10, TargetKind: models.TargetPost, Type: models.ReactionLike}
	c, rec := newTestContext(t, e, http.MethodPost, "/", req, models.User{ID: 5, Username: "dana"})
	if err := h.ToggleReaction(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body models.ToggleReactionResponse
	decodeBody(t, rec, &body)
	if !body.Added || body.Count != 1 || body.TargetID != 10 {
		t.Fatalf("unexpected response %+v", body)
	}
}

func TestToggleReactionOnComment(t *testing.T) {
	store := newFakeStore()
	store.posts[10] = threadedPost()
	h := NewReactionHandler(store)
	e := newTestEcho()

	req := models.ToggleReactionRequest{TargetID: 2, TargetKind: models.TargetComment, Type: models.ReactionHeart, PostID: 10}
	c, rec := newTestContext(t, e, http.MethodPost, "/", req, models.User{ID: 5, Username: "dana"})
	if err := h.ToggleReaction(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body models.ToggleReactionResponse
	decodeBody(t, rec, &body)
	if !body.Added || body.TargetID != 2 {
		t.Fatalf("unexpected response %+v", body)
	}
}

func TestToggleReactionStaleCopyRollsBack(t *testing.T) {
	store := newFakeStore()
	post := threadedPost()
	// The local copy already shows the actor's like, so the optimistic
	// toggle removes it. The store says it added one instead; the handler
	// must fall back to the store's view.
	post.Reactions = []models.Reaction{{ID: 1, Type: models.ReactionLike, ActorID: 5}}
	store.posts[10] = post
	store.toggleResp = &models.ToggleReactionResponse{TargetID: 10, Type: models.ReactionLike, Added: true, Count: 1}
	h := NewReactionHandler(store)
	e := newTestEcho()

	req := models.ToggleReactionRequest{TargetID: 10, TargetKind: models.TargetPost, Type: models.ReactionLike}
	c, rec := newTestContext(t, e, http.MethodPost, "/", req, models.User{ID: 5, Username: "dana"})
	if err := h.ToggleReaction(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body models.ToggleReactionResponse
	decodeBody(t, rec, &body)
	if !body.Added {
		t.Fatal("store outcome must win over the optimistic toggle")
	}
	if body.Count != 1 {
		t.Fatalf("count = %d, want authoritative 1", body.Count)
	}
}

func TestToggleReactionCommentRequiresPostID(t *testing.T) {
	store := newFakeStore()
	h := NewReactionHandler(store)
	e := newTestEcho()

	req := map[string]any{"target_id": 2, "target_kind": "comment", "type": "like"}
	c, rec := newTestContext(t, e, http.MethodPost, "/", req, models.User{ID: 5})
	err := h.ToggleReaction(c)
	if httpStatus(rec, err) != http.StatusBadRequest {
		t.Fatalf("status = %d", httpStatus(rec, err))
	}
	if len(store.calls) != 0 {
		t.Fatalf("no upstream call expected, got %v", store.calls)
	}
}

func TestToggleReactionInvalidType(t *testing.T) {
	store := newFakeStore()
	h := NewReactionHandler(store)
	e := newTestEcho()

	req := map[string]any{"target_id": 10, "target_kind": "post", "type": "sparkle"}
	c, rec := newTestContext(t, e, http.MethodPost, "/", req, models.User{ID: 5})
	err := h.ToggleReaction(c)
	if httpStatus(rec, err) != http.StatusBadRequest {
		t.Fatalf("status = %d", httpStatus(rec, err))
	}
}
