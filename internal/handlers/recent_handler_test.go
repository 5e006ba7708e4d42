package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/courseloop/forum-gateway/internal/models"
	"github.com/courseloop/forum-gateway/internal/recent"
)

func TestGetRecentForumsEmpty(t *testing.T) {
	recents, _ := newRedisStores(t)
	h := NewRecentHandler(recents)
	e := newTestEcho()

	c, rec := newTestContext(t, e, http.MethodGet, "/", nil, models.User{ID: 5})
	if err := h.GetRecentForums(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		RecentForums []recent.Entry `json:"recent_forums"`
	}
	decodeBody(t, rec, &body)
	if body.RecentForums == nil || len(body.RecentForums) != 0 {
		t.Fatalf("expected empty array, got %q", rec.Body.String())
	}
}

func TestGetRecentForumsMostRecentFirst(t *testing.T) {
	recents, _ := newRedisStores(t)
	ctx := context.Background()
	for _, v := range []struct {
		id   int64
		name string
	}{{1, "Algorithms"}, {2, "Databases"}, {3, "Compilers"}, {1, "Algorithms"}} {
		if _, err := recents.Record(ctx, 5, v.id, v.name); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	h := NewRecentHandler(recents)
	e := newTestEcho()

	c, rec := newTestContext(t, e, http.MethodGet, "/", nil, models.User{ID: 5})
	if err := h.GetRecentForums(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body struct {
		RecentForums []recent.Entry `json:"recent_forums"`
	}
	decodeBody(t, rec, &body)
	if len(body.RecentForums) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(body.RecentForums))
	}
	if body.RecentForums[0].ForumID != 1 || body.RecentForums[1].ForumID != 3 {
		t.Fatalf("unexpected order %+v", body.RecentForums)
	}
}
