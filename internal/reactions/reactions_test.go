package reactions

import (
	"testing"

	"github.com/courseloop/forum-gateway/internal/models"
)

func TestCount(t *testing.T) {
	list := []models.Reaction{
		{Type: models.ReactionLike, ActorID: 1},
		{Type: models.ReactionLike, ActorID: 2},
		{Type: models.ReactionFlag, ActorID: 1},
	}
	if got := Count(list, models.ReactionLike); got != 2 {
		t.Errorf("expected 2 likes, got %d", got)
	}
	if got := Count(list, models.ReactionHeart); got != 0 {
		t.Errorf("expected 0 hearts, got %d", got)
	}
}

func TestSummaryOmitsZeroCounts(t *testing.T) {
	list := []models.Reaction{
		{Type: models.ReactionLike, ActorID: 1},
		{Type: models.ReactionDislike, ActorID: 2},
	}
	s := Summary(list)
	if len(s) != 2 {
		t.Fatalf("expected 2 entries, got %v", s)
	}
	if _, ok := s[models.ReactionHeart]; ok {
		t.Error("zero-count type must not appear in summary")
	}
	if s[models.ReactionLike] != 1 || s[models.ReactionDislike] != 1 {
		t.Errorf("unexpected summary: %v", s)
	}
}

func TestToggleIsInvolution(t *testing.T) {
	var list []models.Reaction
	before := Count(list, models.ReactionLike)

	list, added := Toggle(list, 7, models.ReactionLike)
	if !added {
		t.Fatal("first toggle should add")
	}
	if Count(list, models.ReactionLike) != before+1 {
		t.Fatalf("expected count %d, got %d", before+1, Count(list, models.ReactionLike))
	}

	list, added = Toggle(list, 7, models.ReactionLike)
	if added {
		t.Fatal("second toggle should remove")
	}
	if Count(list, models.ReactionLike) != before {
		t.Fatalf("expected count restored to %d, got %d", before, Count(list, models.ReactionLike))
	}
	if HasReacted(list, 7, models.ReactionLike) {
		t.Error("membership not restored after double toggle")
	}
}

func TestToggleTypesAreIndependent(t *testing.T) {
	// Like on P (0 -> 1), then flag on P (0 -> 1, like stays 1), then like
	// again (1 -> 0, flag stays 1).
	var list []models.Reaction

	list, _ = Toggle(list, 7, models.ReactionLike)
	if Count(list, models.ReactionLike) != 1 {
		t.Fatalf("like count: %d", Count(list, models.ReactionLike))
	}

	list, added := Toggle(list, 7, models.ReactionFlag)
	if !added || Count(list, models.ReactionFlag) != 1 {
		t.Fatalf("flag toggle: added=%v count=%d", added, Count(list, models.ReactionFlag))
	}
	if Count(list, models.ReactionLike) != 1 {
		t.Fatalf("like count changed by flag toggle: %d", Count(list, models.ReactionLike))
	}

	list, added = Toggle(list, 7, models.ReactionLike)
	if added || Count(list, models.ReactionLike) != 0 {
		t.Fatalf("like re-toggle: added=%v count=%d", added, Count(list, models.ReactionLike))
	}
	if Count(list, models.ReactionFlag) != 1 {
		t.Fatalf("flag count changed by like toggle: %d", Count(list, models.ReactionFlag))
	}
}

func TestToggleNeverDuplicatesPerActor(t *testing.T) {
	var list []models.Reaction
	list, _ = Toggle(list, 7, models.ReactionLike)
	list, added := Toggle(list, 7, models.ReactionLike)
	if added {
		t.Fatal("repeat toggle must remove, not accumulate")
	}
	list, _ = Toggle(list, 7, models.ReactionLike)
	if Count(list, models.ReactionLike) != 1 {
		t.Fatalf("expected single like, got %d", Count(list, models.ReactionLike))
	}
}

func TestHasReacted(t *testing.T) {
	list := []models.Reaction{{Type: models.ReactionHeart, ActorID: 3}}
	if !HasReacted(list, 3, models.ReactionHeart) {
		t.Error("expected reaction present")
	}
	if HasReacted(list, 3, models.ReactionLike) {
		t.Error("different type must not match")
	}
	if HasReacted(list, 4, models.ReactionHeart) {
		t.Error("different actor must not match")
	}
}
