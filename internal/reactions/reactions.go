// Package reactions counts and toggles per-type reactions on posts and
// comments. Counting is a pure fold over a reaction list; the authoritative
// toggle lives in the upstream store and this package only reconciles the
// locally held copy.
package reactions

import (
	"github.com/courseloop/forum-gateway/internal/models"
)

// Count returns how many reactions of the given type are in the list.
func Count(list []models.Reaction, t models.ReactionType) int {
	n := 0
	for _, r := range list {
		if r.Type == t {
			n++
		}
	}
	return n
}

// Summary maps reaction type to count. Types with zero count are omitted so
// a renderer never shows "0".
func Summary(list []models.Reaction) map[models.ReactionType]int {
	out := make(map[models.ReactionType]int)
	for _, r := range list {
		out[r.Type]++
	}
	return out
}

// HasReacted reports whether the actor holds an active reaction of the given
// type in the list. Different types held by the same actor are independent.
func HasReacted(list []models.Reaction, actorID int64, t models.ReactionType) bool {
	for _, r := range list {
		if r.ActorID == actorID && r.Type == t {
			return true
		}
	}
	return false
}

// Toggle applies one toggle to the local copy of a reaction list and
// reports whether the reaction was added. The returned slice replaces the
// old one; no other target's counts are affected. A second identical call
// restores the original list length.
func Toggle(list []models.Reaction, actorID int64, t models.ReactionType) ([]models.Reaction, bool) {
	for i, r := range list {
		if r.ActorID == actorID && r.Type == t {
			return append(list[:i:i], list[i+1:]...), false
		}
	}
	return append(list, models.Reaction{Type: t, ActorID: actorID}), true
}
