package models

// ReactionType enumerates the reaction kinds the upstream store accepts.
type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
	ReactionHeart   ReactionType = "heart"
	ReactionFlag    ReactionType = "flag"
)

// ValidReactionType reports whether t is one of the accepted reaction kinds.
func ValidReactionType(t ReactionType) bool {
	switch t {
	case ReactionLike, ReactionDislike, ReactionHeart, ReactionFlag:
		return true
	}
	return false
}

// TargetKind says whether a reaction is attached to a post or a comment.
type TargetKind string

const (
	TargetPost    TargetKind = "post"
	TargetComment TargetKind = "comment"
)

// Reaction is one user's active reaction on one target. The upstream store
// guarantees at most one reaction per (actor, target, type) triple.
type Reaction struct {
	ID       int64        `json:"id"`
	Type     ReactionType `json:"reaction_type"`
	ActorID  int64        `json:"user_id"`
	Actor    string       `json:"user,omitempty"`
	TargetID int64        `json:"target_id,omitempty"`
	Kind     TargetKind   `json:"target_kind,omitempty"`
}

// ToggleReactionRequest defines the request body for toggling a reaction.
// PostID locates the thread when the target is a comment.
type ToggleReactionRequest struct {
	TargetID   int64        `json:"target_id" validate:"required"`
	TargetKind TargetKind   `json:"target_kind" validate:"required,oneof=post comment"`
	Type       ReactionType `json:"type" validate:"required,oneof=like dislike heart flag"`
	PostID     int64        `json:"post_id,omitempty" validate:"required_if=TargetKind comment"`
}

// ToggleReactionResponse reports the outcome of a toggle for exactly one
// target; sibling counts are untouched.
type ToggleReactionResponse struct {
	TargetID int64        `json:"target_id"`
	Type     ReactionType `json:"type"`
	Added    bool         `json:"added"`
	Count    int          `json:"count"`
}
