package models

import "time"

// Comment is one reply record. The upstream store returns comments either
// pre-nested (children in Comments) or flat with ParentID pointing at the
// enclosing comment; zero ParentID means top-level.
type Comment struct {
	ID        int64      `json:"id"`
	PostID    int64      `json:"post_id"`
	ParentID  int64      `json:"parent_id,omitempty"`
	Author    string     `json:"poster"`
	AuthorID  int64      `json:"poster_id"`
	Body      string     `json:"message"`
	IsDeleted bool       `json:"is_deleted"`
	CreatedAt time.Time  `json:"created_at"`
	Reactions []Reaction `json:"reactions"`
	Comments  []Comment  `json:"comments"`
}

// Redact replaces the displayed fields of a soft-deleted comment. Children
// keep their own state; deletion never cascades.
func (c *Comment) Redact() {
	if !c.IsDeleted {
		return
	}
	c.Body = DeletedPlaceholder
	c.Author = DeletedPlaceholder
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Body     string `json:"message" validate:"required,min=1,max=5000"`
	ParentID int64  `json:"parent_id,omitempty" validate:"omitempty,min=1"`
}
