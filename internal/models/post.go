package models

import "time"

// DeletedPlaceholder replaces the displayed content of soft-deleted posts
// and comments. Identity and tree position are preserved.
const DeletedPlaceholder = "[deleted]"

// Post is a discussion post fetched from the upstream store, including its
// reactions and comment records.
type Post struct {
	ID        int64      `json:"id"`
	ForumID   int64      `json:"forum_id"`
	Title     string     `json:"title"`
	Body      string     `json:"message"`
	Author    string     `json:"poster"`
	AuthorID  int64      `json:"poster_id"`
	IsDeleted bool       `json:"is_deleted"`
	CreatedAt time.Time  `json:"created_at"`
	Reactions []Reaction `json:"reactions"`
	Comments  []Comment  `json:"comments"`
}

// Redact replaces the displayed fields of a soft-deleted post. The comment
// collection and identity are untouched.
func (p *Post) Redact() {
	if !p.IsDeleted {
		return
	}
	p.Title = DeletedPlaceholder
	p.Body = DeletedPlaceholder
	p.Author = DeletedPlaceholder
}

// PostSummary is a forum-page row: no body or comment records, only counts.
type PostSummary struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"poster"`
	IsDeleted     bool   `json:"is_deleted"`
	CommentCount  int    `json:"comment_count"`
	ReactionCount int    `json:"reaction_count"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title string `json:"title" validate:"required,min=1,max=200"`
	Body  string `json:"message" validate:"required,min=1,max=5000"`
}
