package thread

import (
	"time"

	"github.com/courseloop/forum-gateway/internal/models"
	"github.com/courseloop/forum-gateway/internal/reactions"
)

// View is the rendered form of one comment node: redacted when deleted,
// reaction counts summarized, and only the visible window of children
// included. UI-only window state lives beside the data, never inside it.
type View struct {
	ID              int64                          `json:"id"`
	Author          string                         `json:"poster"`
	Body            string                         `json:"message"`
	IsDeleted       bool                           `json:"is_deleted"`
	CreatedAt       time.Time                      `json:"created_at"`
	Reactions       map[models.ReactionType]int    `json:"reactions,omitempty"`
	TotalChildren   int                            `json:"total_children"`
	VisibleChildren int                            `json:"visible_children"`
	Children        []View                         `json:"children,omitempty"`
}

// Render produces the nested view of the whole thread, honoring each node's
// visible-children window.
func (t *Tree) Render() []View {
	return t.renderIDs(t.roots, len(t.roots))
}

func (t *Tree) renderIDs(ids []int64, visible int) []View {
	if visible > len(ids) {
		visible = len(ids)
	}
	out := make([]View, 0, visible)
	for _, id := range ids[:visible] {
		n := t.nodes[id]
		c := n.Comment
		c.Redact()
		v := View{
			ID:              c.ID,
			Author:          c.Author,
			Body:            c.Body,
			IsDeleted:       c.IsDeleted,
			CreatedAt:       c.CreatedAt,
			TotalChildren:   len(n.Children),
			VisibleChildren: n.Visible,
			Children:        t.renderIDs(n.Children, n.Visible),
		}
		if s := reactions.Summary(c.Reactions); len(s) > 0 {
			v.Reactions = s
		}
		out = append(out, v)
	}
	return out
}
