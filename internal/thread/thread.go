// Package thread reconstructs the ordered reply tree of a post from the
// comment records the upstream store returns. Records may arrive pre-nested
// or flat with a parent pointer. The tree is held as an arena of flat nodes
// keyed by comment id, so lookup is O(1) and inserting a reply touches only
// the path to its parent.
package thread

import (
	"errors"
	"fmt"
	"sort"

	"github.com/courseloop/forum-gateway/internal/models"
	"github.com/courseloop/forum-gateway/internal/reactions"
)

// defaultVisible is the initial "visible children" window per node.
const defaultVisible = 3

var (
	// ErrNoSuchParent means a reply references a parent that is not in the
	// current tree, usually because the local copy is stale. The caller
	// should refetch the whole thread.
	ErrNoSuchParent = errors.New("no such parent comment")

	// ErrMissingID means a comment record arrived without an identifier.
	ErrMissingID = errors.New("comment record missing identifier")

	// ErrDuplicateID means two records claim the same identifier.
	ErrDuplicateID = errors.New("duplicate comment identifier")

	// ErrCycle means the parent chain of the input records is cyclic.
	ErrCycle = errors.New("cyclic parent chain")
)

// Node is one comment in the arena. Children holds ordered child ids;
// Visible is how many of them the view currently shows.
type Node struct {
	Comment  models.Comment
	Children []int64
	Visible  int
}

// TotalChildren returns the number of direct replies.
func (n *Node) TotalChildren() int {
	return len(n.Children)
}

// Tree is the assembled reply tree for one post.
type Tree struct {
	postID int64
	roots  []int64
	nodes  map[int64]*Node
}

// Build assembles the tree from a post's comment collection. Nested children
// are flattened; explicit parent pointers win over nesting. Malformed input
// (missing ids, duplicates, orphaned parents, cycles) is rejected rather
// than silently dropped.
func Build(post *models.Post) (*Tree, error) {
	t := &Tree{
		postID: post.ID,
		nodes:  make(map[int64]*Node),
	}

	var flat []models.Comment
	if err := flatten(post.Comments, 0, &flat); err != nil {
		return nil, err
	}

	for _, c := range flat {
		if c.ID == 0 {
			return nil, ErrMissingID
		}
		if _, ok := t.nodes[c.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, c.ID)
		}
		// children are re-linked below, the arena node holds no nesting
		c.Comments = nil
		t.nodes[c.ID] = &Node{Comment: c}
	}

	for _, c := range flat {
		if c.ParentID == 0 {
			t.roots = append(t.roots, c.ID)
			continue
		}
		parent, ok := t.nodes[c.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: comment %d references parent %d", ErrNoSuchParent, c.ID, c.ParentID)
		}
		parent.Children = append(parent.Children, c.ID)
	}

	// Every node must be reachable from a root; leftovers sit on a cycle.
	if err := t.checkReachable(); err != nil {
		return nil, err
	}

	t.sortByCreation(t.roots)
	for _, n := range t.nodes {
		t.sortByCreation(n.Children)
		n.Visible = minInt(defaultVisible, len(n.Children))
	}
	return t, nil
}

// flatten walks pre-nested records depth-first, assigning the enclosing
// record as parent wherever an explicit parent pointer is absent.
func flatten(comments []models.Comment, parentID int64, out *[]models.Comment) error {
	for _, c := range comments {
		if c.ParentID == 0 {
			c.ParentID = parentID
		}
		if c.ID != 0 && c.ParentID == c.ID {
			return fmt.Errorf("%w: comment %d is its own parent", ErrCycle, c.ID)
		}
		children := c.Comments
		*out = append(*out, c)
		if err := flatten(children, c.ID, out); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tree) checkReachable() error {
	seen := make(map[int64]bool, len(t.nodes))
	stack := append([]int64(nil), t.roots...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if seen[id] {
			continue
		}
		seen[id] = true
		stack = append(stack, t.nodes[id].Children...)
	}
	if len(seen) != len(t.nodes) {
		return ErrCycle
	}
	return nil
}

func (t *Tree) sortByCreation(ids []int64) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, b := t.nodes[ids[i]].Comment, t.nodes[ids[j]].Comment
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// Node returns the arena node for a comment id.
func (t *Tree) Node(id int64) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Roots returns the ordered top-level comment ids.
func (t *Tree) Roots() []int64 {
	return t.roots
}

// Len returns the number of comments in the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// ShowMore widens a node's visible-children window by 3, capped at the
// total child count.
func (t *Tree) ShowMore(id int64) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoSuchParent, id)
	}
	n.Visible = minInt(n.Visible+defaultVisible, len(n.Children))
	return nil
}

// Collapse resets a node's window back to the default.
func (t *Tree) Collapse(id int64) error {
	n, ok := t.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoSuchParent, id)
	}
	n.Visible = minInt(defaultVisible, len(n.Children))
	return nil
}

// SetVisible restores a previously saved window, clamped so the invariant
// min(3,total) <= visible <= total always holds.
func (t *Tree) SetVisible(id int64, visible int) {
	n, ok := t.nodes[id]
	if !ok {
		return
	}
	total := len(n.Children)
	if visible > total {
		visible = total
	}
	if floor := minInt(defaultVisible, total); visible < floor {
		visible = floor
	}
	n.Visible = visible
}

// Insert appends a freshly created reply under its parent (or at top level
// when ParentID is zero). If the parent's window already covered all prior
// children it is extended by one, so a new reply is never hidden behind a
// "load more" control.
func (t *Tree) Insert(c models.Comment) error {
	if c.ID == 0 {
		return ErrMissingID
	}
	if _, ok := t.nodes[c.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, c.ID)
	}
	c.Comments = nil
	node := &Node{Comment: c}

	if c.ParentID == 0 {
		t.nodes[c.ID] = node
		t.roots = append(t.roots, c.ID)
		return nil
	}
	parent, ok := t.nodes[c.ParentID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoSuchParent, c.ParentID)
	}
	fullyOpen := parent.Visible == len(parent.Children)
	t.nodes[c.ID] = node
	parent.Children = append(parent.Children, c.ID)
	if fullyOpen {
		parent.Visible = len(parent.Children)
	} else if parent.Visible < defaultVisible {
		parent.Visible = minInt(defaultVisible, len(parent.Children))
	}
	return nil
}

// ToggleReaction reconciles one toggle on the local copy of a single node,
// leaving every sibling untouched. It reports whether the reaction is now
// present and the node's new count for that type.
func (t *Tree) ToggleReaction(id, actorID int64, rt models.ReactionType) (added bool, count int, err error) {
	n, ok := t.nodes[id]
	if !ok {
		return false, 0, fmt.Errorf("%w: %d", ErrNoSuchParent, id)
	}
	n.Comment.Reactions, added = reactions.Toggle(n.Comment.Reactions, actorID, rt)
	return added, reactions.Count(n.Comment.Reactions, rt), nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
