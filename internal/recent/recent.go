// Package recent maintains a user's most-recently-visited forums: an
// ordered, deduplicated list of at most three entries, most-recent first.
package recent

// Capacity is the fixed number of slots in a recency list.
const Capacity = 3

// Entry is one remembered forum.
type Entry struct {
	ForumID int64  `json:"forum_id"`
	Name    string `json:"forum_name"`
}

// List is the bounded recency list. The zero value is ready to use.
type List struct {
	Entries []Entry `json:"entries"`
}

func (l *List) index(forumID int64) int {
	for i, e := range l.Entries {
		if e.ForumID == forumID {
			return i
		}
	}
	return -1
}

// Record notes a forum visit. The most-recent entry is left alone, a visit
// to the second slot swaps it with the first, and anything else is moved or
// inserted at the front, evicting the oldest slot when full.
func (l *List) Record(forumID int64, name string) {
	switch l.index(forumID) {
	case 0:
		return
	case 1:
		l.Entries[0], l.Entries[1] = l.Entries[1], l.Entries[0]
		return
	}
	if i := l.index(forumID); i >= 0 {
		l.Entries = append(l.Entries[:i], l.Entries[i+1:]...)
	}
	l.Entries = append([]Entry{{ForumID: forumID, Name: name}}, l.Entries...)
	if len(l.Entries) > Capacity {
		l.Entries = l.Entries[:Capacity]
	}
}
