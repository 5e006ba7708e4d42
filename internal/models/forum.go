package models

// Forum is a snapshot of one forum from the upstream store. The gateway
// never owns this data; membership can change between fetches, so a
// snapshot is only trusted for the request that fetched it.
type Forum struct {
	ID            int64         `json:"id"`
	Name          string        `json:"course_name"`
	Members       []User        `json:"users"`
	AuthorizedIDs []int64       `json:"authorized_ids"`
	RestrictedIDs []int64       `json:"restricted_ids"`
	Posts         []PostSummary `json:"posts"`
}

// MemberActionRequest defines the request body for role grants and
// restrictions targeting another member.
type MemberActionRequest struct {
	UserID int64 `json:"user_id" validate:"required,min=1"`
}

// HasMember reports whether userID appears in the membership snapshot.
func (f *Forum) HasMember(userID int64) bool {
	for _, u := range f.Members {
		if u.ID == userID {
			return true
		}
	}
	return false
}
