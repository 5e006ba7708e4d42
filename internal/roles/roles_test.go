package roles

import (
	"testing"

	"github.com/courseloop/forum-gateway/internal/models"
)

func testForum() *models.Forum {
	return &models.Forum{
		ID:   10,
		Name: "CSCI 187",
		Members: []models.User{
			{ID: 1, Username: "alice"},
			{ID: 2, Username: "bob"},
			{ID: 3, Username: "carol"},
		},
		AuthorizedIDs: []int64{2},
		RestrictedIDs: []int64{3},
	}
}

func TestResolve(t *testing.T) {
	forum := testForum()
	cases := []struct {
		name string
		user models.User
		want Status
	}{
		{
			name: "plain member",
			user: models.User{ID: 1},
			want: Status{IsMember: true, HasForumContext: true},
		},
		{
			name: "authorized moderator",
			user: models.User{ID: 2},
			want: Status{IsMember: true, IsAuthorized: true, HasForumContext: true},
		},
		{
			name: "restricted member",
			user: models.User{ID: 3},
			want: Status{IsMember: true, IsRestricted: true, HasForumContext: true},
		},
		{
			name: "non-member",
			user: models.User{ID: 9},
			want: Status{HasForumContext: true},
		},
		{
			name: "admin non-member",
			user: models.User{ID: 9, IsAdmin: true},
			want: Status{IsAdmin: true, HasForumContext: true},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.user, forum); got != tc.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestResolveWithoutForumContext(t *testing.T) {
	// Only the global admin flag resolves; forum-scoped flags wait for
	// context.
	got := Resolve(models.User{ID: 1, IsAdmin: true}, nil)
	want := Status{IsAdmin: true}
	if got != want {
		t.Errorf("Resolve(nil forum) = %+v, want %+v", got, want)
	}
}

func TestRestrictionTakesPrecedence(t *testing.T) {
	// Both flags set at the data level: restriction wins for content
	// creation and moderation.
	s := Status{IsMember: true, IsAuthorized: true, IsRestricted: true, HasForumContext: true}
	if s.CanCreateContent() {
		t.Error("restricted user must not create content")
	}
	if s.CanModerate() {
		t.Error("restricted user must not moderate")
	}
	if s.CanViewThreads() {
		t.Error("restricted user sees a restriction notice, not threads")
	}
}

func TestPermissionChecks(t *testing.T) {
	member := Status{IsMember: true, HasForumContext: true}
	if !member.CanCreateContent() {
		t.Error("member should create content")
	}
	if member.CanModerate() {
		t.Error("plain member must not moderate")
	}

	moderator := Status{IsMember: true, IsAuthorized: true, HasForumContext: true}
	if !moderator.CanModerate() {
		t.Error("authorized moderator should moderate")
	}

	admin := Status{IsAdmin: true, HasForumContext: true}
	if !admin.CanCreateContent() || !admin.CanModerate() || !admin.CanViewThreads() {
		t.Error("admin bypasses membership checks")
	}

	nonMember := Status{HasForumContext: true}
	if nonMember.CanViewThreads() {
		t.Error("non-member gets a join prompt, not threads")
	}
}
