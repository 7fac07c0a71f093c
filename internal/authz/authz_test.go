package authz

import (
	"testing"

	discussiondomain "taskforge-backend/internal/discussion/domain"
	projectdomain "taskforge-backend/internal/project/domain"

	"github.com/stretchr/testify/assert"
)

func TestAdmin(t *testing.T) {
	assert.True(t, Admin(Caller{ID: "u1", Admin: true}).Allowed)

	d := Admin(Caller{ID: "u1"})
	assert.False(t, d.Allowed)
	assert.Equal(t, "User not authorized", d.Reason)
}

func TestOwner(t *testing.T) {
	assert.True(t, Owner(Caller{ID: "u1"}, "u1").Allowed)
	assert.False(t, Owner(Caller{ID: "u1"}, "u2").Allowed)
	// Admin does not override ownership
	assert.False(t, Owner(Caller{ID: "u1", Admin: true}, "u2").Allowed)
}

func TestProjectMember(t *testing.T) {
	project := &projectdomain.Project{
		CreatorID: "u1",
		Members: []projectdomain.Member{
			{UserID: "u1"},
			{UserID: "u2"},
		},
	}

	tests := []struct {
		name    string
		caller  Caller
		allowed bool
	}{
		{"creator is member", Caller{ID: "u1"}, true},
		{"plain member", Caller{ID: "u2"}, true},
		{"outsider", Caller{ID: "u3"}, false},
		{"admin outsider", Caller{ID: "u3", Admin: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ProjectMember(tt.caller, project)
			assert.Equal(t, tt.allowed, d.Allowed)
			if !tt.allowed {
				assert.Equal(t, "User is not member of the project", d.Reason)
			}
		})
	}
}

func TestProjectCreator(t *testing.T) {
	project := &projectdomain.Project{
		CreatorID: "u1",
		Members:   []projectdomain.Member{{UserID: "u1"}, {UserID: "u2"}},
	}

	assert.True(t, ProjectCreator(Caller{ID: "u1"}, project).Allowed)
	assert.False(t, ProjectCreator(Caller{ID: "u2"}, project).Allowed)
	assert.False(t, ProjectCreator(Caller{ID: "u2", Admin: true}, project).Allowed)
}

func TestDiscussionParticipant(t *testing.T) {
	discussion := &discussiondomain.PersonalDiscussion{Member1: "u1", Member2: "u2"}

	assert.True(t, DiscussionParticipant(Caller{ID: "u1"}, discussion).Allowed)
	assert.True(t, DiscussionParticipant(Caller{ID: "u2"}, discussion).Allowed)

	d := DiscussionParticipant(Caller{ID: "u3"}, discussion)
	assert.False(t, d.Allowed)
	assert.Equal(t, "Not authorized to post in this discussion", d.Reason)
}
