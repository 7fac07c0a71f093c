// Package authz consolidates the per-resource authorization predicates in
// one place. Every check is a pure function over already-loaded state and
// the caller identity, returning a typed allow/deny decision; usecases
// translate denials into client errors, never silent no-ops.
package authz

import (
	discussiondomain "taskforge-backend/internal/discussion/domain"
	projectdomain "taskforge-backend/internal/project/domain"
)

// Caller is the identity attached to a request by the auth guard.
type Caller struct {
	ID    string
	Admin bool
}

// Decision is an allow/deny outcome. Reason carries the user-facing
// message for denials.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Reason: reason}
}

// Admin permits admin-only actions: creating a project, force-adding a
// selected user to one.
func Admin(c Caller) Decision {
	if !c.Admin {
		return deny("User not authorized")
	}
	return allow()
}

// Owner permits actions on the caller's own account or resources keyed by
// the caller's id.
func Owner(c Caller, userID string) Decision {
	if c.ID != userID {
		return deny("User not authorized")
	}
	return allow()
}

// ProjectMember permits reading and creating issues in a project, posting
// issue messages and patching issue status.
func ProjectMember(c Caller, p *projectdomain.Project) Decision {
	if !p.HasMember(c.ID) {
		return deny("User is not member of the project")
	}
	return allow()
}

// ProjectCreator permits deleting a project or one of its issues.
func ProjectCreator(c Caller, p *projectdomain.Project) Decision {
	if p.CreatorID != c.ID {
		return deny("User not authorized")
	}
	return allow()
}

// DiscussionParticipant permits posting in a personal discussion.
func DiscussionParticipant(c Caller, d *discussiondomain.PersonalDiscussion) Decision {
	if !d.HasParticipant(c.ID) {
		return deny("Not authorized to post in this discussion")
	}
	return allow()
}
