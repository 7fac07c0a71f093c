package usecase

import (
	"context"

	"taskforge-backend/internal/authz"
	projectdomain "taskforge-backend/internal/project/domain"
	projectdto "taskforge-backend/internal/project/dto"
)

// ProjectUsecase defines the project and issue business logic. Issues are
// embedded in their project document; both route families operate on that
// single store.
type ProjectUsecase interface {
	CreateProject(ctx context.Context, caller authz.Caller, req *projectdto.CreateProjectRequest) (*projectdomain.Project, error)

	// JoinProject adds the caller to the member list.
	JoinProject(ctx context.Context, caller authz.Caller, projectID string) (*projectdomain.Project, error)

	// AddMember force-adds the selected user; admin only.
	AddMember(ctx context.Context, caller authz.Caller, projectID, userID string) (*projectdomain.Project, error)

	// ListForMember returns every project the caller belongs to.
	ListForMember(ctx context.Context, caller authz.Caller) ([]*projectdomain.Project, error)

	// DeleteProject removes the project document; creator only. Nothing
	// else is cleaned up: notification references stay, readers tolerate
	// them.
	DeleteProject(ctx context.Context, caller authz.Caller, projectID string) error

	CreateIssue(ctx context.Context, caller authz.Caller, projectID string, req *projectdto.CreateIssueRequest) (*projectdomain.Project, error)
	ListIssues(ctx context.Context, caller authz.Caller, projectID string) ([]projectdomain.Issue, error)
	GetIssue(ctx context.Context, caller authz.Caller, projectID, issueID string) (*projectdomain.Issue, error)

	// ToggleIssueStatus flips ON_PROGRESS <-> COMPLETED.
	ToggleIssueStatus(ctx context.Context, caller authz.Caller, projectID, issueID string) (*projectdomain.Project, error)

	PostIssueMessage(ctx context.Context, caller authz.Caller, projectID, issueID, text string) (*projectdomain.Issue, error)
	DeleteIssue(ctx context.Context, caller authz.Caller, projectID, issueID string) error

	// CreateStandaloneIssue serves POST /api/issues/:project_id: same
	// store, no deadline, returns the created issue.
	CreateStandaloneIssue(ctx context.Context, caller authz.Caller, projectID string, req *projectdto.StandaloneIssueRequest) (*projectdomain.Issue, error)

	// SetIssueStatus locates the owning project of a bare issue id and
	// sets a free-text status.
	SetIssueStatus(ctx context.Context, caller authz.Caller, issueID, status string) (*projectdomain.Issue, error)
}
