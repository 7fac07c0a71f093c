package usecase

import (
	"context"
	"time"

	authRepo "taskforge-backend/internal/auth/repository"
	"taskforge-backend/internal/authz"
	projectdomain "taskforge-backend/internal/project/domain"
	projectdto "taskforge-backend/internal/project/dto"
	"taskforge-backend/internal/project/repository"
	"taskforge-backend/pkg/apperr"

	"github.com/google/uuid"
)

// projectUsecase implements ProjectUsecase interface
type projectUsecase struct {
	projectRepo repository.ProjectRepository
	userRepo    authRepo.UserRepository
}

// NewProjectUsecase creates a new instance of projectUsecase
func NewProjectUsecase(projects repository.ProjectRepository, users authRepo.UserRepository) ProjectUsecase {
	return &projectUsecase{projectRepo: projects, userRepo: users}
}

func (u *projectUsecase) CreateProject(ctx context.Context, caller authz.Caller, req *projectdto.CreateProjectRequest) (*projectdomain.Project, error) {
	if d := authz.Admin(caller); !d.Allowed {
		return nil, apperr.Unauthorized(d.Reason)
	}

	creator, err := u.userRepo.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if creator == nil {
		return nil, apperr.NotFound("User not found")
	}

	project := &projectdomain.Project{
		CreatorID:   creator.ID,
		CreatorName: creator.Name,
		Title:       req.Title,
		Description: req.Description,
		End:         req.End,
		Members: []projectdomain.Member{{
			UserID: creator.ID,
			Name:   creator.Name,
			Avatar: creator.Avatar,
		}},
	}
	if req.Start != nil {
		project.Start = *req.Start
	}

	// Invited member emails are resolved best-effort: unknown addresses
	// and duplicates are skipped.
	for _, email := range req.Members {
		invited, err := u.userRepo.FindByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if invited == nil || project.HasMember(invited.ID) {
			continue
		}
		project.Members = append(project.Members, projectdomain.Member{
			UserID: invited.ID,
			Name:   invited.Name,
			Avatar: invited.Avatar,
		})
	}

	if err := u.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (u *projectUsecase) JoinProject(ctx context.Context, caller authz.Caller, projectID string) (*projectdomain.Project, error) {
	project, err := u.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project.HasMember(caller.ID) {
		return nil, apperr.BadRequest("This user is already in the project")
	}

	user, err := u.userRepo.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}

	project.Members = append(project.Members, projectdomain.Member{
		UserID: user.ID,
		Name:   user.Name,
		Avatar: user.Avatar,
	})
	if err := u.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (u *projectUsecase) AddMember(ctx context.Context, caller authz.Caller, projectID, userID string) (*projectdomain.Project, error) {
	project, err := u.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if d := authz.Admin(caller); !d.Allowed {
		return nil, apperr.Unauthorized(d.Reason)
	}
	if project.HasMember(userID) {
		return nil, apperr.BadRequest("This user is already in the project")
	}

	selected, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if selected == nil {
		return nil, apperr.NotFound("User not found")
	}

	project.Members = append(project.Members, projectdomain.Member{
		UserID: selected.ID,
		Name:   selected.Name,
		Avatar: selected.Avatar,
	})
	if err := u.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (u *projectUsecase) ListForMember(ctx context.Context, caller authz.Caller) ([]*projectdomain.Project, error) {
	projects, err := u.projectRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	mine := make([]*projectdomain.Project, 0, len(projects))
	for _, p := range projects {
		if p.HasMember(caller.ID) {
			mine = append(mine, p)
		}
	}
	return mine, nil
}

func (u *projectUsecase) DeleteProject(ctx context.Context, caller authz.Caller, projectID string) error {
	project, err := u.loadProject(ctx, projectID)
	if err != nil {
		return err
	}
	if d := authz.ProjectCreator(caller, project); !d.Allowed {
		return apperr.Unauthorized(d.Reason)
	}
	return u.projectRepo.Delete(ctx, projectID)
}

func (u *projectUsecase) CreateIssue(ctx context.Context, caller authz.Caller, projectID string, req *projectdto.CreateIssueRequest) (*projectdomain.Project, error) {
	project, err := u.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if d := authz.ProjectMember(caller, project); !d.Allowed {
		return nil, apperr.BadRequest(d.Reason)
	}

	project.Issues = append(project.Issues, projectdomain.Issue{
		ID:           uuid.New().String(),
		Author:       caller.ID,
		Type:         req.Type,
		Summary:      req.Summary,
		Description:  req.Description,
		Status:       projectdomain.StatusOnProgress,
		CreationDate: time.Now(),
		Deadline:     req.Deadline,
	})
	if err := u.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (u *projectUsecase) ListIssues(ctx context.Context, caller authz.Caller, projectID string) ([]projectdomain.Issue, error) {
	project, err := u.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if d := authz.ProjectMember(caller, project); !d.Allowed {
		return nil, apperr.BadRequest(d.Reason)
	}
	if project.Issues == nil {
		return []projectdomain.Issue{}, nil
	}
	return project.Issues, nil
}

func (u *projectUsecase) GetIssue(ctx context.Context, caller authz.Caller, projectID, issueID string) (*projectdomain.Issue, error) {
	project, err := u.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if d := authz.ProjectMember(caller, project); !d.Allowed {
		return nil, apperr.BadRequest(d.Reason)
	}
	issue := project.FindIssue(issueID)
	if issue == nil {
		return nil, apperr.NotFound("Issue not found")
	}
	return issue, nil
}

func (u *projectUsecase) ToggleIssueStatus(ctx context.Context, caller authz.Caller, projectID, issueID string) (*projectdomain.Project, error) {
	project, err := u.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if d := authz.ProjectMember(caller, project); !d.Allowed {
		return nil, apperr.BadRequest(d.Reason)
	}
	issue := project.FindIssue(issueID)
	if issue == nil {
		return nil, apperr.NotFound("Issue not found")
	}

	if issue.Status == projectdomain.StatusOnProgress {
		issue.Status = projectdomain.StatusCompleted
	} else {
		issue.Status = projectdomain.StatusOnProgress
	}
	if err := u.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func (u *projectUsecase) PostIssueMessage(ctx context.Context, caller authz.Caller, projectID, issueID, text string) (*projectdomain.Issue, error) {
	project, err := u.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if d := authz.ProjectMember(caller, project); !d.Allowed {
		return nil, apperr.Unauthorized(d.Reason)
	}
	issue := project.FindIssue(issueID)
	if issue == nil {
		return nil, apperr.NotFound("Issue not found")
	}

	author, err := u.userRepo.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperr.NotFound("User not found")
	}

	issue.Messages = append(issue.Messages, projectdomain.Message{
		Text:   text,
		Author: author.ID,
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   time.Now(),
	})
	if err := u.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return issue, nil
}

func (u *projectUsecase) DeleteIssue(ctx context.Context, caller authz.Caller, projectID, issueID string) error {
	project, err := u.loadProject(ctx, projectID)
	if err != nil {
		return err
	}
	if d := authz.ProjectCreator(caller, project); !d.Allowed {
		return apperr.Unauthorized(d.Reason)
	}

	kept := project.Issues[:0:0]
	for _, issue := range project.Issues {
		if issue.ID != issueID {
			kept = append(kept, issue)
		}
	}
	if len(kept) == len(project.Issues) {
		return apperr.NotFound("Issue not found")
	}
	project.Issues = kept
	return u.projectRepo.Update(ctx, project)
}

func (u *projectUsecase) CreateStandaloneIssue(ctx context.Context, caller authz.Caller, projectID string, req *projectdto.StandaloneIssueRequest) (*projectdomain.Issue, error) {
	project, err := u.loadProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if d := authz.ProjectMember(caller, project); !d.Allowed {
		return nil, apperr.BadRequest(d.Reason)
	}

	issue := projectdomain.Issue{
		ID:           uuid.New().String(),
		Author:       caller.ID,
		Type:         req.Type,
		Summary:      req.Summary,
		Description:  req.Description,
		Status:       projectdomain.StatusOnProgress,
		CreationDate: time.Now(),
	}
	project.Issues = append(project.Issues, issue)
	if err := u.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return &issue, nil
}

func (u *projectUsecase) SetIssueStatus(ctx context.Context, caller authz.Caller, issueID, status string) (*projectdomain.Issue, error) {
	projects, err := u.projectRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, project := range projects {
		issue := project.FindIssue(issueID)
		if issue == nil {
			continue
		}
		if d := authz.ProjectMember(caller, project); !d.Allowed {
			return nil, apperr.BadRequest(d.Reason)
		}
		issue.Status = status
		if err := u.projectRepo.Update(ctx, project); err != nil {
			return nil, err
		}
		return issue, nil
	}
	return nil, apperr.NotFound("No issue found")
}

func (u *projectUsecase) loadProject(ctx context.Context, projectID string) (*projectdomain.Project, error) {
	project, err := u.projectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperr.NotFound("Project not found")
	}
	return project, nil
}
