package usecase

import (
	"context"
	"time"

	authRepo "taskforge-backend/internal/auth/repository"
	"taskforge-backend/internal/authz"
	discussiondomain "taskforge-backend/internal/discussion/domain"
	"taskforge-backend/internal/discussion/repository"
	projectdomain "taskforge-backend/internal/project/domain"
	"taskforge-backend/pkg/apperr"
)

// DiscussionUsecase defines the personal-discussion business logic.
type DiscussionUsecase interface {
	// FindOrCreate returns the one discussion between the caller and the
	// given user, creating it if none exists yet. The caller may not
	// target themself.
	FindOrCreate(ctx context.Context, caller authz.Caller, otherID string) (*discussiondomain.PersonalDiscussion, error)

	// PostMessage appends a message; participants only.
	PostMessage(ctx context.Context, caller authz.Caller, discussionID, text string) (*discussiondomain.PersonalDiscussion, error)
}

// discussionUsecase implements DiscussionUsecase interface
type discussionUsecase struct {
	discussionRepo repository.DiscussionRepository
	userRepo       authRepo.UserRepository
}

// NewDiscussionUsecase creates a new instance of discussionUsecase
func NewDiscussionUsecase(discussions repository.DiscussionRepository, users authRepo.UserRepository) DiscussionUsecase {
	return &discussionUsecase{discussionRepo: discussions, userRepo: users}
}

func (u *discussionUsecase) FindOrCreate(ctx context.Context, caller authz.Caller, otherID string) (*discussiondomain.PersonalDiscussion, error) {
	if otherID == caller.ID {
		return nil, apperr.BadRequest("Same user")
	}

	other, err := u.userRepo.FindByID(ctx, otherID)
	if err != nil {
		return nil, err
	}
	if other == nil {
		return nil, apperr.NotFound("User not found")
	}

	// The pair is unordered: the existing document may have the caller
	// on either side.
	existing, err := u.discussionRepo.FindByMember(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	for _, d := range existing {
		if d.HasParticipant(otherID) {
			return d, nil
		}
	}

	discussion := &discussiondomain.PersonalDiscussion{
		Member1: caller.ID,
		Member2: otherID,
	}
	if err := u.discussionRepo.Create(ctx, discussion); err != nil {
		return nil, err
	}
	return discussion, nil
}

func (u *discussionUsecase) PostMessage(ctx context.Context, caller authz.Caller, discussionID, text string) (*discussiondomain.PersonalDiscussion, error) {
	discussion, err := u.discussionRepo.FindByID(ctx, discussionID)
	if err != nil {
		return nil, err
	}
	if discussion == nil {
		return nil, apperr.NotFound("Discussion not found")
	}
	if d := authz.DiscussionParticipant(caller, discussion); !d.Allowed {
		return nil, apperr.Unauthorized(d.Reason)
	}

	author, err := u.userRepo.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, apperr.NotFound("User not found")
	}

	discussion.Messages = append(discussion.Messages, projectdomain.Message{
		Text:   text,
		Author: author.ID,
		Name:   author.Name,
		Avatar: author.Avatar,
		Date:   time.Now(),
	})
	if err := u.discussionRepo.Update(ctx, discussion); err != nil {
		return nil, err
	}
	return discussion, nil
}
