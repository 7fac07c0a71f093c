package usecase

import (
	"context"

	authdomain "taskforge-backend/internal/auth/domain"
	authRepo "taskforge-backend/internal/auth/repository"
	"taskforge-backend/internal/authz"
	profiledomain "taskforge-backend/internal/profile/domain"
	"taskforge-backend/internal/profile/repository"
	"taskforge-backend/pkg/apperr"
)

// ProfileUsecase defines the profile business logic.
type ProfileUsecase interface {
	// Me returns the caller's profile.
	Me(ctx context.Context, caller authz.Caller) (*profiledomain.Profile, error)

	// Update overwrites the non-empty fields of the caller's profile,
	// creating it if missing.
	Update(ctx context.Context, caller authz.Caller, role, location, bio string) (*profiledomain.Profile, error)

	// ListAll returns every profile joined with its user's public fields.
	ListAll(ctx context.Context) ([]*profiledomain.Populated, error)

	// GetByUserID returns one profile joined with its user's public fields.
	GetByUserID(ctx context.Context, userID string) (*profiledomain.Populated, error)
}

type profileUsecase struct {
	profileRepo repository.ProfileRepository
	userRepo    authRepo.UserRepository
}

// NewProfileUsecase creates a new instance of profileUsecase
func NewProfileUsecase(profiles repository.ProfileRepository, users authRepo.UserRepository) ProfileUsecase {
	return &profileUsecase{profileRepo: profiles, userRepo: users}
}

func (u *profileUsecase) Me(ctx context.Context, caller authz.Caller) (*profiledomain.Profile, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperr.NotFound("There is no profile for this user")
	}
	return profile, nil
}

func (u *profileUsecase) Update(ctx context.Context, caller authz.Caller, role, location, bio string) (*profiledomain.Profile, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		profile = profiledomain.New(caller.ID)
	}

	if role != "" {
		profile.Role = role
	}
	if location != "" {
		profile.Location = location
	}
	if bio != "" {
		profile.Bio = bio
	}
	if err := u.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (u *profileUsecase) ListAll(ctx context.Context) ([]*profiledomain.Populated, error) {
	profiles, err := u.profileRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.UserID)
	}
	users, err := u.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*authdomain.User, len(users))
	for _, user := range users {
		byID[user.ID] = user
	}

	populated := make([]*profiledomain.Populated, 0, len(profiles))
	for _, p := range profiles {
		entry := &profiledomain.Populated{Profile: *p}
		if user, ok := byID[p.UserID]; ok {
			entry.User = user.Public()
		}
		populated = append(populated, entry)
	}
	return populated, nil
}

func (u *profileUsecase) GetByUserID(ctx context.Context, userID string) (*profiledomain.Populated, error) {
	profile, err := u.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperr.NotFound("Profile not found")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	populated := &profiledomain.Populated{Profile: *profile}
	if user != nil {
		populated.User = user.Public()
	}
	return populated, nil
}
