package repository

import (
	"context"
	"errors"

	profiledomain "taskforge-backend/internal/profile/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines data access for user profiles.
type ProfileRepository interface {
	Create(ctx context.Context, profile *profiledomain.Profile) error
	FindByUserID(ctx context.Context, userID string) (*profiledomain.Profile, error)
	FindAll(ctx context.Context) ([]*profiledomain.Profile, error)
	// Upsert creates the profile or overwrites its fields if one already
	// exists for the user.
	Upsert(ctx context.Context, profile *profiledomain.Profile) error
	DeleteByUserID(ctx context.Context, userID string) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) Create(ctx context.Context, profile *profiledomain.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID string) (*profiledomain.Profile, error) {
	var profile profiledomain.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindAll(ctx context.Context) ([]*profiledomain.Profile, error) {
	var profiles []*profiledomain.Profile
	err := r.db.WithContext(ctx).Find(&profiles).Error
	return profiles, err
}

func (r *profileRepository) Upsert(ctx context.Context, profile *profiledomain.Profile) error {
	if profile.ID == "" {
		profile.ID = uuid.New().String()
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "location", "bio"}),
	}).Create(profile).Error
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&profiledomain.Profile{}).Error
}
