package repository

import (
	"context"
	"errors"

	discussiondomain "taskforge-backend/internal/discussion/domain"
	"taskforge-backend/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiscussionRepository defines data access for personal discussions.
type DiscussionRepository interface {
	Create(ctx context.Context, discussion *discussiondomain.PersonalDiscussion) error
	FindByID(ctx context.Context, id string) (*discussiondomain.PersonalDiscussion, error)
	// FindByMember returns every discussion the user participates in,
	// regardless of which side of the pair they are on.
	FindByMember(ctx context.Context, userID string) ([]*discussiondomain.PersonalDiscussion, error)
	// Update persists the whole discussion document, version checked.
	Update(ctx context.Context, discussion *discussiondomain.PersonalDiscussion) error
}

type discussionRepository struct {
	db *gorm.DB
}

func NewDiscussionRepository(db *gorm.DB) DiscussionRepository {
	return &discussionRepository{db: db}
}

func (r *discussionRepository) Create(ctx context.Context, discussion *discussiondomain.PersonalDiscussion) error {
	discussion.ID = uuid.New().String()
	return r.db.WithContext(ctx).Create(discussion).Error
}

func (r *discussionRepository) FindByID(ctx context.Context, id string) (*discussiondomain.PersonalDiscussion, error) {
	var discussion discussiondomain.PersonalDiscussion
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&discussion).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &discussion, nil
}

func (r *discussionRepository) FindByMember(ctx context.Context, userID string) ([]*discussiondomain.PersonalDiscussion, error) {
	var discussions []*discussiondomain.PersonalDiscussion
	err := r.db.WithContext(ctx).
		Where("member1 = ? OR member2 = ?", userID, userID).
		Find(&discussions).Error
	return discussions, err
}

func (r *discussionRepository) Update(ctx context.Context, discussion *discussiondomain.PersonalDiscussion) error {
	current := discussion.Version
	discussion.Version = current + 1

	res := r.db.WithContext(ctx).Model(&discussiondomain.PersonalDiscussion{}).
		Where("id = ? AND version = ?", discussion.ID, current).
		Select("*").Omit("id").
		Updates(discussion)
	if res.Error != nil {
		discussion.Version = current
		return res.Error
	}
	if res.RowsAffected == 0 {
		discussion.Version = current
		return apperr.ErrVersionConflict
	}
	return nil
}
