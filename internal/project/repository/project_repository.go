package repository

import (
	"context"
	"errors"
	"time"

	projectdomain "taskforge-backend/internal/project/domain"
	"taskforge-backend/pkg/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProjectRepository defines data access for project documents.
type ProjectRepository interface {
	Create(ctx context.Context, project *projectdomain.Project) error
	FindByID(ctx context.Context, id string) (*projectdomain.Project, error)
	FindAll(ctx context.Context) ([]*projectdomain.Project, error)
	// Update persists the whole project document, version checked.
	Update(ctx context.Context, project *projectdomain.Project) error
	Delete(ctx context.Context, id string) error
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *projectdomain.Project) error {
	project.ID = uuid.New().String()
	if project.Start.IsZero() {
		project.Start = time.Now()
	}
	project.CreatedAt = time.Now()
	project.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id string) (*projectdomain.Project, error) {
	var project projectdomain.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindAll(ctx context.Context) ([]*projectdomain.Project, error) {
	var projects []*projectdomain.Project
	err := r.db.WithContext(ctx).Find(&projects).Error
	return projects, err
}

func (r *projectRepository) Update(ctx context.Context, project *projectdomain.Project) error {
	current := project.Version
	project.Version = current + 1
	project.UpdatedAt = time.Now()

	res := r.db.WithContext(ctx).Model(&projectdomain.Project{}).
		Where("id = ? AND version = ?", project.ID, current).
		Select("*").Omit("id", "created_at").
		Updates(project)
	if res.Error != nil {
		project.Version = current
		return res.Error
	}
	if res.RowsAffected == 0 {
		project.Version = current
		return apperr.ErrVersionConflict
	}
	return nil
}

func (r *projectRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&projectdomain.Project{}, "id = ?", id).Error
}
