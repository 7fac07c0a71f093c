package repository

import (
	"context"
	"errors"
	"time"

	tododomain "taskforge-backend/internal/todo/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TodoRepository defines data access for personal todos.
type TodoRepository interface {
	Create(ctx context.Context, todo *tododomain.Todo) error
	FindByID(ctx context.Context, id string) (*tododomain.Todo, error)
	FindByUserID(ctx context.Context, userID string) ([]*tododomain.Todo, error)
	Update(ctx context.Context, todo *tododomain.Todo) error
	Delete(ctx context.Context, id string) error
}

type todoRepository struct {
	db *gorm.DB
}

func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &todoRepository{db: db}
}

func (r *todoRepository) Create(ctx context.Context, todo *tododomain.Todo) error {
	todo.ID = uuid.New().String()
	if todo.Status == "" {
		todo.Status = tododomain.StatusActive
	}
	todo.CreatedAt = time.Now()
	todo.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(todo).Error
}

func (r *todoRepository) FindByID(ctx context.Context, id string) (*tododomain.Todo, error) {
	var todo tododomain.Todo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&todo).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &todo, nil
}

func (r *todoRepository) FindByUserID(ctx context.Context, userID string) ([]*tododomain.Todo, error) {
	var todos []*tododomain.Todo
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&todos).Error
	return todos, err
}

func (r *todoRepository) Update(ctx context.Context, todo *tododomain.Todo) error {
	todo.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(todo).Error
}

func (r *todoRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&tododomain.Todo{}, "id = ?", id).Error
}
