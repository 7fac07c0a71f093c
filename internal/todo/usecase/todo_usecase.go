package usecase

import (
	"context"
	"time"

	"taskforge-backend/internal/authz"
	tododomain "taskforge-backend/internal/todo/domain"
	"taskforge-backend/internal/todo/repository"
	"taskforge-backend/pkg/apperr"
)

// todoUsecase implements TodoUsecase interface
type todoUsecase struct {
	todoRepo repository.TodoRepository
}

// NewTodoUsecase creates a new instance of todoUsecase
func NewTodoUsecase(todos repository.TodoRepository) TodoUsecase {
	return &todoUsecase{todoRepo: todos}
}

func (u *todoUsecase) CreateTodo(ctx context.Context, caller authz.Caller, text string, deadline *string) (*tododomain.Todo, error) {
	todo := &tododomain.Todo{
		UserID: caller.ID,
		Text:   text,
	}
	if deadline != nil && *deadline != "" {
		t, err := time.Parse(time.RFC3339, *deadline)
		if err != nil {
			return nil, apperr.BadRequest("Invalid Date")
		}
		todo.Deadline = &t
	}
	if err := u.todoRepo.Create(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (u *todoUsecase) ListTodos(ctx context.Context, caller authz.Caller) ([]*tododomain.Todo, error) {
	return u.todoRepo.FindByUserID(ctx, caller.ID)
}

func (u *todoUsecase) GetTodo(ctx context.Context, caller authz.Caller, todoID string) (*tododomain.Todo, error) {
	return u.loadOwned(ctx, caller, todoID)
}

func (u *todoUsecase) FilterTodos(ctx context.Context, caller authz.Caller, filter string) ([]*tododomain.Todo, error) {
	todos, err := u.todoRepo.FindByUserID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}
	if filter == "ALL" {
		return todos, nil
	}
	filtered := make([]*tododomain.Todo, 0, len(todos))
	for _, todo := range todos {
		if todo.Status == filter {
			filtered = append(filtered, todo)
		}
	}
	return filtered, nil
}

func (u *todoUsecase) UpdateStatus(ctx context.Context, caller authz.Caller, todoID, status string) (*tododomain.Todo, error) {
	todo, err := u.loadOwned(ctx, caller, todoID)
	if err != nil {
		return nil, err
	}
	todo.Status = status
	if err := u.todoRepo.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}

func (u *todoUsecase) DeleteTodo(ctx context.Context, caller authz.Caller, todoID string) error {
	todo, err := u.loadOwned(ctx, caller, todoID)
	if err != nil {
		return err
	}
	return u.todoRepo.Delete(ctx, todo.ID)
}

func (u *todoUsecase) loadOwned(ctx context.Context, caller authz.Caller, todoID string) (*tododomain.Todo, error) {
	todo, err := u.todoRepo.FindByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if todo == nil {
		return nil, apperr.NotFound("Todo not found")
	}
	if d := authz.Owner(caller, todo.UserID); !d.Allowed {
		return nil, apperr.Unauthorized(d.Reason)
	}
	return todo, nil
}
