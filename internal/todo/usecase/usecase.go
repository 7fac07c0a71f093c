package usecase

import (
	"context"

	"taskforge-backend/internal/authz"
	tododomain "taskforge-backend/internal/todo/domain"
)

// TodoUsecase defines the personal-todo business logic.
type TodoUsecase interface {
	// CreateTodo creates a todo for the caller. Deadline is an optional
	// RFC 3339 timestamp; an unparsable value is rejected.
	CreateTodo(ctx context.Context, caller authz.Caller, text string, deadline *string) (*tododomain.Todo, error)

	ListTodos(ctx context.Context, caller authz.Caller) ([]*tododomain.Todo, error)
	GetTodo(ctx context.Context, caller authz.Caller, todoID string) (*tododomain.Todo, error)

	// FilterTodos returns the caller's todos with the given status, or all
	// of them for the filter "ALL".
	FilterTodos(ctx context.Context, caller authz.Caller, filter string) ([]*tododomain.Todo, error)

	UpdateStatus(ctx context.Context, caller authz.Caller, todoID, status string) (*tododomain.Todo, error)
	DeleteTodo(ctx context.Context, caller authz.Caller, todoID string) error
}
