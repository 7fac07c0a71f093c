package repository

import (
	"context"

	authdomain "taskforge-backend/internal/auth/domain"
)

// UserRepository defines data access for user documents.
type UserRepository interface {
	Create(ctx context.Context, user *authdomain.User) error
	FindByID(ctx context.Context, id string) (*authdomain.User, error)
	FindByIDs(ctx context.Context, ids []string) ([]*authdomain.User, error)
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)
	FindByResetToken(ctx context.Context, token string) (*authdomain.User, error)

	// Update persists the whole user document. It is version checked and
	// returns apperr.ErrVersionConflict when the row changed underneath.
	Update(ctx context.Context, user *authdomain.User) error

	Delete(ctx context.Context, id string) error
}

// FCMTokenRepository defines data access for push device tokens.
type FCMTokenRepository interface {
	SaveToken(ctx context.Context, userID, token, deviceInfo string) error
	GetTokensByUserID(ctx context.Context, userID string) ([]authdomain.FCMToken, error)
	DeleteToken(ctx context.Context, token string) error
	DeleteTokensByUserID(ctx context.Context, userID string) error
}
