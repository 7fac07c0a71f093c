package usecase

import (
	"context"

	authdomain "taskforge-backend/internal/auth/domain"
	authdto "taskforge-backend/internal/auth/dto"
)

// AuthUsecase defines the account business logic.
type AuthUsecase interface {
	// Register creates the user and its profile and returns a session token.
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.TokenResponse, error)

	// Login checks credentials and returns a session token.
	Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.TokenResponse, error)

	// CurrentUser returns the caller's account.
	CurrentUser(ctx context.Context, userID string) (*authdomain.User, error)

	// UpdateAvatar replaces the caller's avatar.
	UpdateAvatar(ctx context.Context, userID, avatar string) (*authdomain.User, error)

	// LookupByEmail finds another account for inviting, without its
	// password hash or admin flag.
	LookupByEmail(ctx context.Context, email string) (*authdomain.PublicUser, error)

	// ForgotPassword stores a reset token on the account and mails a link.
	ForgotPassword(ctx context.Context, email string) error

	// ValidateResetToken checks an emailed token and returns the account
	// email it belongs to.
	ValidateResetToken(ctx context.Context, token string) (string, error)

	// ResetPassword consumes a reset token and sets a new password.
	ResetPassword(ctx context.Context, token, email, password string) error

	// DeleteAccount removes the user, cascading through project
	// memberships, the profile and registered device tokens.
	DeleteAccount(ctx context.Context, userID string) error
}
