package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log"
	"time"

	authdomain "taskforge-backend/internal/auth/domain"
	authdto "taskforge-backend/internal/auth/dto"
	"taskforge-backend/internal/auth/repository"
	profiledomain "taskforge-backend/internal/profile/domain"
	profileRepo "taskforge-backend/internal/profile/repository"
	projectRepo "taskforge-backend/internal/project/repository"
	"taskforge-backend/pkg/apperr"
	"taskforge-backend/pkg/config"
	"taskforge-backend/pkg/mailer"
)

const resetTokenValidity = time.Hour

// authUsecase implements AuthUsecase interface
type authUsecase struct {
	userRepo    repository.UserRepository
	fcmRepo     repository.FCMTokenRepository
	profileRepo profileRepo.ProfileRepository
	projectRepo projectRepo.ProjectRepository
	mail        mailer.Mailer
	config      *config.Config
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(
	userRepo repository.UserRepository,
	fcmRepo repository.FCMTokenRepository,
	profiles profileRepo.ProfileRepository,
	projects projectRepo.ProjectRepository,
	mail mailer.Mailer,
	cfg *config.Config,
) AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		fcmRepo:     fcmRepo,
		profileRepo: profiles,
		projectRepo: projects,
		mail:        mail,
		config:      cfg,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *authdto.RegisterRequest) (*authdto.TokenResponse, error) {
	if req.Password != req.Password2 {
		return nil, apperr.BadRequest("Please enter a matching password")
	}

	existing, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperr.BadRequest("This user already exists")
	}

	hashedPassword, err := repository.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &authdomain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashedPassword,
		IsAdmin:  req.IsAdmin,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Every account gets an empty profile alongside it.
	if err := u.profileRepo.Create(ctx, profiledomain.New(user.ID)); err != nil {
		return nil, err
	}

	return u.tokenFor(user)
}

func (u *authUsecase) Login(ctx context.Context, req *authdto.LoginRequest) (*authdto.TokenResponse, error) {
	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.Unauthorized("Invalid Credentials")
	}

	if !repository.CheckPasswordHash(req.Password, user.Password) {
		return nil, apperr.BadRequest("Invalid Credentials")
	}

	return u.tokenFor(user)
}

func (u *authUsecase) CurrentUser(ctx context.Context, userID string) (*authdomain.User, error) {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

func (u *authUsecase) UpdateAvatar(ctx context.Context, userID, avatar string) (*authdomain.User, error) {
	user, err := u.CurrentUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Avatar = avatar
	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *authUsecase) LookupByEmail(ctx context.Context, email string) (*authdomain.PublicUser, error) {
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user.Public(), nil
}

func (u *authUsecase) ForgotPassword(ctx context.Context, email string) error {
	user, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("User not found")
	}

	buf := make([]byte, 20)
	if _, err := rand.Read(buf); err != nil {
		return err
	}
	token := hex.EncodeToString(buf)

	expires := time.Now().Add(resetTokenValidity)
	user.ResetPasswordToken = token
	user.ResetPasswordExpires = &expires
	if err := u.userRepo.Update(ctx, user); err != nil {
		return err
	}

	resetURL := u.config.ResetURLBase + "/" + token
	if err := u.mail.SendPasswordReset(user.Email, resetURL); err != nil {
		// The token is already stored; the user can retry the email.
		log.Printf("[Auth] failed to send reset mail to %s: %v", user.Email, err)
	}
	return nil
}

func (u *authUsecase) ValidateResetToken(ctx context.Context, token string) (string, error) {
	user, err := u.findByValidResetToken(ctx, token)
	if err != nil {
		return "", err
	}
	return user.Email, nil
}

func (u *authUsecase) ResetPassword(ctx context.Context, token, email, password string) error {
	user, err := u.findByValidResetToken(ctx, token)
	if err != nil {
		return err
	}
	if user.Email != email {
		return apperr.BadRequest("something went wrong")
	}

	hashedPassword, err := repository.HashPassword(password)
	if err != nil {
		return err
	}
	user.Password = hashedPassword
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil
	return u.userRepo.Update(ctx, user)
}

func (u *authUsecase) findByValidResetToken(ctx context.Context, token string) (*authdomain.User, error) {
	if token == "" {
		return nil, apperr.BadRequest("Invalid token")
	}
	user, err := u.userRepo.FindByResetToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil || user.ResetPasswordExpires == nil || user.ResetPasswordExpires.Before(time.Now()) {
		return nil, apperr.BadRequest("Invalid token")
	}
	return user, nil
}

// DeleteAccount removes the user from every project it belongs to before
// deleting the account itself. Invariants preserved: no project is left
// with zero members, and a project's creator is always a current member.
func (u *authUsecase) DeleteAccount(ctx context.Context, userID string) error {
	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperr.NotFound("User not found")
	}

	projects, err := u.projectRepo.FindAll(ctx)
	if err != nil {
		return err
	}

	for _, project := range projects {
		if !project.HasMember(userID) {
			continue
		}

		remaining := project.Members[:0:0]
		for _, m := range project.Members {
			if m.UserID != userID {
				remaining = append(remaining, m)
			}
		}

		if len(remaining) == 0 {
			if err := u.projectRepo.Delete(ctx, project.ID); err != nil {
				return err
			}
			continue
		}

		project.Members = remaining
		if project.CreatorID == userID {
			successor, err := u.userRepo.FindByID(ctx, remaining[0].UserID)
			if err != nil {
				return err
			}
			if successor != nil {
				if !successor.IsAdmin {
					successor.IsAdmin = true
					if err := u.userRepo.Update(ctx, successor); err != nil {
						return err
					}
				}
				project.CreatorID = successor.ID
				project.CreatorName = successor.Name
			}
		}
		if err := u.projectRepo.Update(ctx, project); err != nil {
			return err
		}
	}

	if err := u.fcmRepo.DeleteTokensByUserID(ctx, userID); err != nil {
		return err
	}
	if err := u.profileRepo.DeleteByUserID(ctx, userID); err != nil {
		return err
	}
	return u.userRepo.Delete(ctx, userID)
}

func (u *authUsecase) tokenFor(user *authdomain.User) (*authdto.TokenResponse, error) {
	token, err := IssueToken(user.ID, user.IsAdmin, []byte(u.config.JWTSecret), u.config.JWTExpiry)
	if err != nil {
		return nil, err
	}
	return &authdto.TokenResponse{Token: token}, nil
}
