package delivery

import (
	"net/http"

	authdto "taskforge-backend/internal/auth/dto"
	"taskforge-backend/internal/auth/repository"
	"taskforge-backend/internal/auth/usecase"
	"taskforge-backend/pkg/httpx"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves the account routes: registration, login, password
// reset and account deletion, plus FCM device token registration.
type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	fcmRepo     repository.FCMTokenRepository
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, fcmRepo repository.FCMTokenRepository) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, fcmRepo: fcmRepo}
}

// POST /api/users
func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	resp, err := h.authUsecase.Register(c.Request.Context(), &req)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/auth
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &req)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/auth
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authUsecase.CurrentUser(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// PATCH /api/users
func (h *AuthHandler) UpdateAvatar(c *gin.Context) {
	var req authdto.UpdateAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	user, err := h.authUsecase.UpdateAvatar(c.Request.Context(), c.GetString("userID"), req.Avatar)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// POST /api/users/email
func (h *AuthHandler) LookupByEmail(c *gin.Context) {
	var req authdto.FindByEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	user, err := h.authUsecase.LookupByEmail(c.Request.Context(), req.Email)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// DELETE /api/users
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	if err := h.authUsecase.DeleteAccount(c.Request.Context(), c.GetString("userID")); err != nil {
		httpx.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req authdto.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	if err := h.authUsecase.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, "recovery email sent")
}

// GET /api/auth/reset/:token
func (h *AuthHandler) ValidateResetToken(c *gin.Context) {
	email, err := h.authUsecase.ValidateResetToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"username": email,
		"message":  "password reset link a-ok",
	})
}

// PUT /api/auth/updatePasswordViaEmail/:token
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req authdto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), c.Param("token"), req.Email, req.Password); err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "password updated"})
}

// POST /api/fcm/register
func (h *AuthHandler) RegisterFCMToken(c *gin.Context) {
	var req authdto.RegisterFCMTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	if err := h.fcmRepo.SaveToken(c.Request.Context(), c.GetString("userID"), req.Token, req.DeviceInfo); err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "token registered"})
}

// DELETE /api/fcm/:token
func (h *AuthHandler) UnregisterFCMToken(c *gin.Context) {
	if err := h.fcmRepo.DeleteToken(c.Request.Context(), c.Param("token")); err != nil {
		httpx.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
