package delivery

import (
	"net/http"

	authdelivery "taskforge-backend/internal/auth/delivery"
	"taskforge-backend/internal/profile/usecase"
	"taskforge-backend/pkg/httpx"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the profile routes.
type ProfileHandler struct {
	profileUsecase usecase.ProfileUsecase
}

func NewProfileHandler(profileUsecase usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profileUsecase: profileUsecase}
}

type updateProfileRequest struct {
	Role     string `json:"role"`
	Location string `json:"location"`
	Bio      string `json:"bio"`
}

// GET /api/profile/me
func (h *ProfileHandler) Me(c *gin.Context) {
	profile, err := h.profileUsecase.Me(c.Request.Context(), authdelivery.Caller(c))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// POST /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	profile, err := h.profileUsecase.Update(c.Request.Context(), authdelivery.Caller(c), req.Role, req.Location, req.Bio)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GET /api/profile
func (h *ProfileHandler) ListAll(c *gin.Context) {
	profiles, err := h.profileUsecase.ListAll(c.Request.Context())
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GET /api/profile/:id
func (h *ProfileHandler) GetByUserID(c *gin.Context) {
	profile, err := h.profileUsecase.GetByUserID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
