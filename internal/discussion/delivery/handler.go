package delivery

import (
	"net/http"

	authdelivery "taskforge-backend/internal/auth/delivery"
	"taskforge-backend/internal/discussion/usecase"
	projectdto "taskforge-backend/internal/project/dto"
	"taskforge-backend/pkg/httpx"

	"github.com/gin-gonic/gin"
)

// DiscussionHandler serves the personal discussion routes.
type DiscussionHandler struct {
	discussionUsecase usecase.DiscussionUsecase
}

func NewDiscussionHandler(discussionUsecase usecase.DiscussionUsecase) *DiscussionHandler {
	return &DiscussionHandler{discussionUsecase: discussionUsecase}
}

// POST /api/discussion/:id
func (h *DiscussionHandler) FindOrCreate(c *gin.Context) {
	discussion, err := h.discussionUsecase.FindOrCreate(c.Request.Context(), authdelivery.Caller(c), c.Param("id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, discussion)
}

// POST /api/discussion/message/:id
func (h *DiscussionHandler) PostMessage(c *gin.Context) {
	var req projectdto.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	discussion, err := h.discussionUsecase.PostMessage(c.Request.Context(), authdelivery.Caller(c), c.Param("id"), req.Text)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, discussion)
}
