package delivery

import (
	"net/http"

	authdelivery "taskforge-backend/internal/auth/delivery"
	authdomain "taskforge-backend/internal/auth/domain"
	"taskforge-backend/internal/notification"
	"taskforge-backend/pkg/httpx"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the notification inbox and fan-out routes.
type NotificationHandler struct {
	service *notification.Service
}

func NewNotificationHandler(service *notification.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type notifyRequest struct {
	Text           string `json:"text" binding:"required"`
	Type           string `json:"type" binding:"required"`
	Project        string `json:"project"`
	Issue          string `json:"issue"`
	DiscussionWith string `json:"discussionWith"`
}

type notifyProjectRequest struct {
	Text  string `json:"text" binding:"required"`
	Type  string `json:"type" binding:"required"`
	Issue string `json:"issue" binding:"required"`
}

func (r notifyRequest) notification() authdomain.Notification {
	return authdomain.Notification{
		Text:           r.Text,
		Type:           r.Type,
		Project:        r.Project,
		Issue:          r.Issue,
		DiscussionWith: r.DiscussionWith,
	}
}

// POST /api/users/notifications
func (h *NotificationHandler) NotifySelf(c *gin.Context) {
	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	caller := authdelivery.Caller(c)
	n, err := h.service.Deliver(c.Request.Context(), caller.ID, req.notification())
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// POST /api/users/notifications/:id
func (h *NotificationHandler) NotifyUser(c *gin.Context) {
	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	n, err := h.service.Deliver(c.Request.Context(), c.Param("id"), req.notification())
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// PUT /api/users/notifications/project/:project_id
func (h *NotificationHandler) NotifyProject(c *gin.Context) {
	var req notifyProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	results, err := h.service.NotifyProjectMembers(
		c.Request.Context(),
		authdelivery.Caller(c),
		c.Param("project_id"),
		authdomain.Notification{
			Text:    req.Text,
			Type:    req.Type,
			Project: c.Param("project_id"),
			Issue:   req.Issue,
		},
	)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, results)
}

// PATCH /api/users/notifications/:id
func (h *NotificationHandler) ToggleRead(c *gin.Context) {
	caller := authdelivery.Caller(c)
	n, err := h.service.ToggleRead(c.Request.Context(), caller.ID, c.Param("id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// DELETE /api/users/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	caller := authdelivery.Caller(c)
	if err := h.service.Remove(c.Request.Context(), caller.ID, c.Param("id")); err != nil {
		httpx.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
