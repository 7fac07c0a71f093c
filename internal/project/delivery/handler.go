package delivery

import (
	"net/http"

	authdelivery "taskforge-backend/internal/auth/delivery"
	projectdto "taskforge-backend/internal/project/dto"
	"taskforge-backend/internal/project/usecase"
	"taskforge-backend/pkg/httpx"

	"github.com/gin-gonic/gin"
)

// ProjectHandler serves the project routes and both issue route families.
type ProjectHandler struct {
	projectUsecase usecase.ProjectUsecase
}

func NewProjectHandler(projectUsecase usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{projectUsecase: projectUsecase}
}

// POST /api/project
func (h *ProjectHandler) Create(c *gin.Context) {
	var req projectdto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	project, err := h.projectUsecase.CreateProject(c.Request.Context(), authdelivery.Caller(c), &req)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// POST /api/project/:project_id
func (h *ProjectHandler) Join(c *gin.Context) {
	project, err := h.projectUsecase.JoinProject(c.Request.Context(), authdelivery.Caller(c), c.Param("project_id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// PUT /api/project/:project_id/:user_id
func (h *ProjectHandler) AddMember(c *gin.Context) {
	project, err := h.projectUsecase.AddMember(c.Request.Context(), authdelivery.Caller(c), c.Param("project_id"), c.Param("user_id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// GET /api/project
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectUsecase.ListForMember(c.Request.Context(), authdelivery.Caller(c))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// DELETE /api/project/:project_id
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projectUsecase.DeleteProject(c.Request.Context(), authdelivery.Caller(c), c.Param("project_id")); err != nil {
		httpx.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/project/issue/:project_id
func (h *ProjectHandler) CreateIssue(c *gin.Context) {
	var req projectdto.CreateIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	project, err := h.projectUsecase.CreateIssue(c.Request.Context(), authdelivery.Caller(c), c.Param("project_id"), &req)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// GET /api/project/issue/:project_id
func (h *ProjectHandler) ListIssues(c *gin.Context) {
	issues, err := h.projectUsecase.ListIssues(c.Request.Context(), authdelivery.Caller(c), c.Param("project_id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// GET /api/project/issue/:project_id/:issue_id
func (h *ProjectHandler) GetIssue(c *gin.Context) {
	issue, err := h.projectUsecase.GetIssue(c.Request.Context(), authdelivery.Caller(c), c.Param("project_id"), c.Param("issue_id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// PATCH /api/project/issue/:project_id/:issue_id
func (h *ProjectHandler) ToggleIssueStatus(c *gin.Context) {
	project, err := h.projectUsecase.ToggleIssueStatus(c.Request.Context(), authdelivery.Caller(c), c.Param("project_id"), c.Param("issue_id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// POST /api/project/:project_id/:issue_id
func (h *ProjectHandler) PostIssueMessage(c *gin.Context) {
	var req projectdto.MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	issue, err := h.projectUsecase.PostIssueMessage(c.Request.Context(), authdelivery.Caller(c), c.Param("project_id"), c.Param("issue_id"), req.Text)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// DELETE /api/project/issue/:project_id/:issue_id
func (h *ProjectHandler) DeleteIssue(c *gin.Context) {
	if err := h.projectUsecase.DeleteIssue(c.Request.Context(), authdelivery.Caller(c), c.Param("project_id"), c.Param("issue_id")); err != nil {
		httpx.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/issues/:project_id
func (h *ProjectHandler) CreateStandaloneIssue(c *gin.Context) {
	var req projectdto.StandaloneIssueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	issue, err := h.projectUsecase.CreateStandaloneIssue(c.Request.Context(), authdelivery.Caller(c), c.Param("project_id"), &req)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}

// GET /api/issues/:project_id
func (h *ProjectHandler) ListStandaloneIssues(c *gin.Context) {
	issues, err := h.projectUsecase.ListIssues(c.Request.Context(), authdelivery.Caller(c), c.Param("project_id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, issues)
}

// PATCH /api/issues/:issue_id
func (h *ProjectHandler) SetIssueStatus(c *gin.Context) {
	var req projectdto.StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	issue, err := h.projectUsecase.SetIssueStatus(c.Request.Context(), authdelivery.Caller(c), c.Param("issue_id"), req.Status)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, issue)
}
