package delivery

import (
	"net/http"

	authdelivery "taskforge-backend/internal/auth/delivery"
	"taskforge-backend/internal/todo/usecase"
	"taskforge-backend/pkg/httpx"

	"github.com/gin-gonic/gin"
)

// TodoHandler serves the personal todo routes.
type TodoHandler struct {
	todoUsecase usecase.TodoUsecase
}

func NewTodoHandler(todoUsecase usecase.TodoUsecase) *TodoHandler {
	return &TodoHandler{todoUsecase: todoUsecase}
}

type createTodoRequest struct {
	Text     string  `json:"text" binding:"required"`
	Deadline *string `json:"deadline"`
}

type updateTodoStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// POST /api/todos
func (h *TodoHandler) Create(c *gin.Context) {
	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	todo, err := h.todoUsecase.CreateTodo(c.Request.Context(), authdelivery.Caller(c), req.Text, req.Deadline)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// GET /api/todos
func (h *TodoHandler) List(c *gin.Context) {
	todos, err := h.todoUsecase.ListTodos(c.Request.Context(), authdelivery.Caller(c))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// GET /api/todos/:todo_id
func (h *TodoHandler) Get(c *gin.Context) {
	todo, err := h.todoUsecase.GetTodo(c.Request.Context(), authdelivery.Caller(c), c.Param("todo_id"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// GET /api/todos/filter/:filter
func (h *TodoHandler) Filter(c *gin.Context) {
	todos, err := h.todoUsecase.FilterTodos(c.Request.Context(), authdelivery.Caller(c), c.Param("filter"))
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todos)
}

// PATCH /api/todos/:todo_id
func (h *TodoHandler) UpdateStatus(c *gin.Context) {
	var req updateTodoStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Validation(c, err)
		return
	}

	todo, err := h.todoUsecase.UpdateStatus(c.Request.Context(), authdelivery.Caller(c), c.Param("todo_id"), req.Status)
	if err != nil {
		httpx.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, todo)
}

// DELETE /api/todos/:todo_id
func (h *TodoHandler) Delete(c *gin.Context) {
	if err := h.todoUsecase.DeleteTodo(c.Request.Context(), authdelivery.Caller(c), c.Param("todo_id")); err != nil {
		httpx.Fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
