package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todolist-web/internal/models"
	"todolist-web/internal/session"
	"todolist-web/internal/storage"
	"todolist-web/internal/validation"
)

// TodoHandler handles todo operations
type TodoHandler struct{}

// NewTodoHandler creates a new todo handler
func NewTodoHandler() *TodoHandler {
	return &TodoHandler{}
}

// CreateTodo handles POST /lists/:id/todos
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	provider, ok := requestStorage(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if _, ok := loadList(c, provider, listID); !ok {
		return
	}

	var req models.CreateTodoRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidInput(c, err)
		return
	}
	name := strings.TrimSpace(req.Name)

	if err := validation.ValidateTodoName(name); err != nil {
		validationFailed(c, err)
		return
	}

	if err := provider.CreateTodo(listID, name); err != nil {
		storageError(c, err)
		return
	}

	setFlash(c, session.FlashSuccess, fmt.Sprintf("Todo \"%s\" added.", name))
	c.Redirect(http.StatusSeeOther, listPath(listID))
}

// DeleteTodo handles POST /lists/:id/todos/:todoId/destroy
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	provider, ok := requestStorage(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}
	todoID, ok := pathID(c, "todoId")
	if !ok {
		return
	}

	if _, ok := loadList(c, provider, listID); !ok {
		return
	}

	if err := provider.DeleteTodo(listID, todoID); err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			todoNotFound(c, listID, todoID)
			return
		}
		storageError(c, err)
		return
	}

	if isXHR(c) {
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusSeeOther, listPath(listID))
}

// UpdateTodoStatus handles POST /lists/:id/todos/:todoId
func (h *TodoHandler) UpdateTodoStatus(c *gin.Context) {
	provider, ok := requestStorage(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}
	todoID, ok := pathID(c, "todoId")
	if !ok {
		return
	}

	if _, ok := loadList(c, provider, listID); !ok {
		return
	}

	var req models.UpdateTodoStatusRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidInput(c, err)
		return
	}

	if err := provider.UpdateTodoStatus(listID, todoID, req.Completed.Completed()); err != nil {
		if errors.Is(err, storage.ErrTodoNotFound) {
			todoNotFound(c, listID, todoID)
			return
		}
		storageError(c, err)
		return
	}

	// Reload so the completion check sees the new state on both backends
	list, ok := loadList(c, provider, listID)
	if !ok {
		return
	}
	if list.IsComplete() {
		setFlash(c, session.FlashSuccess, fmt.Sprintf("All \"%s\" todos completed.", list.Name))
	}
	c.Redirect(http.StatusSeeOther, listPath(listID))
}

// CompleteAllTodos handles POST /lists/:id/complete_all_todos
func (h *TodoHandler) CompleteAllTodos(c *gin.Context) {
	provider, ok := requestStorage(c)
	if !ok {
		return
	}
	listID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, ok := loadList(c, provider, listID)
	if !ok {
		return
	}

	if err := provider.CompleteAllTodos(listID); err != nil {
		storageError(c, err)
		return
	}

	setFlash(c, session.FlashSuccess, fmt.Sprintf("All \"%s\" todos completed.", list.Name))
	c.Redirect(http.StatusSeeOther, listPath(listID))
}

func todoNotFound(c *gin.Context, listID, todoID int) {
	if isXHR(c) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Code:    "TODO_NOT_FOUND",
			Message: "The requested todo was not found",
		})
		return
	}
	setFlash(c, session.FlashError, fmt.Sprintf("Todo '%d' not found", todoID))
	c.Redirect(http.StatusSeeOther, listPath(listID))
}
