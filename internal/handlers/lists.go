package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"todolist-web/internal/models"
	"todolist-web/internal/session"
	"todolist-web/internal/validation"
)

// ListHandler handles todo list operations
type ListHandler struct{}

// NewListHandler creates a new list handler
func NewListHandler() *ListHandler {
	return &ListHandler{}
}

// Index handles GET /
func (h *ListHandler) Index(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, listsPath)
}

// GetAllLists handles GET /lists
func (h *ListHandler) GetAllLists(c *gin.Context) {
	provider, ok := requestStorage(c)
	if !ok {
		return
	}

	lists, err := provider.AllLists()
	if err != nil {
		storageError(c, err)
		return
	}

	views := make([]models.ListView, 0, len(lists))
	for _, list := range models.SortLists(lists) {
		views = append(views, models.NewListView(list))
	}

	c.JSON(http.StatusOK, models.ListsResponse{
		Lists: views,
		Flash: takeFlash(c),
	})
}

// CreateList handles POST /lists
func (h *ListHandler) CreateList(c *gin.Context) {
	provider, ok := requestStorage(c)
	if !ok {
		return
	}

	var req models.CreateListRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidInput(c, err)
		return
	}
	name := strings.TrimSpace(req.Name)

	lists, err := provider.AllLists()
	if err != nil {
		storageError(c, err)
		return
	}
	if err := validation.ValidateListName(name, lists); err != nil {
		validationFailed(c, err)
		return
	}

	if err := provider.CreateList(name); err != nil {
		storageError(c, err)
		return
	}

	setFlash(c, session.FlashSuccess, fmt.Sprintf("List \"%s\" successfully added.", name))
	c.Redirect(http.StatusSeeOther, listsPath)
}

// GetList handles GET /lists/:id
func (h *ListHandler) GetList(c *gin.Context) {
	provider, ok := requestStorage(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, ok := loadList(c, provider, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, models.ListResponse{
		List:  models.NewListView(list),
		Flash: takeFlash(c),
	})
}

// UpdateList handles POST /lists/:id
func (h *ListHandler) UpdateList(c *gin.Context) {
	provider, ok := requestStorage(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, ok := loadList(c, provider, id)
	if !ok {
		return
	}

	var req models.UpdateListRequest
	if err := c.ShouldBind(&req); err != nil {
		invalidInput(c, err)
		return
	}
	name := strings.TrimSpace(req.Name)

	if name == list.Name {
		c.Redirect(http.StatusSeeOther, listPath(id))
		return
	}

	lists, err := provider.AllLists()
	if err != nil {
		storageError(c, err)
		return
	}
	if err := validation.ValidateListName(name, lists); err != nil {
		validationFailed(c, err)
		return
	}

	if err := provider.UpdateList(id, name); err != nil {
		storageError(c, err)
		return
	}

	setFlash(c, session.FlashSuccess, "List successfully updated.")
	c.Redirect(http.StatusSeeOther, listPath(id))
}

// DeleteList handles POST /lists/:id/destroy
func (h *ListHandler) DeleteList(c *gin.Context) {
	provider, ok := requestStorage(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, ok := loadList(c, provider, id)
	if !ok {
		return
	}

	if err := provider.DeleteList(id); err != nil {
		storageError(c, err)
		return
	}

	setFlash(c, session.FlashSuccess, fmt.Sprintf("List \"%s\" deleted.", list.Name))
	// Scripted deletes navigate themselves to the returned path
	if isXHR(c) {
		c.String(http.StatusOK, listsPath)
		return
	}
	c.Redirect(http.StatusSeeOther, listsPath)
}
