package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"todolist-web/internal/middleware"
	"todolist-web/internal/models"
	"todolist-web/internal/session"
	"todolist-web/internal/storage"
	"todolist-web/internal/validation"
)

const listsPath = "/lists"

var errNoStorage = errors.New("no storage bound to request")

func listPath(id int) string {
	return fmt.Sprintf("/lists/%d", id)
}

// requestStorage returns the provider bound by the storage middleware
func requestStorage(c *gin.Context) (storage.Provider, bool) {
	provider := middleware.GetStorage(c)
	if provider == nil {
		storageError(c, errNoStorage)
		return nil, false
	}
	return provider, true
}

// pathID parses an integer path parameter
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    "INVALID_ID",
			Message: "Invalid id format",
			Details: map[string]interface{}{"field": name},
		})
		return 0, false
	}
	return id, true
}

// loadList fetches a list, redirecting to the index with an error flash
// when it does not exist
func loadList(c *gin.Context, provider storage.Provider, id int) (*models.List, bool) {
	list, err := provider.FindList(id)
	if err != nil {
		if errors.Is(err, storage.ErrListNotFound) {
			setFlash(c, session.FlashError, fmt.Sprintf("List '%d' not found", id))
			c.Redirect(http.StatusSeeOther, listsPath)
			return nil, false
		}
		storageError(c, err)
		return nil, false
	}
	return list, true
}

func setFlash(c *gin.Context, kind, message string) {
	if sess := middleware.GetSession(c); sess != nil {
		sess.SetFlash(kind, message)
	}
}

// takeFlash returns and clears the pending messages, nil when there are none
func takeFlash(c *gin.Context) *models.Flash {
	sess := middleware.GetSession(c)
	if sess == nil {
		return nil
	}
	flash := models.Flash{
		Error:   sess.TakeFlash(session.FlashError),
		Success: sess.TakeFlash(session.FlashSuccess),
	}
	if flash.Empty() {
		return nil
	}
	return &flash
}

func isXHR(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

func invalidInput(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Code:    "INVALID_INPUT",
		Message: "Invalid request body",
		Details: map[string]interface{}{"error": err.Error()},
	})
}

// validationFailed answers 422 with the message the user has to see
func validationFailed(c *gin.Context, err error) {
	resp := models.ErrorResponse{
		Code:    "VALIDATION_ERROR",
		Message: err.Error(),
	}
	var verr *validation.Error
	if errors.As(err, &verr) {
		resp.Details = map[string]interface{}{"field": verr.Field}
	}
	c.JSON(http.StatusUnprocessableEntity, resp)
}

// storageError attaches err for the logging middleware and answers with a
// generic message
func storageError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Code:    "INTERNAL_ERROR",
		Message: "An internal error occurred. Please try again later.",
	})
}
