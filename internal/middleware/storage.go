package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"todolist-web/internal/logging"
	"todolist-web/internal/models"
	"todolist-web/internal/session"
	"todolist-web/internal/storage"
)

const storageKey = "storage"

var _ storage.Scope = (*session.Session)(nil)

// SessionStorage binds a provider that keeps lists in the caller's
// session. Must run after Sessions.
func SessionStorage() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := GetSession(c)
		if sess == nil {
			logging.Current().Error("Session storage used without a session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, models.ErrorResponse{
				Code:    "INTERNAL_ERROR",
				Message: "An internal error occurred. Please try again later.",
			})
			return
		}

		c.Set(storageKey, storage.NewSessionStorage(sess))
		c.Next()
	}
}

// DatabaseStorage binds a provider backed by one pooled connection held
// for the whole request. The connection returns to the pool when the
// handler chain finishes, including when it panics.
func DatabaseStorage(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := db.WithContext(c.Request.Context()).Connection(func(conn *gorm.DB) error {
			c.Set(storageKey, storage.NewDatabaseStorage(conn, logging.Current()))
			c.Next()
			return nil
		})
		if err != nil {
			logging.Current().WithError(err).Error("Failed to acquire database connection")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, models.ErrorResponse{
				Code:    "DATABASE_UNAVAILABLE",
				Message: "The database is currently unavailable. Please try again later.",
			})
		}
	}
}

// GetStorage returns the provider bound to the request, or nil
func GetStorage(c *gin.Context) storage.Provider {
	value, exists := c.Get(storageKey)
	if !exists {
		return nil
	}
	provider, _ := value.(storage.Provider)
	return provider
}
