package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"todolist-web/internal/config"
	"todolist-web/internal/logging"
	"todolist-web/internal/session"
)

const sessionKey = "session"

// Sessions loads the caller's session from its cookie, creating one when
// the cookie is missing or stale, and refreshes the cookie
func Sessions(store *session.Store, cfg config.SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(cfg.CookieName)

		sess, created := store.Load(id)
		if created {
			logging.Current().WithField("client_ip", c.ClientIP()).Debug("Started new session")
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cfg.CookieName, sess.ID(), int(cfg.TTL.Seconds()), "/", "", cfg.Secure, true)

		c.Set(sessionKey, sess)
		c.Next()
	}
}

// GetSession returns the session bound to the request, or nil
func GetSession(c *gin.Context) *session.Session {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}
	sess, _ := value.(*session.Session)
	return sess
}
