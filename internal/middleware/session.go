package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// SessionCookie is the name of the cookie carrying the session id
	SessionCookie = "mealfinder_session"
	// SessionKey is the gin context key the session id is stored under
	SessionKey = "session_id"
)

// Session makes sure every request carries a session id, issuing a new one
// when the cookie is missing or malformed
func Session(maxAge int) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.New().String()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, maxAge, "/", "", false, true)
		c.Set(SessionKey, id)
		c.Next()
	}
}

// SessionID returns the session id set by Session
func SessionID(c *gin.Context) string {
	return c.GetString(SessionKey)
}
