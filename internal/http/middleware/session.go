package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	SessionCookie = "darshan_session"
	// SessionHeader lets non-browser clients pick their session explicitly.
	SessionHeader = "X-Session-ID"

	sessionKey     = "sessionID"
	adminTempleKey = "adminTemple"
)

// Sessions gives every request a session id, from the header, the cookie,
// or a freshly issued cookie. Ids that are not UUIDs are replaced.
func Sessions(secure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if !validID(id) {
			id, _ = c.Cookie(SessionCookie)
		}
		if !validID(id) {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(SessionCookie, id, 0, "/", "", secure, true)
		}
		c.Set(sessionKey, id)
		c.Next()
	}
}

// ClearSession expires the session cookie.
func ClearSession(c *gin.Context, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", secure, true)
}

func validID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// GetSessionID returns the session set by Sessions or JWTMiddleware.
func GetSessionID(c *gin.Context) (string, bool) {
	v, exists := c.Get(sessionKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// GetAdminTemple returns the temple the admin token was issued for.
func GetAdminTemple(c *gin.Context) (string, bool) {
	v, exists := c.Get(adminTempleKey)
	if !exists {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
