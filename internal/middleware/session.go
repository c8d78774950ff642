package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"schoolhub/api/internal/session"
)

const principalKey = "principal"

// Session restores the request's session and, when logged in, attaches its
// principal to the gin context. Unreadable cookies are treated as anonymous.
func Session(manager *session.Manager, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := manager.Get(c.Request, manager.Name())
		if err != nil {
			log.Debug().
				Err(err).
				Str("request_id", c.Writer.Header().Get(requestIDHeader)).
				Msg("session cookie ignored")
		}

		if s != nil {
			if p, ok := session.PrincipalFrom(s); ok {
				c.Set(principalKey, p)
			}
		}

		c.Next()
	}
}

// RequireSession aborts with 401 unless Session attached a logged-in principal.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentPrincipal(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "You must be logged in to perform this action"})
			return
		}
		c.Next()
	}
}

func CurrentPrincipal(c *gin.Context) (session.Principal, bool) {
	val, exists := c.Get(principalKey)
	if !exists {
		return session.Principal{}, false
	}
	p, ok := val.(session.Principal)
	return p, ok
}
