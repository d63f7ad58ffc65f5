package api

import (
	"net/http"

	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/Domenick1991/staybooking/internal/service/auth"
	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

// RequireSession rejects requests without a valid session cookie and stores
// the verified session in the gin context.
func RequireSession(service auth.AuthUseCase, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(cookieName)
		session, err := service.VerifySession(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: "Invalid token!"})
			return
		}
		c.Set(sessionKey, session)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) domain.Session {
	v, _ := c.Get(sessionKey)
	session, _ := v.(domain.Session)
	return session
}
