package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookieName   = "prism_admin_session"
	sessionCookieMaxAge = 8 * 60 * 60 // seconds
)

// AdminAuthRequired gates the admin API. The session token is issued by the
// external login flow; this side only verifies presentation, via cookie or
// Authorization header, against the configured admin token.
func (s *Server) AdminAuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		configured := strings.TrimSpace(s.cfg.AdminToken)
		if configured == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		presented := presentedToken(c)
		if presented == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		// Sliding session: every authorized request pushes the cookie
		// expiry out again.
		c.SetCookie(sessionCookieName, presented, sessionCookieMaxAge, "/", "", s.cfg.AuthCookieSecure, true)
		c.Next()
	}
}

func presentedToken(c *gin.Context) string {
	if cookie, err := c.Cookie(sessionCookieName); err == nil {
		if token := strings.TrimSpace(cookie); token != "" {
			return token
		}
	}

	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
