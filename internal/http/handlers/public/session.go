package public

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	sessionHeader = "X-Session-ID"
	sessionCookie = "cart_session"
	sessionMaxLen = 64
)

// sessionID extracts the cart session token from the header or cookie.
// The token is client-generated and opaque; it only has to be stable.
func sessionID(c *gin.Context) string {
	token := strings.TrimSpace(c.GetHeader(sessionHeader))
	if token == "" {
		if cookie, err := c.Cookie(sessionCookie); err == nil {
			token = strings.TrimSpace(cookie)
		}
	}
	if len(token) > sessionMaxLen {
		token = token[:sessionMaxLen]
	}
	return token
}
