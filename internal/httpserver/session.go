package httpserver

import (
	"net/http"

	"storefront/internal/session"

	"github.com/gin-gonic/gin"
)

// cookieTransport carries the session token in the __session cookie.
type cookieTransport struct {
	secure bool
	maxAge int
}

func newCookieTransport(opts Options) cookieTransport {
	return cookieTransport{secure: opts.CookieSecure, maxAge: int(opts.SessionTTL.Seconds())}
}

func (t cookieTransport) read(c *gin.Context) string {
	token, err := c.Cookie(session.CookieName)
	if err != nil {
		return ""
	}
	return token
}

func (t cookieTransport) write(c *gin.Context, token string) {
	if token == "" {
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, t.maxAge, "/", "", t.secure, true)
}
