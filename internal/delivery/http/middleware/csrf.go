package middleware

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/delivery/http/response"
)

const (
	CSRFTokenCookieName = "csrf_token"
	CSRFTokenHeaderName = "X-CSRF-Token"
	csrfTokenLength     = 32
	csrfTokenExpiry     = 24 * time.Hour
)

func generateCSRFToken() (string, error) {
	bytes := make([]byte, csrfTokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

// CSRFMiddleware implements the double-submit cookie pattern. It only
// matters for browser clients using the auth_token cookie; bearer-token
// clients carry the header anyway because the frontend always sets it.
//
// Public auth endpoints are exempt: no session exists yet and they are
// covered by the login rate limiter instead.
func CSRFMiddleware() gin.HandlerFunc {
	csrfExemptPaths := map[string]bool{
		"/v1/auth/login":    true,
		"/v1/auth/register": true,
		"/v1/health":        true,
	}

	return func(c *gin.Context) {
		if csrfExemptPaths[c.Request.URL.Path] {
			ensureCSRFCookie(c)
			c.Next()
			return
		}

		csrfCookie, err := c.Cookie(CSRFTokenCookieName)
		if err != nil || csrfCookie == "" {
			newToken, err := generateCSRFToken()
			if err != nil {
				response.Error(c, http.StatusInternalServerError, "Failed to generate security token", nil)
				c.Abort()
				return
			}
			setCSRFCookie(c, newToken)
			csrfCookie = newToken
		}

		method := c.Request.Method
		if method == "GET" || method == "HEAD" || method == "OPTIONS" {
			c.Next()
			return
		}

		// Cookie-less clients authenticate with a bearer token; they are not
		// CSRF-able because the browser never attaches their credential.
		if _, err := c.Cookie("auth_token"); err != nil {
			c.Next()
			return
		}

		headerToken := c.GetHeader(CSRFTokenHeaderName)
		if headerToken == "" {
			response.Error(c, http.StatusForbidden, "Missing CSRF token", nil)
			c.Abort()
			return
		}
		if headerToken != csrfCookie {
			response.Error(c, http.StatusForbidden, "Invalid CSRF token", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func ensureCSRFCookie(c *gin.Context) {
	if cookie, err := c.Cookie(CSRFTokenCookieName); err == nil && cookie != "" {
		return
	}
	newToken, err := generateCSRFToken()
	if err != nil {
		return
	}
	setCSRFCookie(c, newToken)
}

func setCSRFCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	// HttpOnly is off so the frontend can echo the value in the header
	c.SetCookie(CSRFTokenCookieName, token, int(csrfTokenExpiry.Seconds()), "/", "", true, false)
}
