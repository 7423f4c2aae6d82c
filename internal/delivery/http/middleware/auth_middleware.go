package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"recruitment-platform/internal/delivery/http/response"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/auth"
)

// AuthMiddleware validates the bearer token and loads the caller with their
// role grants into the request context. Role checks always read the fresh
// database state, never the token.
func AuthMiddleware(tokens *auth.TokenManager, authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string

		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else {
			cookie, err := c.Cookie("auth_token")
			if err == nil && cookie != "" {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		user, err := authUC.GetCurrentUser(c.Request.Context(), claims.Subject)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}
		if !user.IsActive {
			response.Error(c, http.StatusUnauthorized, "Account is disabled", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUser), user)

		c.Next()
	}
}

// CurrentUser pulls the authenticated caller out of the gin context.
func CurrentUser(c *gin.Context) *domain.User {
	value, ok := c.Get(string(domain.KeyUser))
	if !ok {
		return nil
	}
	user, _ := value.(*domain.User)
	return user
}
