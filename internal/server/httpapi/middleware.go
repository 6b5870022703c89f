package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/famly-app/identity/internal/server/accounts"
	"github.com/famly-app/identity/internal/server/auth"
)

// accountContextKey is where the guard stores the resolved account for
// downstream handlers.
const accountContextKey = "account"

// accessGuard authenticates the request from its bearer token and attaches
// the resolved account to the context. Every failure mode responds 401 with
// the same body: a valid token whose account no longer exists is just as
// unauthorized as a missing header.
func (s *Server) accessGuard() gin.HandlerFunc {
	return func(c *gin.Context) {

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			abortUnauthorized(c)
			return
		}

		claims, err := auth.VerifyToken(token, s.jwtSecret)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		account, err := s.accounts.GetByID(c.Request.Context(), claims.Subject)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(accountContextKey, account)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// accountFromContext returns the account attached by the access guard.
func accountFromContext(c *gin.Context) (*accounts.Account, bool) {
	v, ok := c.Get(accountContextKey)
	if !ok {
		return nil, false
	}
	account, ok := v.(*accounts.Account)
	return account, ok
}
