package ginserver

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	domainuser "findmeroom/internal/domain/user"
)

const principalContextKey = "findmeroom.principal"

type principal struct {
	ID    string
	Email string
	Name  string
}

// TokenParser validates a bearer token and returns the subject user id.
type TokenParser interface {
	Parse(token string) (string, error)
}

// UserLoader resolves the authenticated account.
type UserLoader interface {
	ByID(ctx context.Context, id string) (*domainuser.User, error)
}

// AuthMiddleware resolves the bearer token into a principal. Requests
// without a valid token proceed anonymously; protected handlers reject them
// via requireAuth.
type AuthMiddleware struct {
	Tokens TokenParser
	Users  UserLoader
	Logger *slog.Logger
}

func (m AuthMiddleware) Handle(c *gin.Context) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	if token == "" || m.Tokens == nil || m.Users == nil {
		c.Next()
		return
	}
	userID, err := m.Tokens.Parse(token)
	if err != nil {
		if m.Logger != nil {
			m.Logger.Debug("token validation failed", "error", err)
		}
		c.Next()
		return
	}
	account, err := m.Users.ByID(c.Request.Context(), userID)
	if err != nil {
		c.Next()
		return
	}
	c.Set(principalContextKey, principal{
		ID:    account.ID,
		Email: account.Email,
		Name:  account.Name,
	})
	c.Next()
}

func currentPrincipal(c *gin.Context) (principal, bool) {
	val, exists := c.Get(principalContextKey)
	if !exists {
		return principal{}, false
	}
	p, ok := val.(principal)
	return p, ok
}

func requireAuth(c *gin.Context) (principal, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
		return principal{}, false
	}
	return p, true
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
