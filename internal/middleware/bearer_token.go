package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/delesray/forum/internal/models"
	"github.com/delesray/forum/internal/services/auth"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Context keys set by the bearer middleware
const (
	ContextUserID  = "user_id"
	ContextUser    = "user"
	ContextIsAdmin = "is_admin"
)

type BearerTokenMiddleware struct {
	authService *auth.AuthService
}

func NewBearerTokenMiddleware(authService *auth.AuthService) *BearerTokenMiddleware {
	return &BearerTokenMiddleware{authService: authService}
}

// authenticate resolves the Authorization header. Both results are empty
// when the header is absent; a non-empty problem is the 401 message.
func (m *BearerTokenMiddleware) authenticate(c *gin.Context) (*models.User, string) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, ""
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil, "Invalid authorization header format"
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	user, err := m.authService.Authenticate(tokenString)
	switch {
	case err == nil:
		return user, ""
	case errors.Is(err, auth.ErrExpiredToken):
		return nil, "Token has expired"
	case errors.Is(err, auth.ErrUserNotFound):
		return nil, "User not found"
	case errors.Is(err, auth.ErrInvalidToken):
		return nil, "Invalid or expired token"
	default:
		logrus.Errorf("Failed to authenticate request: %v", err)
		return nil, "Invalid or expired token"
	}
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(ContextUserID, user.ID)
	c.Set(ContextUser, user)
	c.Set(ContextIsAdmin, user.IsAdmin)
}

// RequireAuth rejects requests without a valid bearer token
func (m *BearerTokenMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, problem := m.authenticate(c)
		if problem == "" && user == nil {
			problem = "Authorization header is required"
		}
		if problem != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": problem})
			c.Abort()
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalAuth lets anonymous requests through, but a token that is present
// must be valid
func (m *BearerTokenMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, problem := m.authenticate(c)
		if problem != "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": problem})
			c.Abort()
			return
		}

		if user != nil {
			setUser(c, user)
		}
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(ContextIsAdmin) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil for anonymous requests
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(ContextUser)
	if !exists {
		return nil
	}
	user, _ := value.(*models.User)
	return user
}
