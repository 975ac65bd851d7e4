package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zkerkeb-class/pokedex-api-enteaunain/internal/auth"
)

// Identity is the authenticated caller attached to the request context.
// It is only ever constructed by authMiddleware.
type Identity struct {
	UserID string
	Role   auth.Role
}

const identityKey = "identity"

// identityFrom reads the Identity set by authMiddleware. ok is false when the
// middleware did not run, which downstream checks must treat as fail-closed.
func identityFrom(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// authMiddleware verifies the bearer token in the Authorization header and
// attaches the caller's Identity to the request context.
func (rs *RestServer) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Access denied. No token provided.",
			})
			c.Abort()
			return
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid authorization header format.",
			})
			c.Abort()
			return
		}

		claims, err := rs.tokens.Verify(parts[1])
		if err != nil {
			message := "Invalid token."
			if errors.Is(err, auth.ErrExpiredToken) {
				message = "Expired token."
			}
			c.JSON(http.StatusUnauthorized, ErrorResponse{
				Message: message,
				Error:   err.Error(),
			})
			c.Abort()
			return
		}

		c.Set(identityKey, Identity{
			UserID: claims.UserID(),
			Role:   claims.Role,
		})

		c.Next()
	}
}

// adminMiddleware enforces the admin role. It runs after authMiddleware; a
// missing identity is a programming error and fails closed.
func (rs *RestServer) adminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c)
		if !ok || identity.Role != auth.RoleAdmin {
			c.JSON(http.StatusForbidden, ErrorResponse{
				Message: "Access forbidden. Admin role required.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
