package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/api/auth"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// Authenticate requires a valid bearer token and loads the actor's current
// record, so role changes and deletions take effect immediately rather than
// at token expiry.
func Authenticate(signer auth.TokenSigner, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := resolveActor(c, signer, users)
		if !ok || actor == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid authorization token"})
			c.Abort()
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

// Identify is the optional variant for public routes: a valid token sets the
// actor, anything else leaves the request anonymous.
func Identify(signer auth.TokenSigner, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if actor, ok := resolveActor(c, signer, users); ok && actor != nil {
			c.Set(actorKey, actor)
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated actor, or nil for anonymous
// requests.
func CurrentUser(c *gin.Context) *models.User {
	value, exists := c.Get(actorKey)
	if !exists {
		return nil
	}
	actor, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return actor
}

func resolveActor(c *gin.Context, signer auth.TokenSigner, users repository.UserRepository) (*models.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	// Format: "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, false
	}

	claims, err := signer.Verify(parts[1])
	if err != nil {
		return nil, false
	}

	actor, err := users.FindByID(c.Request.Context(), claims.Subject)
	if err != nil {
		return nil, false
	}
	return actor, true
}
