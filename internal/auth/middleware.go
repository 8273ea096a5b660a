package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextOwner is the gin context key under which the middleware
// stores the authenticated user's ID.
const ContextOwner = "ownerID"

// Middleware authenticates the request from the Authorization header
// and stores the owner ID in the request context.
//
// Requests without a valid bearer token are aborted with 401. The
// owner ID resolved here is the only user identity the handlers ever
// see, all queries are scoped to it.
func Middleware(secretKey []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		// The OPTIONS discovery endpoints carry no data and stay
		// reachable without a session
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no token provided"})
			return
		}

		userID, err := GetUserIDFromToken(strings.TrimPrefix(header, "Bearer "), secretKey)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}

		id, err := uuid.Parse(userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": ErrInvalidToken.Error()})
			return
		}

		c.Set(ContextOwner, id)
		c.Next()
	}
}

// Owner returns the authenticated user's ID from the request context.
func Owner(c *gin.Context) uuid.UUID {
	return c.MustGet(ContextOwner).(uuid.UUID)
}
