package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated user's ID in the
// request context.
const userIDKey = contextKey("userID")

// userEmailKey holds the authenticated user's email claim, used when the
// profile row has to be bootstrapped on first contact.
const userEmailKey = contextKey("userEmail")

// bearerTokenKey holds the caller's raw bearer token so state-mutating
// commands can forward the caller's own credential to the function endpoint.
const bearerTokenKey = contextKey("bearerToken")

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal := c.Request.Context().Value(userIDKey)
	if userIDVal == nil {
		return "", false
	}
	userID, ok := userIDVal.(string)
	return userID, ok
}

// GetUserEmailFromContext retrieves the authenticated user's email claim.
func GetUserEmailFromContext(c *gin.Context) (string, bool) {
	emailVal := c.Request.Context().Value(userEmailKey)
	if emailVal == nil {
		return "", false
	}
	email, ok := emailVal.(string)
	return email, ok
}

// GetBearerTokenFromCtx retrieves the caller's raw bearer token. Returns the
// empty string when the request was not authenticated.
func GetBearerTokenFromCtx(ctx context.Context) string {
	token, _ := ctx.Value(bearerTokenKey).(string)
	return token
}
