package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ernest01982/tuktukeazyadmin/internal/core/domain"
	portssvc "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/services"
)

// RequireAdmin gates the route group behind the admin role. Role resolution
// happens in the profile service, which is the single place capability rules
// live; this middleware only enforces the result.
func RequireAdmin(profileSvc portssvc.ProfileSvcFacade) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		userID, ok := GetUserIDFromContext(c)
		if !ok {
			logger.Warn("Admin gate reached without authenticated user")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		role, err := profileSvc.ResolveRole(c.Request.Context(), userID)
		if err != nil {
			logger.Error("Failed to resolve caller role", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve role"})
			return
		}

		if role != domain.RoleAdmin {
			logger.Warn("Non-admin caller denied", "role", string(role))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin role required"})
			return
		}

		c.Next()
	}
}
