package handlers

import (
	"github.com/gin-gonic/gin"

	portssvc "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/services"
	"github.com/Ernest01982/tuktukeazyadmin/internal/middleware"
	"github.com/Ernest01982/tuktukeazyadmin/pkg/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Health check for load balancers and the hosting platform
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	setupAPIV1Routes(r, cfg, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Every v1 route requires an authenticated session
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))

	// The caller's own profile is readable by any authenticated role
	registerProfileRoutes(v1, services.Profile)

	// Everything else is admin-only
	admin := v1.Group("", middleware.RequireAdmin(services.Profile))
	registerLedgerRoutes(admin, services.Ledger, services.Profile)
	registerDriverRoutes(admin, services.Driver)
}
