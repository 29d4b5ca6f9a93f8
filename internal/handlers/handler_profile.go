package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/services"
	"github.com/Ernest01982/tuktukeazyadmin/internal/dto"
	"github.com/Ernest01982/tuktukeazyadmin/internal/middleware"
)

// profileHandler handles HTTP requests for the caller's own profile.
type profileHandler struct {
	profileService portssvc.ProfileSvcFacade
}

func newProfileHandler(ps portssvc.ProfileSvcFacade) *profileHandler {
	return &profileHandler{profileService: ps}
}

// registerProfileRoutes registers the session profile route.
func registerProfileRoutes(rg *gin.RouterGroup, profileService portssvc.ProfileSvcFacade) {
	h := newProfileHandler(profileService)
	rg.GET("/me", h.me)
}

// me returns the caller's profile, bootstrapping it on first contact. The
// response carries the provisioning state so a degraded session is visible
// to the client.
func (h *profileHandler) me(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	email, _ := middleware.GetUserEmailFromContext(c)

	profile, outcome, err := h.profileService.EnsureProfile(c.Request.Context(), userID, email)
	if err != nil {
		respondError(c, err)
		return
	}

	role, err := h.profileService.ResolveRole(c.Request.Context(), userID)
	if err == nil {
		profile.Role = role
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile, outcome))
}
