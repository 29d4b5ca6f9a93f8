package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/Ernest01982/tuktukeazyadmin/internal/core/ports/services"
	"github.com/Ernest01982/tuktukeazyadmin/internal/dto"
	"github.com/Ernest01982/tuktukeazyadmin/internal/middleware"
)

// driverHandler handles HTTP requests for driver provisioning and the directory.
type driverHandler struct {
	driverService portssvc.DriverSvcFacade
}

func newDriverHandler(ds portssvc.DriverSvcFacade) *driverHandler {
	return &driverHandler{driverService: ds}
}

// registerDriverRoutes registers driver routes.
func registerDriverRoutes(rg *gin.RouterGroup, driverService portssvc.DriverSvcFacade) {
	h := newDriverHandler(driverService)

	drivers := rg.Group("/drivers")
	{
		drivers.POST("", h.createDriver)
		drivers.GET("", h.searchDrivers)
	}
}

// createDriver provisions a driver account through the dual-path command.
// The response always reports which channel satisfied the request.
func (h *driverHandler) createDriver(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for driver creation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	result, err := h.driverService.CreateDriver(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Driver created", slog.String("path", string(result.Path)), slog.String("created_id", result.CreatedID))
	c.JSON(http.StatusCreated, dto.CreateDriverResponse{
		Success:   result.Success,
		Path:      string(result.Path),
		CreatedID: result.CreatedID,
	})
}

// searchDrivers returns drivers matching the q parameter against name and
// vehicle plate. An empty q lists everyone.
func (h *driverHandler) searchDrivers(c *gin.Context) {
	query := c.Query("q")

	drivers, err := h.driverService.SearchDrivers(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDriverResponses(drivers))
}
