package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/TidonAM/ODET/internal/apperrors"
	portssvc "github.com/TidonAM/ODET/internal/core/ports/services"
	"github.com/TidonAM/ODET/internal/dto"
	"github.com/TidonAM/ODET/internal/middleware"
	"github.com/gin-gonic/gin"
)

// summaryHandler serves the aggregated dashboard state.
type summaryHandler struct {
	dashboardService portssvc.DashboardSvcFacade
}

func newSummaryHandler(ds portssvc.DashboardSvcFacade) *summaryHandler {
	return &summaryHandler{
		dashboardService: ds,
	}
}

// RegisterSummaryRoutes registers the dashboard summary route.
// Exported so handler tests can wire mocked services onto a bare router.
func RegisterSummaryRoutes(rg *gin.RouterGroup, dashboardService portssvc.DashboardSvcFacade) {
	h := newSummaryHandler(dashboardService)
	rg.GET("/summary", h.getSummary)
}

// getSummary godoc
// @Summary Get the dashboard summary
// @Description Retrieves every account's balance for one period plus the cash/debt/net rollup. Without resetID the active period is used.
// @Tags summary
// @Produce  json
// @Param   resetID query string false "Period (reset) ID; defaults to the active period"
// @Success 200 {object} dto.SummaryResponse
// @Failure 404 {object} ErrorResponse "Unknown period, or no period started yet"
// @Security BearerAuth
// @Router /summary [get]
func (h *summaryHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	summary, err := h.dashboardService.GetSummary(c.Request.Context(), userID, c.Query("resetID"))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNoActivePeriod):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No active period; start one first"})
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Period not found"})
		default:
			logger.Error("Failed to compute summary in service", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to compute summary"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}
