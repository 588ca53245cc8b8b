package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/TidonAM/ODET/internal/apperrors"
	portssvc "github.com/TidonAM/ODET/internal/core/ports/services"
	"github.com/TidonAM/ODET/internal/dto"
	"github.com/TidonAM/ODET/internal/middleware"
	"github.com/gin-gonic/gin"
)

// periodHandler handles HTTP requests related to accounting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(ps portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{
		periodService: ps,
	}
}

// registerPeriodRoutes registers routes related to periods. There is no
// update or delete: periods are insert-only by design.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.POST("", h.startPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/active", h.getActivePeriod)
	}
}

// startPeriod godoc
// @Summary Start a new period
// @Description Creates a new reset. The new period becomes active immediately; prior periods stay readable.
// @Tags periods
// @Produce  json
// @Success 201 {object} dto.PeriodResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /periods [post]
func (h *periodHandler) startPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reset, err := h.periodService.StartPeriod(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to start period in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start period"})
		return
	}

	c.JSON(http.StatusCreated, dto.ToPeriodResponse(reset, true))
}

// listPeriods godoc
// @Summary List periods
// @Description Retrieves the authenticated user's periods, most recent first and cursor-paginated. On the first page the head entry is the active period.
// @Tags periods
// @Produce  json
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Cursor from a previous page"
// @Success 200 {object} dto.ListPeriodsResponse
// @Failure 400 {object} ErrorResponse "Invalid cursor"
// @Security BearerAuth
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	var nextToken *string
	if t := c.Query("nextToken"); t != "" {
		nextToken = &t
	}

	resets, newToken, err := h.periodService.ListPeriods(c.Request.Context(), userID, limit, nextToken)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid nextToken"})
			return
		}
		logger.Error("Failed to list periods in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list periods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListPeriodsResponse(resets, newToken, nextToken == nil))
}

// getActivePeriod godoc
// @Summary Get the active period
// @Description Retrieves the most recent reset. 404 when the user has never started a period.
// @Tags periods
// @Produce  json
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} ErrorResponse "No active period"
// @Security BearerAuth
// @Router /periods/active [get]
func (h *periodHandler) getActivePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	reset, err := h.periodService.ActivePeriod(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoActivePeriod) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "No active period; start one first"})
			return
		}
		logger.Error("Failed to get active period in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve active period"})
		return
	}

	c.JSON(http.StatusOK, dto.ToPeriodResponse(reset, true))
}
