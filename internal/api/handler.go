package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/tradeactivity/internal/domain/dto"
	"github.com/guttosm/tradeactivity/internal/middleware"
	"github.com/guttosm/tradeactivity/internal/service"
)

// Handler serves the trade activity report.
type Handler struct {
	svc service.ReportService
}

// NewHandler constructs a Handler on top of a ReportService.
func NewHandler(svc service.ReportService) *Handler {
	return &Handler{svc: svc}
}

// GetReport handles GET /api/v1/report.
//
// The report is computed on every request against the current time.
//
// GetReport godoc
// @Summary      Trade activity report
// @Description  Classifies the whitelisted assets by trade activity over the trailing window and lists the removal candidates
// @Tags         report
// @Produce      plain
// @Produce      json
// @Param        format  query     string  false  "Response format" Enums(text, json) default(text)
// @Success      200     {object}  dto.ReportResponse  "Report (json format)"
// @Failure      400     {object}  dto.ErrorResponse   "Bad Request"
// @Failure      503     {object}  dto.ErrorResponse   "Source unavailable"
// @Failure      504     {object}  dto.ErrorResponse   "Timeout"
// @Router       /api/v1/report [get]
func (h *Handler) GetReport(c *gin.Context) {
	format := c.DefaultQuery("format", "text")
	if format != "text" && format != "json" {
		middleware.AbortWithError(c, http.StatusBadRequest, "format must be text or json", nil)
		return
	}

	report, err := h.svc.BuildReport(c.Request.Context())
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		middleware.AbortWithError(c, http.StatusGatewayTimeout, "report timed out", err)
		return
	case errors.Is(err, service.ErrSourceIO):
		middleware.AbortWithError(c, http.StatusServiceUnavailable, "trade statistics unavailable", err)
		return
	case err != nil:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to build report", err)
		return
	}

	if format == "json" {
		c.JSON(http.StatusOK, dto.NewReportResponse(report))
		return
	}
	c.String(http.StatusOK, service.FormatReport(report))
}
