package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "pennywise/internal/errors"
	"pennywise/internal/models"
	"pennywise/internal/services"
)

// ReportHandler serves ledger-derived read aggregates for the dashboard.
type ReportHandler struct {
	reportService services.ReportServicer
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService services.ReportServicer) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// GetDailyTotals returns per-day expense totals.
// @Summary     Daily expense totals
// @Description Get per-day expense totals; only days with expenses produce a bucket
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       frequency query string false "Filter by frequency (Monthly/Daily)"
// @Param       from      query string false "Window start (RFC 3339)"
// @Param       to        query string false "Window end (RFC 3339)"
// @Success     200 {array} services.DailyBucket "Daily buckets, ascending by date"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/daily [get]
func (h *ReportHandler) GetDailyTotals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var frequency *models.Frequency
	if v := c.Query("frequency"); v != "" {
		f := models.Frequency(v)
		if !f.Valid() {
			respondWithError(c, apperrors.ErrInvalidFrequency)
			return
		}
		frequency = &f
	}

	var fromDate, toDate *time.Time
	if v := c.Query("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from must be an RFC 3339 timestamp"))
			return
		}
		fromDate = &from
	}
	if v := c.Query("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to must be an RFC 3339 timestamp"))
			return
		}
		toDate = &to
	}

	buckets, err := h.reportService.DailyTotals(userID, frequency, fromDate, toDate)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"daily": buckets})
}

// GetCategoryTotals returns per-category ledger totals.
// @Summary     Category totals
// @Description Get per-category spend computed directly from the ledger
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {array} services.CategoryTotal "One entry per taxonomy category"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/categories [get]
func (h *ReportHandler) GetCategoryTotals(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	totals, err := h.reportService.CategoryTotals(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": totals})
}

// GetSummary returns the income/expense dashboard summary.
// @Summary     Dashboard summary
// @Description Get total income, total expense, and balance
// @Tags        reports
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.Summary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /reports/summary [get]
func (h *ReportHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.reportService.GetSummary(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
