package api

import (
	"errors"
	"net/http"
	"time"

	resdto "loyalty-ledger/internal/handler/dto/response"
	"loyalty-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportQueries queries.ReportQueries
}

func NewReportHandler(reportQueries queries.ReportQueries) *ReportHandler {
	return &ReportHandler{
		reportQueries: reportQueries,
	}
}

// @Summary Transactions report
// @Description List purchases in a date range (admin only)
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string true "Range start (RFC 3339)"
// @Param to query string true "Range end (RFC 3339)"
// @Success 200 {object} resdto.TransactionReportResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /reports/transactions [get]
func (h *ReportHandler) GetTransactions(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	rows, err := h.reportQueries.TransactionsBetween(c.Request.Context(), from, to)
	if err != nil {
		writeReportError(c, err)
		return
	}

	response, err := resdto.FromTransactionReportRows(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, response)
}

// @Summary Redemptions report
// @Description List voucher redemptions in a date range (admin only)
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param from query string true "Range start (RFC 3339)"
// @Param to query string true "Range end (RFC 3339)"
// @Success 200 {object} resdto.RedemptionReportResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /reports/redemptions [get]
func (h *ReportHandler) GetRedemptions(c *gin.Context) {
	from, to, ok := parseDateRange(c)
	if !ok {
		return
	}

	rows, err := h.reportQueries.RedemptionsBetween(c.Request.Context(), from, to)
	if err != nil {
		writeReportError(c, err)
		return
	}

	response, err := resdto.FromRedemptionReportRows(rows)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, response)
}

// parseDateRange accepts RFC 3339 timestamps or bare dates; a bare "to"
// date is treated as inclusive by rolling it to the next midnight.
func parseDateRange(c *gin.Context) (from, to time.Time, ok bool) {
	from, fromErr := parseDateOrTime(c.Query("from"), false)
	to, toErr := parseDateOrTime(c.Query("to"), true)
	if fromErr != nil || toErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Query parameters 'from' and 'to' must be RFC 3339 timestamps or YYYY-MM-DD dates",
		})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

func parseDateOrTime(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}

func writeReportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, queries.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "'from' must be before 'to'",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
