package api

import (
	"errors"
	"net/http"

	reqdto "loyalty-ledger/internal/handler/dto/request"
	resdto "loyalty-ledger/internal/handler/dto/response"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/usecase/commands"
	"loyalty-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	ledgerCommands commands.LedgerCommands
	userQueries    queries.UserQueries
}

func NewLedgerHandler(ledgerCommands commands.LedgerCommands, userQueries queries.UserQueries) *LedgerHandler {
	return &LedgerHandler{
		ledgerCommands: ledgerCommands,
		userQueries:    userQueries,
	}
}

// @Summary Record purchase
// @Description Record a purchase and credit stamps when the amount clears the threshold
// @Tags purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RecordPurchaseRequest true "Purchase request"
// @Success 201 {object} resdto.PurchaseResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /purchases [post]
func (h *LedgerHandler) RecordPurchase(c *gin.Context) {
	cashierID, locationID, ok := cashierContext(c, h.userQueries)
	if !ok {
		return
	}

	var req reqdto.RecordPurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.ledgerCommands.RecordPurchase(c.Request.Context(), commands.RecordPurchaseInput{
		MemberID:    req.TrimmedMemberID(),
		AmountCents: req.AmountCents,
		CashierID:   cashierID,
		LocationID:  locationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Customer not found",
			})
		case errors.Is(err, errs.ErrBelowMinimumAmount):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Purchase amount does not qualify for a stamp",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromPurchaseResult(result))
}

// @Summary Exchange stamps for a voucher
// @Description Debit the configured stamp cost and mint an active voucher
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ExchangeStampsRequest true "Exchange request"
// @Success 201 {object} resdto.ExchangeResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /vouchers/exchange [post]
func (h *LedgerHandler) ExchangeStamps(c *gin.Context) {
	cashierID, locationID, ok := cashierContext(c, h.userQueries)
	if !ok {
		return
	}

	var req reqdto.ExchangeStampsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.ledgerCommands.ExchangeStamps(c.Request.Context(), commands.ExchangeStampsInput{
		MemberID:   req.TrimmedMemberID(),
		CashierID:  cashierID,
		LocationID: locationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Customer not found",
			})
		case errors.Is(err, errs.ErrInsufficientStamps):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Insufficient stamp balance",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromExchangeResult(result))
}
