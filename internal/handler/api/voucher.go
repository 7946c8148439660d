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

type VoucherHandler struct {
	redemptionCommands commands.RedemptionCommands
	userQueries        queries.UserQueries
}

func NewVoucherHandler(redemptionCommands commands.RedemptionCommands, userQueries queries.UserQueries) *VoucherHandler {
	return &VoucherHandler{
		redemptionCommands: redemptionCommands,
		userQueries:        userQueries,
	}
}

// @Summary Redeem voucher
// @Description Consume an active voucher exactly once
// @Tags vouchers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RedeemVoucherRequest true "Redeem request"
// @Success 200 {object} resdto.RedemptionResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /vouchers/redeem [post]
func (h *VoucherHandler) RedeemVoucher(c *gin.Context) {
	cashierID, locationID, ok := cashierContext(c, h.userQueries)
	if !ok {
		return
	}

	var req reqdto.RedeemVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.redemptionCommands.RedeemVoucher(c.Request.Context(), commands.RedeemVoucherInput{
		Code:       req.NormalizedCode(),
		CashierID:  cashierID,
		LocationID: locationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrVoucherNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Voucher not found",
			})
		case errors.Is(err, errs.ErrAlreadyRedeemed):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Voucher has already been redeemed",
			})
		case errors.Is(err, errs.ErrVoucherInvalidOrExpired):
			c.JSON(http.StatusGone, gin.H{
				"error": "Voucher is expired or no longer valid",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRedemptionResult(result))
}
