package api

import (
	"errors"
	"net/http"

	resdto "loyalty-ledger/internal/handler/dto/response"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

// LookupHandler serves the point-of-sale verification reads: resolve a
// scanned member card or a voucher code before committing a write.
type LookupHandler struct {
	customerQueries queries.CustomerQueries
	voucherQueries  queries.VoucherQueries
}

func NewLookupHandler(customerQueries queries.CustomerQueries, voucherQueries queries.VoucherQueries) *LookupHandler {
	return &LookupHandler{
		customerQueries: customerQueries,
		voucherQueries:  voucherQueries,
	}
}

// @Summary Get customer by member ID
// @Description Resolve a scanned member card to the customer's balance
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param memberId path string true "Member ID"
// @Success 200 {object} resdto.CustomerLookupResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /customers/{memberId} [get]
func (h *LookupHandler) GetCustomer(c *gin.Context) {
	memberID := c.Param("memberId")

	view, err := h.customerQueries.GetByMemberID(c.Request.Context(), memberID)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrCustomerNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Customer not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromCustomerView(view))
}

// @Summary Get voucher by code
// @Description Resolve a voucher code; only active, unexpired vouchers resolve
// @Tags vouchers
// @Produce json
// @Security BearerAuth
// @Param code path string true "Voucher code"
// @Success 200 {object} resdto.VoucherLookupResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /vouchers/{code} [get]
func (h *LookupHandler) GetVoucher(c *gin.Context) {
	code := c.Param("code")

	view, err := h.voucherQueries.GetByCode(c.Request.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrVoucherNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Voucher not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromVoucherView(view))
}
