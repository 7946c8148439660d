//go:build unit

package api_test

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"loyalty-ledger/internal/handler/api"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/usecase/queries"
	queriesmock "loyalty-ledger/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LookupHandlerTestSuite struct {
	suite.Suite
	router        *gin.Engine
	mockCtrl      *gomock.Controller
	mockCustomers *queriesmock.MockCustomerQueries
	mockVouchers  *queriesmock.MockVoucherQueries
}

func (s *LookupHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCustomers = queriesmock.NewMockCustomerQueries(s.mockCtrl)
	s.mockVouchers = queriesmock.NewMockVoucherQueries(s.mockCtrl)
	handler := api.NewLookupHandler(s.mockCustomers, s.mockVouchers)

	s.router.GET("/customers/:memberId", handler.GetCustomer)
	s.router.GET("/vouchers/:code", handler.GetVoucher)
}

func (s *LookupHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLookupHandlerSuite(t *testing.T) {
	suite.Run(t, new(LookupHandlerTestSuite))
}

func (s *LookupHandlerTestSuite) TestGetCustomer() {
	s.Run("success: 200 with balance", func() {
		view := &queries.CustomerView{
			ID:            uuid.New(),
			CurrentStamps: 4,
		}
		view.User.Name = "Taro Yamada"
		view.User.MemberID = "M-001"

		s.mockCustomers.EXPECT().GetByMemberID(gomock.Any(), "M-001").
			Return(view, nil).Times(1)

		rec := performJSON(s.router, http.MethodGet, "/customers/M-001", nil)

		s.Equal(http.StatusOK, rec.Code)
		var resp struct {
			MemberID      string `json:"member_id"`
			Name          string `json:"name"`
			CurrentStamps int32  `json:"current_stamps"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("M-001", resp.MemberID)
		s.Equal("Taro Yamada", resp.Name)
		s.Equal(int32(4), resp.CurrentStamps)
	})

	s.Run("error: 404 unknown member", func() {
		s.mockCustomers.EXPECT().GetByMemberID(gomock.Any(), "M-404").
			Return(nil, errs.ErrCustomerNotFound).Times(1)

		rec := performJSON(s.router, http.MethodGet, "/customers/M-404", nil)

		s.Equal(http.StatusNotFound, rec.Code)
	})
}

func (s *LookupHandlerTestSuite) TestGetVoucher() {
	s.Run("success: 200 with holder identity", func() {
		view := &queries.VoucherView{
			ID:         uuid.New(),
			Code:       "ABCDEFGH2345",
			StampsUsed: 5,
			ExpiresAt:  time.Now().Add(time.Hour),
		}
		view.Customer.User.Name = "Taro Yamada"
		view.Customer.User.MemberID = "M-001"

		s.mockVouchers.EXPECT().GetByCode(gomock.Any(), "ABCDEFGH2345").
			Return(view, nil).Times(1)

		rec := performJSON(s.router, http.MethodGet, "/vouchers/ABCDEFGH2345", nil)

		s.Equal(http.StatusOK, rec.Code)
		var resp struct {
			Code     string `json:"code"`
			Customer struct {
				MemberID string `json:"member_id"`
			} `json:"customer"`
		}
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
		s.Equal("ABCDEFGH2345", resp.Code)
		s.Equal("M-001", resp.Customer.MemberID)
	})

	s.Run("error: 404 for expired or used vouchers", func() {
		s.mockVouchers.EXPECT().GetByCode(gomock.Any(), "ABCDEFGH2345").
			Return(nil, errs.ErrVoucherNotFound).Times(1)

		rec := performJSON(s.router, http.MethodGet, "/vouchers/ABCDEFGH2345", nil)

		s.Equal(http.StatusNotFound, rec.Code)
	})
}
