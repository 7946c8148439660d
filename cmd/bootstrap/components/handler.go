package components

import (
	"loyalty-ledger/internal/handler"
	"loyalty-ledger/internal/handler/api"
	"loyalty-ledger/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewLedgerHandler,
		api.NewVoucherHandler,
		api.NewLookupHandler,
		api.NewReportHandler,
		api.NewUserHandler,
		middleware.NewAuthMiddleware,
		newHandlers,
	),
	fx.Invoke(handler.NewRouter),
)

func newHandlers(
	auth *api.AuthHandler,
	ledger *api.LedgerHandler,
	voucher *api.VoucherHandler,
	lookup *api.LookupHandler,
	report *api.ReportHandler,
	user *api.UserHandler,
) handler.Handlers {
	return handler.Handlers{
		Auth:    auth,
		Ledger:  ledger,
		Voucher: voucher,
		Lookup:  lookup,
		Report:  report,
		User:    user,
	}
}
