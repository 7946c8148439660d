package commands

import (
	"context"

	"loyalty-ledger/internal/pkg/clock"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/usecase/shared"
)

type SweepCommands interface {
	// ExpireDueVouchers marks every active voucher past its expiry as
	// expired and reports how many rows flipped. Purely a bookkeeping
	// pass: redemption and lookup already treat overdue rows as expired.
	ExpireDueVouchers(ctx context.Context) (int64, error)
}

type sweepCommandsImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewSweepCommands(uow shared.UnitOfWork, clk clock.Clock) SweepCommands {
	return &sweepCommandsImpl{uow: uow, clock: clk}
}

func (c *sweepCommandsImpl) ExpireDueVouchers(ctx context.Context) (int64, error) {
	now := c.clock.Now()
	var expired int64
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Vouchers().ExpireDue(ctx, now)
		if err != nil {
			return errs.Wrap(err, "failed to expire vouchers")
		}
		expired = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return expired, nil
}
