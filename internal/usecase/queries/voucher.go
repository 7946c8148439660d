package queries

import (
	"context"
	"time"

	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/pkg/clock"
	"loyalty-ledger/internal/pkg/errs"
)

// VoucherQueries resolves a voucher code for point-of-sale verification.
// Only active, unexpired vouchers resolve; expiry is evaluated against the
// clock at read time, so a stale 'active' row past expires_at is NotFound.
type VoucherQueries interface {
	GetByCode(ctx context.Context, code string) (*VoucherView, error)
}

type VoucherReadStore interface {
	FindRedeemableByCode(ctx context.Context, code string, now time.Time) (*VoucherView, error)
}

type voucherQueriesImpl struct {
	readStore VoucherReadStore
	clock     clock.Clock
}

func NewVoucherQueries(readStore VoucherReadStore, clock clock.Clock) VoucherQueries {
	return &voucherQueriesImpl{readStore: readStore, clock: clock}
}

func (q *voucherQueriesImpl) GetByCode(ctx context.Context, code string) (*VoucherView, error) {
	if code == "" {
		return nil, errs.ErrVoucherNotFound
	}

	view, err := q.readStore.FindRedeemableByCode(ctx, code, q.clock.Now())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrVoucherNotFound
		}
		return nil, err
	}
	return view, nil
}
