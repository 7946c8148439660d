package readstore

import (
	"context"
	"time"

	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/infra/db"
	"loyalty-ledger/internal/pkg/pgconv"
	"loyalty-ledger/internal/usecase/queries"
)

type VoucherReadStore struct {
	db db.DBTX
}

func NewVoucherReadStore(dbtx db.DBTX) *VoucherReadStore {
	return &VoucherReadStore{db: dbtx}
}

// The ACTIVE+unexpired filter belongs to the query itself: rows past
// expires_at never resolve, whatever their stored status says.
const findRedeemableVoucherByCode = `
SELECT v.id, v.code, v.stamps_used, v.expires_at, c.id, c.name, c.member_id
FROM vouchers v
JOIN customers c ON c.id = v.customer_id
WHERE v.code = $1 AND v.status = 'active' AND v.expires_at > $2
`

func (r *VoucherReadStore) FindRedeemableByCode(ctx context.Context, code string, now time.Time) (*queries.VoucherView, error) {
	var view queries.VoucherView
	err := r.db.QueryRow(ctx, findRedeemableVoucherByCode, code, now).Scan(
		&view.ID,
		&view.Code,
		&view.StampsUsed,
		&view.ExpiresAt,
		&view.Customer.ID,
		&view.Customer.User.Name,
		&view.Customer.User.MemberID,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher by code", err)
	}
	return &view, nil
}
