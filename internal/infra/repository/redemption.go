package repository

import (
	"context"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/infra/db"
)

type RedemptionRepository struct {
	db db.DBTX
}

func NewRedemptionRepository(dbtx db.DBTX) *RedemptionRepository {
	return &RedemptionRepository{db: dbtx}
}

const createRedemption = `
INSERT INTO redemptions (id, voucher_id, customer_id, cashier_id, location_id, redeemed_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

func (r *RedemptionRepository) Create(ctx context.Context, red *ledger.Redemption) error {
	_, err := r.db.Exec(ctx, createRedemption,
		red.ID, red.VoucherID, red.CustomerID, red.CashierID, red.LocationID, red.RedeemedAt,
	)
	if err != nil {
		if isPgErrCode(err, pgErrCodeUniqueViolation) {
			// A second redemption row for the same voucher should be
			// unreachable behind the status CAS.
			return infra.WrapRepoErr("redemption already exists for voucher", err, infra.KindDuplicateKey)
		}
		if isPgErrCode(err, pgErrCodeForeignKeyViolation) {
			return infra.WrapRepoErr("redemption references missing row", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to create redemption", err)
	}
	return nil
}
