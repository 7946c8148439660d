package repository

import (
	"context"
	"time"

	"loyalty-ledger/internal/domain/voucher"
	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/infra/db"
	"loyalty-ledger/internal/pkg/pgconv"
	"loyalty-ledger/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type VoucherRepository struct {
	db db.DBTX
}

func NewVoucherRepository(dbtx db.DBTX) *VoucherRepository {
	return &VoucherRepository{db: dbtx}
}

const createVoucher = `
INSERT INTO vouchers (id, code, customer_id, stamps_used, status, expires_at)
VALUES ($1, $2, $3, $4, $5, $6)
`

func (r *VoucherRepository) Create(ctx context.Context, v *voucher.Voucher) error {
	_, err := r.db.Exec(ctx, createVoucher,
		v.ID(), v.Code().String(), v.CustomerID(), v.StampsUsed(), string(v.Status()), v.ExpiresAt(),
	)
	if err != nil {
		if isPgErrCode(err, pgErrCodeUniqueViolation) {
			return infra.WrapRepoErr("voucher code already exists", err, infra.KindDuplicateKey)
		}
		if isPgErrCode(err, pgErrCodeForeignKeyViolation) {
			return infra.WrapRepoErr("voucher references missing customer", err, infra.KindForeignKeyViolated)
		}
		if isPgErrCode(err, pgErrCodeCheckViolation) {
			return infra.WrapRepoErr("voucher rejected by check constraint", err, infra.KindCheckViolated)
		}
		return infra.WrapRepoErr("failed to create voucher", err)
	}
	return nil
}

// Status check and transition are one statement: of N racing redemptions
// exactly one matches status = 'active' and swaps it to 'used'.
const redeemVoucher = `
UPDATE vouchers
SET status = 'used',
    redeemed_at = $2,
    redeemed_location_id = $3,
    updated_at = now()
WHERE code = $1 AND status = 'active' AND expires_at > $2
RETURNING id, customer_id, stamps_used
`

func (r *VoucherRepository) Redeem(ctx context.Context, code string, now time.Time, locationID uuid.UUID) (*shared.RedeemedVoucher, error) {
	var red shared.RedeemedVoucher
	err := r.db.QueryRow(ctx, redeemVoucher, code, now, locationID).Scan(
		&red.ID, &red.CustomerID, &red.StampsUsed,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			// CAS did not apply; caller classifies via FindByCode
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to redeem voucher", err)
	}
	return &red, nil
}

const findVoucherByCode = `
SELECT id, code, customer_id, stamps_used, status, expires_at, redeemed_at
FROM vouchers
WHERE code = $1
`

func (r *VoucherRepository) FindByCode(ctx context.Context, code string) (*shared.VoucherSnapshot, error) {
	var (
		snap       shared.VoucherSnapshot
		redeemedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, findVoucherByCode, code).Scan(
		&snap.ID, &snap.Code, &snap.CustomerID, &snap.StampsUsed, &snap.Status, &snap.ExpiresAt, &redeemedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("voucher not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find voucher by code", err)
	}
	snap.RedeemedAt = pgconv.TimePtrFromPgtype(redeemedAt)
	return &snap, nil
}

const expireDueVouchers = `
UPDATE vouchers
SET status = 'expired', updated_at = now()
WHERE status = 'active' AND expires_at <= $1
`

func (r *VoucherRepository) ExpireDue(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, expireDueVouchers, now)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to expire vouchers", err)
	}
	return tag.RowsAffected(), nil
}
