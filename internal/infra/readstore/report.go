package readstore

import (
	"context"
	"time"

	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/infra/db"
	"loyalty-ledger/internal/usecase/queries"
)

type ReportReadStore struct {
	db db.DBTX
}

func NewReportReadStore(dbtx db.DBTX) *ReportReadStore {
	return &ReportReadStore{db: dbtx}
}

const findTransactionsBetween = `
SELECT t.id, c.member_id, c.name, u.email, l.name, t.amount_cents, t.stamps_earned, t.created_at
FROM transactions t
JOIN customers c ON c.id = t.customer_id
JOIN users u ON u.id = t.cashier_id
JOIN locations l ON l.id = t.location_id
WHERE t.created_at >= $1 AND t.created_at < $2
ORDER BY t.created_at
LIMIT $3
`

func (r *ReportReadStore) FindTransactionsBetween(ctx context.Context, from, to time.Time, limit int32) ([]*queries.TransactionReportRow, error) {
	rows, err := r.db.Query(ctx, findTransactionsBetween, from, to, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query transactions report", err)
	}
	defer rows.Close()

	var result []*queries.TransactionReportRow
	for rows.Next() {
		var row queries.TransactionReportRow
		if err := rows.Scan(
			&row.ID,
			&row.MemberID,
			&row.CustomerName,
			&row.CashierEmail,
			&row.LocationName,
			&row.AmountCents,
			&row.StampsEarned,
			&row.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan transaction report row", err)
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read transactions report", err)
	}

	return result, nil
}

const findRedemptionsBetween = `
SELECT r.id, v.code, c.member_id, c.name, u.email, l.name, v.stamps_used, r.redeemed_at
FROM redemptions r
JOIN vouchers v ON v.id = r.voucher_id
JOIN customers c ON c.id = r.customer_id
JOIN users u ON u.id = r.cashier_id
JOIN locations l ON l.id = r.location_id
WHERE r.redeemed_at >= $1 AND r.redeemed_at < $2
ORDER BY r.redeemed_at
LIMIT $3
`

func (r *ReportReadStore) FindRedemptionsBetween(ctx context.Context, from, to time.Time, limit int32) ([]*queries.RedemptionReportRow, error) {
	rows, err := r.db.Query(ctx, findRedemptionsBetween, from, to, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query redemptions report", err)
	}
	defer rows.Close()

	var result []*queries.RedemptionReportRow
	for rows.Next() {
		var row queries.RedemptionReportRow
		if err := rows.Scan(
			&row.ID,
			&row.VoucherCode,
			&row.MemberID,
			&row.CustomerName,
			&row.CashierEmail,
			&row.LocationName,
			&row.StampsUsed,
			&row.RedeemedAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan redemption report row", err)
		}
		result = append(result, &row)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read redemptions report", err)
	}

	return result, nil
}
