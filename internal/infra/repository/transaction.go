package repository

import (
	"context"
	"errors"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/infra/db"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgErrCodeUniqueViolation     = "23505"
	pgErrCodeForeignKeyViolation = "23503"
	pgErrCodeCheckViolation      = "23514"
)

type TransactionRepository struct {
	db db.DBTX
}

func NewTransactionRepository(dbtx db.DBTX) *TransactionRepository {
	return &TransactionRepository{db: dbtx}
}

const createTransaction = `
INSERT INTO transactions (id, customer_id, cashier_id, location_id, amount_cents, stamps_earned, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`

func (r *TransactionRepository) Create(ctx context.Context, t *ledger.Transaction) error {
	_, err := r.db.Exec(ctx, createTransaction,
		t.ID, t.CustomerID, t.CashierID, t.LocationID, t.AmountCents, t.StampsEarned, t.CreatedAt,
	)
	if err != nil {
		if isPgErrCode(err, pgErrCodeForeignKeyViolation) {
			return infra.WrapRepoErr("transaction references missing row", err, infra.KindForeignKeyViolated)
		}
		if isPgErrCode(err, pgErrCodeCheckViolation) {
			return infra.WrapRepoErr("transaction rejected by check constraint", err, infra.KindCheckViolated)
		}
		return infra.WrapRepoErr("failed to create transaction", err)
	}
	return nil
}

func isPgErrCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
