package repository

import (
	"context"
	"time"

	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/infra/db"
	"loyalty-ledger/internal/pkg/pgconv"
	"loyalty-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type CustomerRepository struct {
	db db.DBTX
}

func NewCustomerRepository(dbtx db.DBTX) *CustomerRepository {
	return &CustomerRepository{db: dbtx}
}

const findCustomerByMemberID = `
SELECT id, member_id, name, current_stamps, total_stamps_earned, total_stamps_used, is_active
FROM customers
WHERE member_id = $1 AND is_active
`

func (r *CustomerRepository) FindByMemberID(ctx context.Context, memberID string) (*shared.CustomerSnapshot, error) {
	var snap shared.CustomerSnapshot
	err := r.db.QueryRow(ctx, findCustomerByMemberID, memberID).Scan(
		&snap.ID,
		&snap.MemberID,
		&snap.Name,
		&snap.CurrentStamps,
		&snap.TotalEarned,
		&snap.TotalUsed,
		&snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer by member ID", err)
	}
	return &snap, nil
}

const findCustomerByID = `
SELECT id, member_id, name, current_stamps, total_stamps_earned, total_stamps_used, is_active
FROM customers
WHERE id = $1 AND is_active
`

func (r *CustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*shared.CustomerSnapshot, error) {
	var snap shared.CustomerSnapshot
	err := r.db.QueryRow(ctx, findCustomerByID, id).Scan(
		&snap.ID,
		&snap.MemberID,
		&snap.Name,
		&snap.CurrentStamps,
		&snap.TotalEarned,
		&snap.TotalUsed,
		&snap.IsActive,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer by ID", err)
	}
	return &snap, nil
}

// Single UPDATE keeps the increment atomic; concurrent earns against the
// same customer serialize on the row lock, so no update is ever lost.
const applyEarn = `
UPDATE customers
SET current_stamps = current_stamps + $2,
    total_stamps_earned = total_stamps_earned + $2,
    last_transaction_at = $3,
    updated_at = now()
WHERE id = $1 AND is_active
RETURNING current_stamps
`

func (r *CustomerRepository) ApplyEarn(ctx context.Context, customerID uuid.UUID, stamps int32, at time.Time) (int32, error) {
	var balance int32
	err := r.db.QueryRow(ctx, applyEarn, customerID, stamps, at).Scan(&balance)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		if isPgErrCode(err, pgErrCodeCheckViolation) {
			return 0, infra.WrapRepoErr("stamp counters rejected by check constraint", err, infra.KindCheckViolated)
		}
		return 0, infra.WrapRepoErr("failed to apply stamp earn", err)
	}
	return balance, nil
}

// The balance guard lives in the WHERE clause so check and decrement are
// one indivisible statement; the CHECK constraints are the second line of
// defense.
const applySpend = `
UPDATE customers
SET current_stamps = current_stamps - $2,
    total_stamps_used = total_stamps_used + $2,
    updated_at = now()
WHERE id = $1 AND is_active AND current_stamps >= $2
RETURNING current_stamps
`

func (r *CustomerRepository) ApplySpend(ctx context.Context, customerID uuid.UUID, stamps int32) (int32, bool, error) {
	var balance int32
	err := r.db.QueryRow(ctx, applySpend, customerID, stamps).Scan(&balance)
	if err != nil {
		if pgconv.IsNoRows(err) {
			// Guard failed: insufficient balance or missing customer
			return 0, false, nil
		}
		if isPgErrCode(err, pgErrCodeCheckViolation) {
			return 0, false, infra.WrapRepoErr("stamp counters rejected by check constraint", err, infra.KindCheckViolated)
		}
		return 0, false, infra.WrapRepoErr("failed to apply stamp spend", err)
	}
	return balance, true, nil
}
