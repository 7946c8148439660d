package readstore

import (
	"context"

	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/infra/db"
	"loyalty-ledger/internal/pkg/pgconv"
	"loyalty-ledger/internal/usecase/queries"
)

type CustomerReadStore struct {
	db db.DBTX
}

func NewCustomerReadStore(dbtx db.DBTX) *CustomerReadStore {
	return &CustomerReadStore{db: dbtx}
}

const findCustomerViewByMemberID = `
SELECT id, member_id, name, current_stamps
FROM customers
WHERE member_id = $1 AND is_active
`

func (r *CustomerReadStore) FindByMemberID(ctx context.Context, memberID string) (*queries.CustomerView, error) {
	var view queries.CustomerView
	err := r.db.QueryRow(ctx, findCustomerViewByMemberID, memberID).Scan(
		&view.ID,
		&view.User.MemberID,
		&view.User.Name,
		&view.CurrentStamps,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("customer not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find customer by member ID", err)
	}
	view.User.ID = view.ID
	return &view, nil
}
