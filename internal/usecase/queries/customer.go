package queries

import (
	"context"

	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/pkg/errs"
)

// CustomerQueries resolves scan input to the canonical customer record.
// NotFound is an expected outcome, not an exceptional one.
type CustomerQueries interface {
	GetByMemberID(ctx context.Context, memberID string) (*CustomerView, error)
}

type CustomerReadStore interface {
	FindByMemberID(ctx context.Context, memberID string) (*CustomerView, error)
}

type customerQueriesImpl struct {
	readStore CustomerReadStore
}

func NewCustomerQueries(readStore CustomerReadStore) CustomerQueries {
	return &customerQueriesImpl{readStore: readStore}
}

func (q *customerQueriesImpl) GetByMemberID(ctx context.Context, memberID string) (*CustomerView, error) {
	if memberID == "" {
		return nil, errs.ErrCustomerNotFound
	}

	view, err := q.readStore.FindByMemberID(ctx, memberID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrCustomerNotFound
		}
		return nil, err
	}
	return view, nil
}
