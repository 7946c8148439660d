package queries

import (
	"context"
	"time"

	"loyalty-ledger/internal/pkg/errs"
)

var ErrInvalidDateRange = errs.New("invalid date range")

const maxReportRows = 1000

// ReportQueries exposes the append-only Transaction/Redemption logs for a
// date range. Formatting is the consumer's concern.
type ReportQueries interface {
	TransactionsBetween(ctx context.Context, from, to time.Time) ([]*TransactionReportRow, error)
	RedemptionsBetween(ctx context.Context, from, to time.Time) ([]*RedemptionReportRow, error)
}

type ReportReadStore interface {
	FindTransactionsBetween(ctx context.Context, from, to time.Time, limit int32) ([]*TransactionReportRow, error)
	FindRedemptionsBetween(ctx context.Context, from, to time.Time, limit int32) ([]*RedemptionReportRow, error)
}

type reportQueriesImpl struct {
	readStore ReportReadStore
}

func NewReportQueries(readStore ReportReadStore) ReportQueries {
	return &reportQueriesImpl{readStore: readStore}
}

func (q *reportQueriesImpl) TransactionsBetween(ctx context.Context, from, to time.Time) ([]*TransactionReportRow, error) {
	if !from.Before(to) {
		return nil, ErrInvalidDateRange
	}
	return q.readStore.FindTransactionsBetween(ctx, from, to, maxReportRows)
}

func (q *reportQueriesImpl) RedemptionsBetween(ctx context.Context, from, to time.Time) ([]*RedemptionReportRow, error) {
	if !from.Before(to) {
		return nil, ErrInvalidDateRange
	}
	return q.readStore.FindRedemptionsBetween(ctx, from, to, maxReportRows)
}
