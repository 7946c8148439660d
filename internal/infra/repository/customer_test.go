//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"loyalty-ledger/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

// errDB fails every query with a fixed error, standing in for the driver
// surfacing a SQLSTATE.
type errDB struct {
	err error
}

func (d errDB) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, d.err
}

func (d errDB) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, d.err
}

func (d errDB) QueryRow(context.Context, string, ...any) pgx.Row {
	return errRow{err: d.err}
}

type errRow struct {
	err error
}

func (r errRow) Scan(...any) error {
	return r.err
}

func TestCustomerRepository_ErrorKinds(t *testing.T) {
	ctx := context.Background()
	checkErr := &pgconn.PgError{Code: "23514", ConstraintName: "customers_stamps_non_negative"}

	t.Run("earn maps a check violation", func(t *testing.T) {
		repo := NewCustomerRepository(errDB{err: checkErr})

		_, err := repo.ApplyEarn(ctx, uuid.New(), 1, time.Now())

		assert.True(t, infra.IsKind(err, infra.KindCheckViolated))
	})

	t.Run("spend maps a check violation", func(t *testing.T) {
		repo := NewCustomerRepository(errDB{err: checkErr})

		_, _, err := repo.ApplySpend(ctx, uuid.New(), 1)

		assert.True(t, infra.IsKind(err, infra.KindCheckViolated))
	})

	t.Run("missing row on earn maps to not found", func(t *testing.T) {
		repo := NewCustomerRepository(errDB{err: pgx.ErrNoRows})

		_, err := repo.ApplyEarn(ctx, uuid.New(), 1, time.Now())

		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("missing row on spend reports a failed guard, not an error", func(t *testing.T) {
		repo := NewCustomerRepository(errDB{err: pgx.ErrNoRows})

		_, ok, err := repo.ApplySpend(ctx, uuid.New(), 1)

		assert.NoError(t, err)
		assert.False(t, ok)
	})
}
