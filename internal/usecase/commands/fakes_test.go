//go:build unit

package commands_test

import (
	"context"
	"sync"
	"time"

	"loyalty-ledger/internal/domain/ledger"
	"loyalty-ledger/internal/domain/user"
	"loyalty-ledger/internal/domain/voucher"
	"loyalty-ledger/internal/infra"
	"loyalty-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the write side. It reproduces the
// contracts the commands rely on: conditional spend, the redeem
// compare-and-swap, and the unique code constraint. All methods hold one
// mutex, so each call is atomic the way a single SQL statement is; txMu
// belongs to fakeUow and serializes whole transactions.
type fakeStore struct {
	mu   sync.Mutex
	txMu sync.Mutex

	customers   map[uuid.UUID]*fakeCustomerRow
	byMemberID  map[string]uuid.UUID
	vouchers    map[string]*fakeVoucherRow
	txLog       []*ledger.Transaction
	redemptions []*ledger.Redemption
	users       []*user.User

	// Failure injection: when set, the matching repository call fails.
	earnErr              error
	transactionCreateErr error
	voucherCreateErr     error
}

type fakeStoreState struct {
	customers   map[uuid.UUID]*fakeCustomerRow
	byMemberID  map[string]uuid.UUID
	vouchers    map[string]*fakeVoucherRow
	txLog       []*ledger.Transaction
	redemptions []*ledger.Redemption
	users       []*user.User
}

func (s *fakeStore) snapshot() fakeStoreState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := fakeStoreState{
		customers:   make(map[uuid.UUID]*fakeCustomerRow, len(s.customers)),
		byMemberID:  make(map[string]uuid.UUID, len(s.byMemberID)),
		vouchers:    make(map[string]*fakeVoucherRow, len(s.vouchers)),
		txLog:       append([]*ledger.Transaction(nil), s.txLog...),
		redemptions: append([]*ledger.Redemption(nil), s.redemptions...),
		users:       append([]*user.User(nil), s.users...),
	}
	for id, row := range s.customers {
		cp := *row
		st.customers[id] = &cp
	}
	for memberID, id := range s.byMemberID {
		st.byMemberID[memberID] = id
	}
	for code, row := range s.vouchers {
		cp := *row
		st.vouchers[code] = &cp
	}
	return st
}

func (s *fakeStore) restore(st fakeStoreState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = st.customers
	s.byMemberID = st.byMemberID
	s.vouchers = st.vouchers
	s.txLog = st.txLog
	s.redemptions = st.redemptions
	s.users = st.users
}

type fakeCustomerRow struct {
	id            uuid.UUID
	memberID      string
	name          string
	currentStamps int32
	totalEarned   int32
	totalUsed     int32
	isActive      bool
}

type fakeVoucherRow struct {
	id         uuid.UUID
	code       string
	customerID uuid.UUID
	stampsUsed int32
	status     voucher.Status
	expiresAt  time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		customers:  make(map[uuid.UUID]*fakeCustomerRow),
		byMemberID: make(map[string]uuid.UUID),
		vouchers:   make(map[string]*fakeVoucherRow),
	}
}

func (s *fakeStore) addCustomer(memberID string, stamps int32) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.customers[id] = &fakeCustomerRow{
		id:            id,
		memberID:      memberID,
		name:          "Test Customer",
		currentStamps: stamps,
		totalEarned:   stamps,
		isActive:      true,
	}
	s.byMemberID[memberID] = id
	return id
}

func (s *fakeStore) addVoucher(code string, customerID uuid.UUID, status voucher.Status, expiresAt time.Time) uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := uuid.New()
	s.vouchers[code] = &fakeVoucherRow{
		id:         id,
		code:       code,
		customerID: customerID,
		stampsUsed: 5,
		status:     status,
		expiresAt:  expiresAt,
	}
	return id
}

func (s *fakeStore) customerBalance(id uuid.UUID) int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.customers[id].currentStamps
}

func (s *fakeStore) transactionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.txLog)
}

func (s *fakeStore) redemptionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redemptions)
}

// fakeUow mirrors the real contract: fn either commits as a whole or leaves
// no trace. A failing fn restores the state captured at entry; serializing
// transactions on txMu stands in for row-level locking.
type fakeUow struct {
	store *fakeStore
}

func (u *fakeUow) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.store.txMu.Lock()
	defer u.store.txMu.Unlock()

	before := u.store.snapshot()
	if err := fn(ctx, &fakeTx{store: u.store}); err != nil {
		u.store.restore(before)
		return err
	}
	return nil
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) Customers() shared.CustomerRepository     { return (*fakeCustomerRepo)(t) }
func (t *fakeTx) Transactions() shared.TransactionRepository { return (*fakeTransactionRepo)(t) }
func (t *fakeTx) Vouchers() shared.VoucherRepository       { return (*fakeVoucherRepo)(t) }
func (t *fakeTx) Redemptions() shared.RedemptionRepository { return (*fakeRedemptionRepo)(t) }
func (t *fakeTx) Users() shared.UserRepository             { return (*fakeUserRepo)(t) }

type fakeCustomerRepo fakeTx

func (r *fakeCustomerRepo) FindByMemberID(_ context.Context, memberID string) (*shared.CustomerSnapshot, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.byMemberID[memberID]
	if !ok {
		return nil, infra.WrapRepoErr("customer not found", nil, infra.KindNotFound)
	}
	return snapshotOf(s.customers[id]), nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uuid.UUID) (*shared.CustomerSnapshot, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.customers[id]
	if !ok {
		return nil, infra.WrapRepoErr("customer not found", nil, infra.KindNotFound)
	}
	return snapshotOf(row), nil
}

func (r *fakeCustomerRepo) ApplyEarn(_ context.Context, customerID uuid.UUID, stamps int32, _ time.Time) (int32, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.earnErr != nil {
		return 0, s.earnErr
	}
	row := s.customers[customerID]
	row.currentStamps += stamps
	row.totalEarned += stamps
	return row.currentStamps, nil
}

func (r *fakeCustomerRepo) ApplySpend(_ context.Context, customerID uuid.UUID, stamps int32) (int32, bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	row := s.customers[customerID]
	if row.currentStamps < stamps {
		return 0, false, nil
	}
	row.currentStamps -= stamps
	row.totalUsed += stamps
	return row.currentStamps, true, nil
}

type fakeTransactionRepo fakeTx

func (r *fakeTransactionRepo) Create(_ context.Context, tr *ledger.Transaction) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.transactionCreateErr != nil {
		return s.transactionCreateErr
	}
	s.txLog = append(s.txLog, tr)
	return nil
}

type fakeVoucherRepo fakeTx

func (r *fakeVoucherRepo) Create(_ context.Context, v *voucher.Voucher) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.voucherCreateErr != nil {
		return s.voucherCreateErr
	}
	code := v.Code().String()
	if _, exists := s.vouchers[code]; exists {
		return infra.WrapRepoErr("duplicate voucher code", nil, infra.KindDuplicateKey)
	}
	s.vouchers[code] = &fakeVoucherRow{
		id:         v.ID(),
		code:       code,
		customerID: v.CustomerID(),
		stampsUsed: v.StampsUsed(),
		status:     v.Status(),
		expiresAt:  v.ExpiresAt(),
	}
	return nil
}

func (r *fakeVoucherRepo) Redeem(_ context.Context, code string, now time.Time, _ uuid.UUID) (*shared.RedeemedVoucher, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.vouchers[code]
	if !ok || row.status != voucher.StatusActive || !now.Before(row.expiresAt) {
		return nil, nil
	}
	row.status = voucher.StatusUsed
	return &shared.RedeemedVoucher{
		ID:         row.id,
		CustomerID: row.customerID,
		StampsUsed: row.stampsUsed,
	}, nil
}

func (r *fakeVoucherRepo) FindByCode(_ context.Context, code string) (*shared.VoucherSnapshot, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.vouchers[code]
	if !ok {
		return nil, infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
	}
	return &shared.VoucherSnapshot{
		ID:         row.id,
		Code:       row.code,
		CustomerID: row.customerID,
		StampsUsed: row.stampsUsed,
		Status:     string(row.status),
		ExpiresAt:  row.expiresAt,
	}, nil
}

func (r *fakeVoucherRepo) ExpireDue(_ context.Context, now time.Time) (int64, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, row := range s.vouchers {
		if row.status == voucher.StatusActive && !now.Before(row.expiresAt) {
			row.status = voucher.StatusExpired
			n++
		}
	}
	return n, nil
}

type fakeRedemptionRepo fakeTx

func (r *fakeRedemptionRepo) Create(_ context.Context, rec *ledger.Redemption) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.redemptions {
		if existing.VoucherID == rec.VoucherID {
			return infra.WrapRepoErr("duplicate redemption", nil, infra.KindDuplicateKey)
		}
	}
	s.redemptions = append(s.redemptions, rec)
	return nil
}

type fakeUserRepo fakeTx

func (r *fakeUserRepo) Create(_ context.Context, u *user.User) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email().Value() == u.Email().Value() {
			return infra.WrapRepoErr("duplicate email", nil, infra.KindDuplicateKey)
		}
	}
	s.users = append(s.users, u)
	return nil
}

func (r *fakeUserRepo) UpdateLastLogin(_ context.Context, _ uuid.UUID) error {
	return nil
}

func snapshotOf(row *fakeCustomerRow) *shared.CustomerSnapshot {
	return &shared.CustomerSnapshot{
		ID:            row.id,
		MemberID:      row.memberID,
		Name:          row.name,
		CurrentStamps: row.currentStamps,
		TotalEarned:   row.totalEarned,
		TotalUsed:     row.totalUsed,
		IsActive:      row.isActive,
	}
}
