// Package ledgertest provides in-memory stores for exercising the ledger services without a database
package ledgertest

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-ledger/internal/domain/error"
)

// NopUnitOfWork satisfies persistence.UnitOfWork without a transaction
type NopUnitOfWork struct{}

func (NopUnitOfWork) Begin(ctx context.Context) (context.Context, error) { return ctx, nil }
func (NopUnitOfWork) Commit(context.Context) error                      { return nil }
func (NopUnitOfWork) Rollback(context.Context) error                    { return nil }

// Users is a fixed set of existing user IDs
type Users map[uint64]struct{}

// NewUsers creates a user set
func NewUsers(ids ...uint64) Users {
	u := make(Users, len(ids))
	for _, id := range ids {
		u[id] = struct{}{}
	}
	return u
}

func (u Users) FindByID(_ context.Context, id uint64) (*entity.User, error) {
	if _, ok := u[id]; !ok {
		return nil, errs.ErrUserNotFound
	}
	return &entity.User{ID: id}, nil
}

// SaldoStore is an in-memory persistence.SaldoRepository. Values are copied in and out.
// SaveHook, when set, runs before every Save and can inject failures.
type SaldoStore struct {
	mu       sync.Mutex
	nextID   uint64
	rows     map[uint64]entity.Saldo
	SaveHook func(s *entity.Saldo) error
}

// NewSaldoStore creates a store seeded with userID -> total
func NewSaldoStore(seed map[uint64]int64) *SaldoStore {
	s := &SaldoStore{rows: make(map[uint64]entity.Saldo)}
	users := make([]uint64, 0, len(seed))
	for userID := range seed {
		users = append(users, userID)
	}
	sort.Slice(users, func(i, j int) bool { return users[i] < users[j] })
	for _, userID := range users {
		s.nextID++
		s.rows[s.nextID] = entity.Saldo{ID: s.nextID, UserID: userID, TotalBalance: seed[userID]}
	}
	return s
}

// Total returns the user's balance, or -1 when the user has none
func (s *SaldoStore) Total(userID uint64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.UserID == userID {
			return row.TotalBalance
		}
	}
	return -1
}

func (s *SaldoStore) FindAll(_ context.Context, q entity.PageQuery) ([]*entity.Saldo, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Saldo
	for _, id := range s.ids() {
		row := s.rows[id]
		if strings.HasPrefix(strconv.FormatUint(row.UserID, 10), q.Search) {
			out = append(out, &row)
		}
	}
	total := int64(len(out))
	start := min(q.Offset(), len(out))
	end := min(start+q.PageSize, len(out))
	return out[start:end], total, nil
}

func (s *SaldoStore) FindByID(_ context.Context, id uint64) (*entity.Saldo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, errs.ErrSaldoNotFound
	}
	return &row, nil
}

func (s *SaldoStore) FindByUserID(_ context.Context, userID uint64) (*entity.Saldo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest(userID)
}

func (s *SaldoStore) FindByUsersID(_ context.Context, userID uint64) ([]*entity.Saldo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Saldo
	for _, id := range s.ids() {
		if row := s.rows[id]; row.UserID == userID {
			out = append(out, &row)
		}
	}
	return out, nil
}

func (s *SaldoStore) LockByUserID(ctx context.Context, userID uint64) (*entity.Saldo, error) {
	return s.FindByUserID(ctx, userID)
}

func (s *SaldoStore) LockByID(ctx context.Context, id uint64) (*entity.Saldo, error) {
	return s.FindByID(ctx, id)
}

func (s *SaldoStore) Create(_ context.Context, saldo *entity.Saldo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.latest(saldo.UserID); err == nil {
		return errs.ErrDuplicateRecord
	}
	s.nextID++
	saldo.ID = s.nextID
	s.rows[saldo.ID] = *saldo
	return nil
}

func (s *SaldoStore) Save(_ context.Context, saldo *entity.Saldo) error {
	if s.SaveHook != nil {
		if err := s.SaveHook(saldo); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[saldo.ID]; !ok {
		return errs.ErrSaldoNotFound
	}
	s.rows[saldo.ID] = *saldo
	return nil
}

func (s *SaldoStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return errs.ErrSaldoNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *SaldoStore) latest(userID uint64) (*entity.Saldo, error) {
	ids := s.ids()
	for i := len(ids) - 1; i >= 0; i-- {
		if row := s.rows[ids[i]]; row.UserID == userID {
			return &row, nil
		}
	}
	return nil, errs.ErrSaldoNotFound
}

func (s *SaldoStore) ids() []uint64 {
	ids := make([]uint64, 0, len(s.rows))
	for id := range s.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// TransferStore is an in-memory persistence.TransferRepository
type TransferStore struct {
	mu     sync.Mutex
	nextID uint64
	rows   map[uint64]entity.Transfer
}

// NewTransferStore creates an empty store
func NewTransferStore() *TransferStore {
	return &TransferStore{rows: make(map[uint64]entity.Transfer)}
}

// Len returns the number of stored transfers
func (s *TransferStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *TransferStore) FindAll(_ context.Context, q entity.PageQuery) ([]*entity.Transfer, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Transfer
	for _, row := range s.rows {
		row := row
		if strings.HasPrefix(strconv.FormatUint(row.TransferFrom, 10), q.Search) {
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	total := int64(len(out))
	start := min(q.Offset(), len(out))
	end := min(start+q.PageSize, len(out))
	return out[start:end], total, nil
}

func (s *TransferStore) FindByID(_ context.Context, id uint64) (*entity.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, errs.ErrTransferNotFound
	}
	return &row, nil
}

func (s *TransferStore) FindByUserID(_ context.Context, userID uint64) (*entity.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *entity.Transfer
	for _, row := range s.rows {
		row := row
		if row.TransferFrom == userID && (found == nil || row.ID > found.ID) {
			found = &row
		}
	}
	if found == nil {
		return nil, errs.ErrTransferNotFound
	}
	return found, nil
}

func (s *TransferStore) FindByUsersID(_ context.Context, userID uint64) ([]*entity.Transfer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Transfer
	for _, row := range s.rows {
		row := row
		if row.TransferFrom == userID {
			out = append(out, &row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *TransferStore) Create(_ context.Context, t *entity.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	t.ID = s.nextID
	s.rows[t.ID] = *t
	return nil
}

func (s *TransferStore) Update(_ context.Context, t *entity.Transfer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[t.ID]; !ok {
		return errs.ErrTransferNotFound
	}
	s.rows[t.ID] = *t
	return nil
}

func (s *TransferStore) Delete(_ context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[id]; !ok {
		return errs.ErrTransferNotFound
	}
	delete(s.rows, id)
	return nil
}
