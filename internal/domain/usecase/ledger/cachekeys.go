package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/amirhossein-jamali/payment-ledger/internal/domain/entity"
	"github.com/amirhossein-jamali/payment-ledger/internal/domain/port/cache"
)

// Cache namespaces
const (
	KindSaldo    = "saldo"
	KindTopup    = "topup"
	KindTransfer = "transfer"
	KindWithdraw = "withdraw"
)

// ListKey is the key of one listing page, e.g. saldos:page=1:size=10:search=
func ListKey(kind string, q entity.PageQuery) string {
	return fmt.Sprintf("%ss:page=%d:size=%d:search=%s", kind, q.Page, q.PageSize, q.Search)
}

// ListPrefix covers every listing page of kind
func ListPrefix(kind string) string {
	return kind + "s:"
}

// DetailKey is the key of a single record, e.g. saldo:id=7
func DetailKey(kind string, id uint64) string {
	return fmt.Sprintf("%s:id=%d", kind, id)
}

// UserKey is the key of the latest record of a user, e.g. saldo_user:id=3
func UserKey(kind string, userID uint64) string {
	return fmt.Sprintf("%s_user:id=%d", kind, userID)
}

// UsersKey is the key of every record of a user, e.g. saldo_users:id=3
func UsersKey(kind string, userID uint64) string {
	return fmt.Sprintf("%s_users:id=%d", kind, userID)
}

// Evict drops the detail key of record id, the per-user keys of every given user
// and all listing pages of kind. It runs after the write is committed, so a cancelled
// ctx does not stop it.
func Evict(ctx context.Context, store cache.Store, kind string, id uint64, userIDs ...uint64) {
	ctx = context.WithoutCancel(ctx)
	keys := make([]string, 0, 1+2*len(userIDs))
	if id != 0 {
		keys = append(keys, DetailKey(kind, id))
	}
	for _, userID := range userIDs {
		keys = append(keys, UserKey(kind, userID), UsersKey(kind, userID))
	}
	store.Delete(ctx, keys...)
	store.DeletePrefix(ctx, ListPrefix(kind))
}

// ReadThrough returns the cached value for key, or loads, caches and returns it.
// Loader errors are returned as is and never cached.
//
// A load that overlaps an Evict of the same key may cache the row it read before the
// writer committed. That value lives at most ttl.
func ReadThrough[T any](
	ctx context.Context,
	store cache.Store,
	key string,
	ttl time.Duration,
	load func(ctx context.Context) (T, error),
) (T, error) {
	var cached T
	if store.Get(ctx, key, &cached) {
		return cached, nil
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	store.Set(ctx, key, value, ttl)
	return value, nil
}
