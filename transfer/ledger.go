package transfer

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Ledger records redeemed voucher fingerprints so a voucher can be
// consumed at most once. MarkRedeemed is an atomic check-and-set:
// it returns true exactly once per fingerprint. Unmark releases a
// fingerprint again when the transfer it was consumed for did not
// go through.
type Ledger interface {
	MarkRedeemed(ctx context.Context, fingerprint string) (bool, error)
	Unmark(ctx context.Context, fingerprint string) error
}

// RedisLedger stores fingerprints under voucher:<jti> keys. The
// retention TTL bounds ledger growth; after it elapses a replay of
// the same voucher would again be an idempotent re-assignment,
// matching the unstrengthened behavior.
type RedisLedger struct {
	rdb       *redis.Client
	retention time.Duration
}

func NewRedisLedger(rdb *redis.Client, retention time.Duration) *RedisLedger {
	return &RedisLedger{rdb: rdb, retention: retention}
}

func (l *RedisLedger) MarkRedeemed(ctx context.Context, fingerprint string) (bool, error) {
	return l.rdb.SetNX(ctx, "voucher:"+fingerprint, 1, l.retention).Result()
}

func (l *RedisLedger) Unmark(ctx context.Context, fingerprint string) error {
	return l.rdb.Del(ctx, "voucher:"+fingerprint).Err()
}

// MemoryLedger is the in-process Ledger used by tests.
type MemoryLedger struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{seen: make(map[string]struct{})}
}

func (l *MemoryLedger) MarkRedeemed(ctx context.Context, fingerprint string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.seen[fingerprint]; ok {
		return false, nil
	}
	l.seen[fingerprint] = struct{}{}
	return true, nil
}

func (l *MemoryLedger) Unmark(ctx context.Context, fingerprint string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.seen, fingerprint)
	return nil
}
