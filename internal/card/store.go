package card

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/playmatatu/golfcard/internal/models"
	"github.com/redis/go-redis/v9"
)

var ErrStoreUnavailable = errors.New("card: voucher store unavailable")

// Store records voucher redemptions. Redeem is idempotent: the first
// redemption time is kept and returned on every later call.
type Store interface {
	Redeem(ctx context.Context, v Voucher, at time.Time) (time.Time, error)
	Redeemed(ctx context.Context) (map[string]time.Time, error)
}

// NewStore picks a store by name: memory, redis or postgres.
func NewStore(kind string, db *sqlx.DB, rdb *redis.Client) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "redis":
		if rdb == nil {
			return nil, fmt.Errorf("%w: redis is not configured", ErrStoreUnavailable)
		}
		return NewRedisStore(rdb), nil
	case "postgres":
		if db == nil {
			return nil, fmt.Errorf("%w: database is not configured", ErrStoreUnavailable)
		}
		return NewPostgresStore(db), nil
	default:
		return nil, fmt.Errorf("%w: unknown store %q", ErrStoreUnavailable, kind)
	}
}

type MemoryStore struct {
	mu       sync.Mutex
	redeemed map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{redeemed: make(map[string]time.Time)}
}

func (s *MemoryStore) Redeem(_ context.Context, v Voucher, at time.Time) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if first, ok := s.redeemed[v.Slug]; ok {
		return first, nil
	}
	s.redeemed[v.Slug] = at
	return at, nil
}

func (s *MemoryStore) Redeemed(context.Context) (map[string]time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]time.Time, len(s.redeemed))
	for k, v := range s.redeemed {
		out[k] = v
	}
	return out, nil
}

const redisVoucherKey = "golfcard:vouchers"

// RedisStore keeps redemptions in one hash, slug -> RFC 3339 time.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Redeem(ctx context.Context, v Voucher, at time.Time) (time.Time, error) {
	stamp := at.UTC().Format(time.RFC3339Nano)
	set, err := s.rdb.HSetNX(ctx, redisVoucherKey, v.Slug, stamp).Result()
	if err != nil {
		return time.Time{}, fmt.Errorf("redeem %s: %w", v.Slug, err)
	}
	if set {
		return at.UTC(), nil
	}
	existing, err := s.rdb.HGet(ctx, redisVoucherKey, v.Slug).Result()
	if err != nil {
		return time.Time{}, fmt.Errorf("read redemption %s: %w", v.Slug, err)
	}
	return time.Parse(time.RFC3339Nano, existing)
}

func (s *RedisStore) Redeemed(ctx context.Context) (map[string]time.Time, error) {
	all, err := s.rdb.HGetAll(ctx, redisVoucherKey).Result()
	if err != nil {
		return nil, fmt.Errorf("list redemptions: %w", err)
	}
	out := make(map[string]time.Time, len(all))
	for slug, stamp := range all {
		t, err := time.Parse(time.RFC3339Nano, stamp)
		if err != nil {
			continue
		}
		out[slug] = t
	}
	return out, nil
}

type PostgresStore struct {
	db *sqlx.DB
}

func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Redeem(ctx context.Context, v Voucher, at time.Time) (time.Time, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO voucher_redemptions (slug, title, redeemed_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (slug) DO NOTHING
	`, v.Slug, v.Title, at.UTC())
	if err != nil {
		return time.Time{}, fmt.Errorf("redeem %s: %w", v.Slug, err)
	}

	var first time.Time
	if err := s.db.GetContext(ctx, &first, `SELECT redeemed_at FROM voucher_redemptions WHERE slug=$1`, v.Slug); err != nil {
		return time.Time{}, fmt.Errorf("read redemption %s: %w", v.Slug, err)
	}
	return first, nil
}

func (s *PostgresStore) Redeemed(ctx context.Context) (map[string]time.Time, error) {
	var rows []models.VoucherRedemption
	if err := s.db.SelectContext(ctx, &rows, `SELECT slug, title, redeemed_at FROM voucher_redemptions`); err != nil {
		return nil, fmt.Errorf("list redemptions: %w", err)
	}
	out := make(map[string]time.Time, len(rows))
	for _, r := range rows {
		out[r.Slug] = r.RedeemedAt
	}
	return out, nil
}
