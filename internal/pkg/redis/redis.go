package redis

import (
	"context"
	"fmt"
	"time"

	"hotel-booking-service/config"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	goredislib "github.com/redis/go-redis/v9"
)

func SetupClient(cfg *config.RedisConfig) *goredislib.Client {
	return goredislib.NewClient(&goredislib.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// Locker serializes payment-state transitions per booking across replicas.
// The conditional status writes are the authoritative guard, the lock just
// keeps concurrent webhook deliveries from interleaving their reads.
type Locker interface {
	LockBooking(ctx context.Context, bookingID string) (func(), error)
}

type redsyncLocker struct {
	rs *redsync.Redsync
}

func NewLocker(client *goredislib.Client) Locker {
	pool := goredis.NewPool(client)
	return &redsyncLocker{rs: redsync.New(pool)}
}

func (l *redsyncLocker) LockBooking(ctx context.Context, bookingID string) (func(), error) {
	mutex := l.rs.NewMutex(
		fmt.Sprintf("booking-lock:%s", bookingID),
		redsync.WithExpiry(8*time.Second),
		redsync.WithTries(8),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, err
	}
	return func() {
		_, _ = mutex.UnlockContext(ctx)
	}, nil
}
