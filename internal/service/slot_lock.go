package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSlotLocked is returned when another booking for the same doctor is
// mid-flight and the lock could not be acquired in time.
var ErrSlotLocked = errors.New("doctor calendar is locked by another booking")

const (
	slotLockKeyPrefix = "appointment:lock:"
	slotLockTTL       = 5 * time.Second
	slotLockRetry     = 50 * time.Millisecond
)

// releaseLockScript deletes the lock only when it still holds our token,
// so an expired lock re-acquired by someone else is never released by us.
var releaseLockScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// SlotLocker serializes the check-then-insert sequence per doctor so two
// concurrent bookings cannot both pass the overlap check for the same
// calendar. The conflict check itself still runs against the store; the
// lock only closes the race window.
type SlotLocker interface {
	// Acquire blocks until the doctor's lock is held or ctx expires.
	// The returned function releases the lock.
	Acquire(ctx context.Context, doctorID uuid.UUID) (func(), error)
}

// RedisSlotLock implements SlotLocker with a Redis SET NX lock, which keeps
// the guarantee across multiple API instances.
type RedisSlotLock struct {
	redisClient *redis.Client
}

func NewRedisSlotLock(redisClient *redis.Client) *RedisSlotLock {
	return &RedisSlotLock{redisClient: redisClient}
}

func (l *RedisSlotLock) Acquire(ctx context.Context, doctorID uuid.UUID) (func(), error) {
	key := slotLockKeyPrefix + doctorID.String()
	token := uuid.New().String()

	for {
		ok, err := l.redisClient.SetNX(ctx, key, token, slotLockTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire slot lock: %w", err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ErrSlotLocked
		case <-time.After(slotLockRetry):
		}
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		releaseLockScript.Run(releaseCtx, l.redisClient, []string{key}, token)
	}
	return release, nil
}

// LocalSlotLock implements SlotLocker with in-process mutexes, one per
// doctor. Sufficient for single-instance deployments and for tests.
type LocalSlotLock struct {
	mu sync.Map // map[uuid.UUID]*sync.Mutex
}

func NewLocalSlotLock() *LocalSlotLock {
	return &LocalSlotLock{}
}

func (l *LocalSlotLock) Acquire(ctx context.Context, doctorID uuid.UUID) (func(), error) {
	value, _ := l.mu.LoadOrStore(doctorID, &sync.Mutex{})
	mu := value.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock, nil
}
