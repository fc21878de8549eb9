// Package lock serializes plan writes per checkup id.
package lock

import (
	"context"
	"dietplan-go-worker/utils"
	"sync"

	"github.com/sirupsen/logrus"
)

// Locker grants one holder per checkup id; unlock is safe to call twice.
type Locker interface {
	Lock(ctx context.Context, checkupID int64) (func(), error)
}

type entry struct {
	ch   chan struct{}
	refs int
}

// LocalLocker only serializes goroutines of this process.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[int64]*entry
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[int64]*entry)}
}

func (l *LocalLocker) Lock(ctx context.Context, checkupID int64) (func(), error) {
	l.mu.Lock()
	e, ok := l.locks[checkupID]
	if !ok {
		e = &entry{ch: make(chan struct{}, 1)}
		l.locks[checkupID] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.ch <- struct{}{}:
	case <-ctx.Done():
		l.release(checkupID, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.ch
			l.release(checkupID, e)
		})
	}, nil
}

func (l *LocalLocker) release(checkupID int64, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e.refs--
	if e.refs == 0 {
		delete(l.locks, checkupID)
	}
}

// FromConfig picks the redis locker when redis.enable is 1, falling back to
// the process-local one if the server cannot be reached.
func FromConfig(logger *logrus.Entry) Locker {
	if utils.EnvConfig == nil || utils.EnvConfig.Redis.Enable != 1 {
		return NewLocalLocker()
	}
	redisConfig := utils.EnvConfig.Redis
	rdb, err := NewRedisClient(redisConfig.Addr, redisConfig.Password, redisConfig.DB)
	if err != nil {
		logger.WithFields(logrus.Fields{"task": "lock", "addr": redisConfig.Addr, "error_message": err.Error()}).Warn("redis unavailable, using local lock")
		return NewLocalLocker()
	}
	return NewRedisLocker(rdb, utils.LockTTL(), logger)
}
