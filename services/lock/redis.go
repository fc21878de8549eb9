package lock

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	keyPrefix  = "dietplan:lock:checkup:"
	retryDelay = 100 * time.Millisecond
)

// deletes the key only while it still holds our token
var releaseScript = goredis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker serializes workers across processes; the ttl bounds a crashed holder.
type RedisLocker struct {
	rdb    goredis.UniversalClient
	ttl    time.Duration
	logger *logrus.Entry
}

func NewRedisLocker(rdb goredis.UniversalClient, ttl time.Duration, logger *logrus.Entry) *RedisLocker {
	return &RedisLocker{rdb: rdb, ttl: ttl, logger: logger}
}

func (l *RedisLocker) Lock(ctx context.Context, checkupID int64) (func(), error) {
	key := keyPrefix + strconv.FormatInt(checkupID, 10)
	token := uuid.NewString()

	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return nil, fmt.Errorf("redis lock %s: %w", key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := releaseScript.Run(releaseCtx, l.rdb, []string{key}, token).Err(); err != nil && !errors.Is(err, goredis.Nil) {
				l.logger.WithFields(logrus.Fields{"task": "lock", "checkup_id": checkupID, "error_message": err.Error()}).Warn("release lock fail")
			}
		})
	}, nil
}

// NewRedisClient pings the server before handing the client out.
func NewRedisClient(addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}
