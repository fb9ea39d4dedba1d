package redis

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const presenceKey = "presence:online"

// RedisPresenceStore keeps one sorted set of user ids scored by their last
// check-in, shared by every instance.
type RedisPresenceStore struct {
	rdb *redis.Client
	ttl time.Duration
	now func() time.Time
}

func NewRedisPresenceStore(rdb *redis.Client, ttl time.Duration) *RedisPresenceStore {
	return &RedisPresenceStore{
		rdb: rdb,
		ttl: ttl,
		now: time.Now,
	}
}

// MarkOnline adds or refreshes the user with the current timestamp.
func (p *RedisPresenceStore) MarkOnline(ctx context.Context, userID string, ttl time.Duration) error {
	pipe := p.rdb.TxPipeline()
	pipe.ZAdd(ctx, presenceKey, redis.Z{
		Score:  float64(p.now().Unix()),
		Member: userID,
	})
	// The whole set expires if no instance checks in anymore.
	pipe.Expire(ctx, presenceKey, ttl*2)
	_, err := pipe.Exec(ctx)
	return err
}

func (p *RedisPresenceStore) MarkOffline(ctx context.Context, userID string) error {
	return p.rdb.ZRem(ctx, presenceKey, userID).Err()
}

// OnlineUsers returns users who checked in within the TTL. Stale entries are
// pruned first.
func (p *RedisPresenceStore) OnlineUsers(ctx context.Context) ([]string, error) {
	threshold := p.now().Add(-p.ttl).Unix()
	if err := p.rdb.ZRemRangeByScore(ctx, presenceKey, "-inf", "("+strconv.FormatInt(threshold, 10)).Err(); err != nil {
		return nil, err
	}
	users, err := p.rdb.ZRange(ctx, presenceKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []string{}
	}
	return users, nil
}
