package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps sessions in redis so any gateway replica can serve any
// bearer. Entries expire via redis TTL.
type RedisStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisStore(url string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisStore{Client: redis.NewClient(opt), TTL: ttl}, nil
}

func key(id string) string { return "session:" + id }

func (s *RedisStore) Save(ctx context.Context, sess Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, key(sess.ID), b, s.TTL).Err()
}

func (s *RedisStore) Load(ctx context.Context, id string) (Session, bool, error) {
	val, err := s.Client.Get(ctx, key(id)).Result()
	if err != nil {
		if err == redis.Nil {
			return Session{}, false, nil
		}
		return Session{}, false, err
	}
	var sess Session
	if err := json.Unmarshal([]byte(val), &sess); err != nil {
		return Session{}, false, err
	}
	return sess, true, nil
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.Client.Del(ctx, key(id)).Err()
}
