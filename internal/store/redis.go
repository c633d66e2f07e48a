package store

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisKV stores each key as a plain Redis string. Used when the server
// should survive restarts without a local data file.
type RedisKV struct {
	Client *redis.Client
	Ctx    context.Context
	// Prefix namespaces the directory keys, e.g. "homechefs:".
	Prefix string
}

func NewRedisKV(client *redis.Client, prefix string) *RedisKV {
	return &RedisKV{
		Client: client,
		Ctx:    context.Background(),
		Prefix: prefix,
	}
}

func (r *RedisKV) Get(key string) ([]byte, bool, error) {
	raw, err := r.Client.Get(r.Ctx, r.Prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func (r *RedisKV) Put(key string, value []byte) error {
	return r.Client.Set(r.Ctx, r.Prefix+key, value, 0).Err()
}

func (r *RedisKV) Delete(key string) error {
	return r.Client.Del(r.Ctx, r.Prefix+key).Err()
}
