package redisstore

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/trezcool/studentportal/core"
)

// client is the subset of *redis.Client used by the namespace.
type client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Ping(ctx context.Context) *redis.StatusCmd
}

type namespace struct {
	client client
	prefix string
}

var _ core.Namespace = (*namespace)(nil) // interface compliance check

// NewClient connects to redis with short timeouts.
func NewClient(conf core.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         conf.Addr,
		Password:     conf.Password,
		DB:           conf.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
}

// NewNamespace stores every key of namespace `name` as `<name>:<key>`.
func NewNamespace(c *redis.Client, name string) core.Namespace {
	return newNamespace(c, name)
}

func newNamespace(c client, name string) *namespace {
	return &namespace{client: c, prefix: name + ":"}
}

func (ns *namespace) Get(ctx context.Context, key string) (string, error) {
	val, err := ns.client.Get(ctx, ns.prefix+key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", core.ErrKeyNotFound
		}
		return "", errors.Wrapf(err, "redis GET %s", key)
	}
	return val, nil
}

func (ns *namespace) Set(ctx context.Context, key, value string) error {
	if err := ns.client.Set(ctx, ns.prefix+key, value, 0).Err(); err != nil {
		return errors.Wrapf(err, "redis SET %s", key)
	}
	return nil
}

func (ns *namespace) Delete(ctx context.Context, key string) error {
	if err := ns.client.Del(ctx, ns.prefix+key).Err(); err != nil {
		return errors.Wrapf(err, "redis DEL %s", key)
	}
	return nil
}

func (ns *namespace) Ping(ctx context.Context) error {
	return ns.client.Ping(ctx).Err()
}
