package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/travelbook/holidaybooking/config"
	"github.com/travelbook/holidaybooking/internal/domain"
)

// RedisCache holds the assembled catalog so browse traffic does not
// re-run the denormalizing joins on every request.
type RedisCache struct {
	client     *redis.Client
	catalogTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, catalogTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		catalogTTL: catalogTTL,
	}
}

func (c *RedisCache) GetPackages(ctx context.Context) ([]domain.PackageView, error) {
	data, err := c.client.Get(ctx, catalogKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var pkgs []domain.PackageView
	if err := json.Unmarshal(data, &pkgs); err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (c *RedisCache) SetPackages(ctx context.Context, pkgs []domain.PackageView) error {
	payload, err := json.Marshal(pkgs)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, catalogKey(), payload, c.catalogTTL).Err()
}

// InvalidatePackages drops the cached catalog. Called after admin
// package mutations.
func (c *RedisCache) InvalidatePackages(ctx context.Context) error {
	return c.client.Del(ctx, catalogKey()).Err()
}

func catalogKey() string {
	return "cache:packages"
}
