package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"medivision/internal/models"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type CacheService interface {
	// Product caching
	GetProduct(ctx context.Context, name string) (*models.Product, error)
	SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error
	DeleteProduct(ctx context.Context, name string) error

	// Dashboard caching
	GetDashboard(ctx context.Context, key string) (map[string]interface{}, error)
	SetDashboard(ctx context.Context, key string, stats map[string]interface{}, ttl time.Duration) error

	// InvalidateStock drops every cached product and dashboard entry; called
	// after each reconciliation operation.
	InvalidateStock(ctx context.Context) error

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	// Accept redis:// and rediss:// URLs as well as bare host:port
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Warn().Err(pingErr).Str("addr", parsedAddr).Msg("redis ping failed on initialization")
	} else {
		log.Debug().Msg("redis connection established")
	}

	return &redisCacheService{client: client}
}

func (r *redisCacheService) GetProduct(ctx context.Context, name string) (*models.Product, error) {
	data, err := r.client.Get(ctx, productKey(name)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var product models.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *redisCacheService) SetProduct(ctx context.Context, product *models.Product, ttl time.Duration) error {
	data, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, productKey(product.Name), data, ttl).Err()
}

func (r *redisCacheService) DeleteProduct(ctx context.Context, name string) error {
	return r.client.Del(ctx, productKey(name)).Err()
}

func (r *redisCacheService) GetDashboard(ctx context.Context, key string) (map[string]interface{}, error) {
	data, err := r.client.Get(ctx, dashboardKey(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var stats map[string]interface{}
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *redisCacheService) SetDashboard(ctx context.Context, key string, stats map[string]interface{}, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, dashboardKey(key), data, ttl).Err()
}

func (r *redisCacheService) InvalidateStock(ctx context.Context) error {
	for _, pattern := range []string{"medivision:product:*", "medivision:dashboard:*"} {
		keys, err := r.client.Keys(ctx, pattern).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := r.client.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil // cache miss
		}
		return "", err
	}
	return val, nil
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func productKey(name string) string {
	return fmt.Sprintf("medivision:product:%s", name)
}

func dashboardKey(key string) string {
	return fmt.Sprintf("medivision:dashboard:%s", key)
}
