package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/shenikar/fire_monitoring_system/internal/service"
)

const predictionKeyPrefix = "prediction:"

type PredictionCache struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewPredictionCache(redisClient *redis.Client, ttl time.Duration) service.PredictionCache {
	return &PredictionCache{
		redisClient: redisClient,
		ttl:         ttl,
	}
}

// GetPredictions возвращает прогноз из кэша. Промах кэша - nil без ошибки.
func (c *PredictionCache) GetPredictions(ctx context.Context, key string) (*models.PredictionResult, error) {
	val, err := c.redisClient.Get(ctx, predictionKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get predictions from cache: %w", err)
	}

	result := &models.PredictionResult{}
	if err := json.Unmarshal(val, result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal predictions from cache: %w", err)
	}
	return result, nil
}

// SetPredictions сохраняет прогноз в Redis
func (c *PredictionCache) SetPredictions(ctx context.Context, key string, result *models.PredictionResult) error {
	val, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal predictions for cache: %w", err)
	}

	if err := c.redisClient.Set(ctx, predictionKeyPrefix+key, val, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set predictions in cache: %w", err)
	}
	return nil
}

// InvalidatePredictions удаляет все закэшированные прогнозы
func (c *PredictionCache) InvalidatePredictions(ctx context.Context) error {
	iter := c.redisClient.Scan(ctx, 0, predictionKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan prediction cache: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}

	if err := c.redisClient.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate prediction cache: %w", err)
	}
	return nil
}
