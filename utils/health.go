package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

const healthCheckInterval = 60 * time.Second

// HealthStatus is the last observed state of the backing stores. Redis holds
// one entry per configured client, in the order they were registered.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	healthMu     sync.RWMutex
	latestHealth HealthStatus
)

// GetHealthStatus returns the most recent snapshot. Before the first check
// completes it reports everything down with a zero CheckedAt.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return latestHealth
}

// StartHealthMonitor pings Mongo and every Redis client on a fixed interval
// and keeps the snapshot current for the health endpoint.
func StartHealthMonitor(redisClients []*redis.Client, mongoClient *mongo.Client) {
	go func() {
		ticker := time.NewTicker(healthCheckInterval)
		defer ticker.Stop()

		ctx := context.Background()
		for range ticker.C {
			redisUp := make([]bool, 0, len(redisClients))
			for _, client := range redisClients {
				redisUp = append(redisUp, client.Ping(ctx).Err() == nil)
			}
			mongoUp := mongoClient.Ping(ctx, nil) == nil

			healthMu.Lock()
			latestHealth = HealthStatus{
				Mongo:     mongoUp,
				Redis:     redisUp,
				CheckedAt: time.Now(),
			}
			healthMu.Unlock()
		}
	}()
}
