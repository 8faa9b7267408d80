package redisstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	emergencyStopKey = "payments:maintenance:emergency_stop"
	webhookEventKey  = "payments:webhook:event:"
	webhookEventTTL  = 24 * time.Hour
)

// RuntimeStore holds cross-instance runtime state in Redis: the maintenance
// emergency-stop flag and processed webhook event ids for idempotency.
type RuntimeStore struct {
	client *redis.Client
}

func NewRuntimeStore(client *redis.Client) *RuntimeStore {
	return &RuntimeStore{client: client}
}

func (s *RuntimeStore) SetEmergencyStop(ctx context.Context, stopped bool) error {
	if stopped {
		return s.client.Set(ctx, emergencyStopKey, "1", 0).Err()
	}
	return s.client.Del(ctx, emergencyStopKey).Err()
}

func (s *RuntimeStore) EmergencyStopped(ctx context.Context) (bool, error) {
	_, err := s.client.Get(ctx, emergencyStopKey).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// MarkWebhookEvent records the event id and reports whether this was the
// first delivery. SETNX keeps the check-and-set atomic across instances.
func (s *RuntimeStore) MarkWebhookEvent(ctx context.Context, eventID string) (fresh bool, err error) {
	return s.client.SetNX(ctx, webhookEventKey+eventID, "1", webhookEventTTL).Result()
}
