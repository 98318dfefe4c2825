package assistant

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// Conversation slot names carried between turns.
const (
	SlotServiceName = "service_name"
	SlotLastService = "last_service"
	SlotDate        = "date"
)

const slotKeyPrefix = "slots:"

// SlotStore persists conversation slots between turns. State is partitioned
// per conversation; the dispatcher guarantees single-writer-per-session, so
// implementations only need their own internal consistency.
type SlotStore interface {
	Get(ctx context.Context, conversationID string) (map[string]string, error)
	SetAll(ctx context.Context, conversationID string, slots map[string]string) error
}

// RedisSlotStore keeps slots in a Redis hash with a freshness TTL.
type RedisSlotStore struct {
	redis  *redis.Client
	ttl    time.Duration
	tracer trace.Tracer
}

// NewRedisSlotStore creates a Redis-backed slot store.
func NewRedisSlotStore(client *redis.Client, ttl time.Duration) *RedisSlotStore {
	if client == nil {
		panic("assistant: redis client required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisSlotStore{
		redis:  client,
		ttl:    ttl,
		tracer: otel.Tracer("pawspoint.internal.assistant.slots"),
	}
}

// Get returns the slots for a conversation; missing conversations yield an
// empty map.
func (s *RedisSlotStore) Get(ctx context.Context, conversationID string) (map[string]string, error) {
	if conversationID == "" {
		return nil, errors.New("assistant: conversationID required")
	}
	ctx, span := s.tracer.Start(ctx, "slots.get")
	defer span.End()

	slots, err := s.redis.HGetAll(ctx, slotKey(conversationID)).Result()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("assistant: read slots: %w", err)
	}
	return slots, nil
}

// SetAll writes the given slots and refreshes the conversation TTL.
func (s *RedisSlotStore) SetAll(ctx context.Context, conversationID string, slots map[string]string) error {
	if conversationID == "" {
		return errors.New("assistant: conversationID required")
	}
	if len(slots) == 0 {
		return nil
	}
	ctx, span := s.tracer.Start(ctx, "slots.set_all")
	defer span.End()

	args := make([]any, 0, len(slots)*2)
	for k, v := range slots {
		args = append(args, k, v)
	}
	key := slotKey(conversationID)
	pipe := s.redis.TxPipeline()
	pipe.HSet(ctx, key, args...)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("assistant: write slots: %w", err)
	}
	return nil
}

func slotKey(conversationID string) string {
	return slotKeyPrefix + conversationID
}

// InMemorySlotStore is a stub SlotStore for tests and local development.
type InMemorySlotStore struct {
	mu    sync.RWMutex
	slots map[string]map[string]string
}

// NewInMemorySlotStore creates an in-memory slot store.
func NewInMemorySlotStore() *InMemorySlotStore {
	return &InMemorySlotStore{slots: make(map[string]map[string]string)}
}

// Get returns a copy of the conversation's slots.
func (s *InMemorySlotStore) Get(ctx context.Context, conversationID string) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.slots[conversationID]))
	for k, v := range s.slots[conversationID] {
		out[k] = v
	}
	return out, nil
}

// SetAll merges the given slots into the conversation's state.
func (s *InMemorySlotStore) SetAll(ctx context.Context, conversationID string, slots map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.slots[conversationID]
	if !ok {
		existing = make(map[string]string, len(slots))
		s.slots[conversationID] = existing
	}
	for k, v := range slots {
		existing[k] = v
	}
	return nil
}
