package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisSlotStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisSlotStore(client, ttl), mr
}

func TestRedisSlotStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	if err := store.SetAll(ctx, "conv-1", map[string]string{
		SlotServiceName: "Dog Bathing",
		SlotLastService: "Dog Bathing",
	}); err != nil {
		t.Fatalf("SetAll failed: %v", err)
	}

	slots, err := store.Get(ctx, "conv-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if slots[SlotServiceName] != "Dog Bathing" || slots[SlotLastService] != "Dog Bathing" {
		t.Fatalf("unexpected slots: %+v", slots)
	}
}

func TestRedisSlotStoreMerge(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	if err := store.SetAll(ctx, "conv-1", map[string]string{SlotLastService: "Dog Bathing"}); err != nil {
		t.Fatalf("SetAll failed: %v", err)
	}
	if err := store.SetAll(ctx, "conv-1", map[string]string{SlotDate: "July 24, 2025"}); err != nil {
		t.Fatalf("SetAll failed: %v", err)
	}

	slots, err := store.Get(ctx, "conv-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if slots[SlotLastService] != "Dog Bathing" || slots[SlotDate] != "July 24, 2025" {
		t.Fatalf("writes must merge, got %+v", slots)
	}
}

func TestRedisSlotStoreTTL(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	if err := store.SetAll(ctx, "conv-1", map[string]string{SlotLastService: "Dog Bathing"}); err != nil {
		t.Fatalf("SetAll failed: %v", err)
	}
	if ttl := mr.TTL("slots:conv-1"); ttl != time.Hour {
		t.Fatalf("expected 1h TTL, got %v", ttl)
	}

	mr.FastForward(2 * time.Hour)
	slots, err := store.Get(ctx, "conv-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("slots should expire, got %+v", slots)
	}
}

func TestRedisSlotStoreMissingConversation(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)

	slots, err := store.Get(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("expected empty slots, got %+v", slots)
	}
}

func TestRedisSlotStoreRequiresConversationID(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	if _, err := store.Get(ctx, ""); err == nil {
		t.Fatal("Get with empty conversationID should fail")
	}
	if err := store.SetAll(ctx, "", map[string]string{SlotDate: "x"}); err == nil {
		t.Fatal("SetAll with empty conversationID should fail")
	}
}

func TestRedisSlotStoreEmptyWriteIsNoop(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Hour)

	if err := store.SetAll(context.Background(), "conv-1", nil); err != nil {
		t.Fatalf("SetAll failed: %v", err)
	}
	if mr.Exists("slots:conv-1") {
		t.Fatal("empty slot write must not create a key")
	}
}

func TestInMemorySlotStoreMerge(t *testing.T) {
	store := NewInMemorySlotStore()
	ctx := context.Background()

	if err := store.SetAll(ctx, "conv-1", map[string]string{SlotLastService: "Dog Bathing"}); err != nil {
		t.Fatalf("SetAll failed: %v", err)
	}
	if err := store.SetAll(ctx, "conv-1", map[string]string{SlotServiceName: "Cat Grooming"}); err != nil {
		t.Fatalf("SetAll failed: %v", err)
	}

	slots, err := store.Get(ctx, "conv-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if slots[SlotLastService] != "Dog Bathing" || slots[SlotServiceName] != "Cat Grooming" {
		t.Fatalf("writes must merge, got %+v", slots)
	}
}

func TestInMemorySlotStoreIsolation(t *testing.T) {
	store := NewInMemorySlotStore()
	ctx := context.Background()

	if err := store.SetAll(ctx, "conv-1", map[string]string{SlotLastService: "Dog Bathing"}); err != nil {
		t.Fatalf("SetAll failed: %v", err)
	}

	slots, err := store.Get(ctx, "conv-2")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("conversations must be isolated, got %+v", slots)
	}

	slots, _ = store.Get(ctx, "conv-1")
	slots[SlotLastService] = "mutated"
	fresh, _ := store.Get(ctx, "conv-1")
	if fresh[SlotLastService] != "Dog Bathing" {
		t.Fatal("Get must return a copy, not the backing map")
	}
}
