package redis

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestIDAllocatorIncrementsInRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	alloc := NewIDAllocator(newClient(mr), "")

	first, err := alloc.Next(context.Background())
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	second, err := alloc.Next(context.Background())
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if first != 1 || second != 2 {
		t.Fatalf("expected 1 then 2, got %d then %d", first, second)
	}

	got, err := mr.Get(DefaultIDKey)
	if err != nil {
		t.Fatalf("get key: %v", err)
	}
	if got != "2" {
		t.Fatalf("expected stored counter 2, got %q", got)
	}
}

func TestIDAllocatorSharedAcrossInstances(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	a := NewIDAllocator(newClient(mr), "ids")
	b := NewIDAllocator(newClient(mr), "ids")

	if id, _ := a.Next(context.Background()); id != 1 {
		t.Fatalf("expected 1, got %d", id)
	}
	if id, _ := b.Next(context.Background()); id != 2 {
		t.Fatalf("expected 2 from second instance, got %d", id)
	}
}

func TestIDAllocatorReportsRedisErrors(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	client := newClient(mr)
	mr.Close()

	if _, err := NewIDAllocator(client, "").Next(context.Background()); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}

func TestIDAllocatorRejectsNonIntegerKey(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	if err := mr.Set(DefaultIDKey, "not-a-number"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := NewIDAllocator(newClient(mr), "").Next(context.Background()); err == nil {
		t.Fatalf("expected error for non-integer counter")
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}
