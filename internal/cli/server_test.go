package cli

import (
	"context"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"

	"visitor-trivia-service/internal/config"
	"visitor-trivia-service/internal/infra/memory"
	redisstore "visitor-trivia-service/internal/infra/redis"
)

func TestNewIDAllocatorDefaultsToMemory(t *testing.T) {
	ids, cleanup, err := newIDAllocator(context.Background(), config.Default())
	if err != nil {
		t.Fatalf("new allocator: %v", err)
	}
	defer cleanup()

	if _, ok := ids.(*memory.IDAllocator); !ok {
		t.Fatalf("expected memory allocator, got %T", ids)
	}
}

func TestNewIDAllocatorUsesRedisWhenConfigured(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	cfg := config.Default()
	cfg.Redis.Addr = mr.Addr()
	cfg.Redis.Key = "test:ids"

	ids, cleanup, err := newIDAllocator(context.Background(), cfg)
	if err != nil {
		t.Fatalf("new allocator: %v", err)
	}
	defer cleanup()

	if _, ok := ids.(*redisstore.IDAllocator); !ok {
		t.Fatalf("expected redis allocator, got %T", ids)
	}
	if id, err := ids.Next(context.Background()); err != nil || id != 1 {
		t.Fatalf("expected id 1, got %d (%v)", id, err)
	}
	if !mr.Exists("test:ids") {
		t.Fatalf("expected configured key to be used")
	}
}

func TestMigrateRequiresPostgres(t *testing.T) {
	if err := runMigrationsWithConfig(context.Background(), config.Default()); err == nil {
		t.Fatalf("expected error without postgres url")
	}
}

func TestRootCommandWiring(t *testing.T) {
	cmd := newRootCmd()

	names := map[string]bool{}
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	if !names["start"] || !names["migrate"] {
		t.Fatalf("expected start and migrate subcommands, got %v", names)
	}
	if cmd.PersistentFlags().Lookup("port") == nil || cmd.PersistentFlags().Lookup("config") == nil {
		t.Fatalf("expected port and config flags")
	}
}
