package auth

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestRedisSessionStore(t *testing.T) {
	redisURL := os.Getenv("MOVIEWATCH_TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("MOVIEWATCH_TEST_REDIS_URL not set")
	}

	ctx := context.Background()
	client, err := NewRedisClient(ctx, redisURL)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	defer client.Close()

	store := NewRedisSessionStore(client)
	manager := NewManager(time.Minute, store)

	session, err := manager.Issue(ctx, testUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	loaded, err := store.Find(ctx, session.Token)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if loaded.UserID != session.UserID || loaded.Email != session.Email {
		t.Fatalf("unexpected session %+v", loaded)
	}

	ttl, err := client.TTL(ctx, redisSessionPrefix+session.Token).Result()
	if err != nil {
		t.Fatalf("ttl: %v", err)
	}
	if ttl <= 0 || ttl > time.Minute {
		t.Fatalf("unexpected key ttl %v", ttl)
	}

	if err := store.Delete(ctx, session.Token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Delete(ctx, session.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound deleting twice, got %v", err)
	}
	if _, err := store.Find(ctx, session.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
}
