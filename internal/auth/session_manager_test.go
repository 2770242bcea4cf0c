package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moviewatch/backend/internal/models"
)

var testUser = models.User{ID: "u1", Email: "ada@example.com", Name: "Ada"}

func TestManagerIssueAndResolve(t *testing.T) {
	store := NewInMemorySessionStore()
	manager := NewManager(time.Hour, store)

	session, err := manager.Issue(context.Background(), testUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if session.Token == "" {
		t.Fatal("expected non-empty token")
	}
	if !store.Has(session.Token) {
		t.Fatal("expected session to be stored")
	}

	resolved, err := manager.Resolve(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.UserID != "u1" || resolved.Email != "ada@example.com" {
		t.Fatalf("unexpected session: %+v", resolved)
	}
}

func TestManagerIssueValidation(t *testing.T) {
	manager := NewManager(time.Hour, NewInMemorySessionStore())
	if _, err := manager.Issue(context.Background(), models.User{ID: "u1"}); err == nil {
		t.Fatal("expected error for user without email")
	}
	if _, err := manager.Issue(context.Background(), models.User{Email: "x@example.com"}); err == nil {
		t.Fatal("expected error for user without id")
	}
}

func TestManagerResolveFailures(t *testing.T) {
	store := NewInMemorySessionStore()
	manager := NewManager(time.Hour, store)

	if _, err := manager.Resolve(context.Background(), ""); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session not found got %v", err)
	}
	if _, err := manager.Resolve(context.Background(), "unknown"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session not found got %v", err)
	}

	session, err := manager.Issue(context.Background(), testUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	manager.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := manager.Resolve(context.Background(), session.Token); !errors.Is(err, ErrSessionExpired) {
		t.Fatalf("expected session expired got %v", err)
	}
	if store.Has(session.Token) {
		t.Fatal("expected expired session to be deleted")
	}
}

func TestManagerRevoke(t *testing.T) {
	store := NewInMemorySessionStore()
	manager := NewManager(time.Hour, store)

	session, err := manager.Issue(context.Background(), testUser)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	manager.Revoke(context.Background(), session.Token)
	manager.Revoke(context.Background(), "")

	if _, err := manager.Resolve(context.Background(), session.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session not found after revoke got %v", err)
	}
}

func TestNewManagerRequiresStore(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for nil store")
		}
	}()
	NewManager(time.Hour, nil)
}
