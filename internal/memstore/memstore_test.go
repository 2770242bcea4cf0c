package memstore

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/moviewatch/backend/internal/models"
	"github.com/moviewatch/backend/internal/repositories"
)

func seeded() *Store {
	s := New()
	s.PutUser(models.User{ID: "u1", Name: "Ana", Email: "ana@example.com"})
	s.PutMovie(models.Movie{ID: "m1", Name: "The Long Take"})
	return s
}

func TestUsersUniqueEmail(t *testing.T) {
	s := seeded()
	err := s.Users().Create(context.Background(), models.User{ID: "u2", Email: "ana@example.com"})
	if !errors.Is(err, repositories.ErrConflict) {
		t.Fatalf("expected conflict got %v", err)
	}
	if _, err := s.Users().UpdateAbout(context.Background(), "missing", "hi"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
}

func TestReviewsUpsertConcurrent(t *testing.T) {
	s := seeded()
	reviews := s.Reviews()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(rating int) {
			defer wg.Done()
			_, ok, err := reviews.Upsert(context.Background(), models.Review{UserID: "u1", MovieID: "m1", Rating: rating, Comment: "x"})
			if err != nil {
				t.Errorf("upsert: %v", err)
				return
			}
			if ok {
				mu.Lock()
				created++
				mu.Unlock()
			}
		}(i%5 + 1)
	}
	wg.Wait()

	if created != 1 {
		t.Fatalf("expected one creation got %d", created)
	}
	if n := s.ReviewCount("u1", "m1"); n != 1 {
		t.Fatalf("expected one row got %d", n)
	}
}

func TestReviewsUpsertUnknownMovie(t *testing.T) {
	s := seeded()
	_, _, err := s.Reviews().Upsert(context.Background(), models.Review{UserID: "u1", MovieID: "nope", Rating: 3, Comment: "x"})
	if !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
}

func TestWatchedIdempotent(t *testing.T) {
	s := seeded()
	watched := s.Watched()
	ctx := context.Background()

	if _, created, err := watched.Create(ctx, models.WatchedMovie{UserID: "u1", MovieID: "m1"}); err != nil || !created {
		t.Fatalf("first create: created=%v err=%v", created, err)
	}
	if _, created, err := watched.Create(ctx, models.WatchedMovie{UserID: "u1", MovieID: "m1"}); err != nil || created {
		t.Fatalf("second create: created=%v err=%v", created, err)
	}
	if _, err := watched.Delete(ctx, "u1", "m1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := watched.Delete(ctx, "u1", "m1"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
}

func TestPlaylistsDefaultPlaylist(t *testing.T) {
	s := seeded()
	playlists := s.Playlists()
	ctx := context.Background()

	entry, created, err := playlists.AddEntry(ctx, "u1", "m1")
	if err != nil || !created {
		t.Fatalf("add entry: created=%v err=%v", created, err)
	}
	if again, created, err := playlists.AddEntry(ctx, "u1", "m1"); err != nil || created || again.ID != entry.ID {
		t.Fatalf("expected existing entry got created=%v id=%s err=%v", created, again.ID, err)
	}

	_, owner, err := playlists.FindEntry(ctx, entry.ID)
	if err != nil || owner != "u1" {
		t.Fatalf("find entry: owner=%q err=%v", owner, err)
	}

	list, err := playlists.ListForUser(ctx, "u1")
	if err != nil || len(list) != 1 || list[0].Name != models.DefaultPlaylistName || len(list[0].Entries) != 1 {
		t.Fatalf("unexpected playlists %+v (%v)", list, err)
	}

	if err := playlists.DeleteEntry(ctx, entry.ID); err != nil {
		t.Fatalf("delete entry: %v", err)
	}
	if err := playlists.DeleteEntry(ctx, entry.ID); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected not found got %v", err)
	}
}
