// Package memstore provides map-backed implementations of the repository
// contracts for tests and local development.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/moviewatch/backend/internal/models"
	"github.com/moviewatch/backend/internal/repositories"
)

// Store holds every table behind a single mutex so that multi-table checks
// (foreign keys, ownership) observe a consistent snapshot.
type Store struct {
	mu        sync.Mutex
	users     map[string]models.User
	movies    map[string]models.Movie
	reviews   map[string]models.Review
	watched   map[watchedKey]models.WatchedMovie
	playlists map[string]models.Playlist
	entries   map[string]models.PlaylistEntry
	now       func() time.Time
}

type watchedKey struct {
	userID  string
	movieID string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		users:     make(map[string]models.User),
		movies:    make(map[string]models.Movie),
		reviews:   make(map[string]models.Review),
		watched:   make(map[watchedKey]models.WatchedMovie),
		playlists: make(map[string]models.Playlist),
		entries:   make(map[string]models.PlaylistEntry),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Users returns the user repository view of the store.
func (s *Store) Users() *Users { return &Users{s} }

// Movies returns the movie repository view of the store.
func (s *Store) Movies() *Movies { return &Movies{s} }

// Reviews returns the review repository view of the store.
func (s *Store) Reviews() *Reviews { return &Reviews{s} }

// Watched returns the watched-movie repository view of the store.
func (s *Store) Watched() *Watched { return &Watched{s} }

// Playlists returns the playlist repository view of the store.
func (s *Store) Playlists() *Playlists { return &Playlists{s} }

// PutMovie seeds the catalog.
func (s *Store) PutMovie(movie models.Movie) {
	s.mu.Lock()
	s.movies[movie.ID] = movie
	s.mu.Unlock()
}

// PutUser inserts or replaces a user without uniqueness checks.
func (s *Store) PutUser(user models.User) {
	s.mu.Lock()
	s.users[user.ID] = user
	s.mu.Unlock()
}

// ReviewCount reports the number of stored reviews for the (user, movie) pair.
func (s *Store) ReviewCount(userID, movieID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.reviews {
		if r.UserID == userID && r.MovieID == movieID {
			n++
		}
	}
	return n
}

// Users implements repositories.UserRepository.
type Users struct{ s *Store }

// Create stores user, or returns ErrConflict when the id or email is taken.
func (u *Users) Create(_ context.Context, user models.User) error {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	if _, ok := u.s.users[user.ID]; ok {
		return repositories.ErrConflict
	}
	for _, existing := range u.s.users {
		if existing.Email == user.Email {
			return repositories.ErrConflict
		}
	}
	u.s.users[user.ID] = user
	return nil
}

// FindByID returns the user with id.
func (u *Users) FindByID(_ context.Context, id string) (models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return user, nil
}

// FindByEmail returns the user registered under email.
func (u *Users) FindByEmail(_ context.Context, email string) (models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	for _, user := range u.s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

// UpdateAbout replaces the about text of user id and returns the updated user.
func (u *Users) UpdateAbout(_ context.Context, id, about string) (models.User, error) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	user, ok := u.s.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	user.About = &about
	user.UpdatedAt = u.s.now()
	u.s.users[id] = user
	return user, nil
}

// Movies implements repositories.MovieRepository.
type Movies struct{ s *Store }

// FindByID returns the movie with id.
func (m *Movies) FindByID(_ context.Context, id string) (models.Movie, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	movie, ok := m.s.movies[id]
	if !ok {
		return models.Movie{}, repositories.ErrNotFound
	}
	return movie, nil
}

// List returns the catalog ordered by name.
func (m *Movies) List(_ context.Context) ([]models.Movie, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	movies := make([]models.Movie, 0, len(m.s.movies))
	for _, movie := range m.s.movies {
		movies = append(movies, movie)
	}
	sort.Slice(movies, func(i, j int) bool {
		if movies[i].Name == movies[j].Name {
			return movies[i].ID < movies[j].ID
		}
		return movies[i].Name < movies[j].Name
	})
	return movies, nil
}

// Reviews implements repositories.ReviewRepository.
type Reviews struct{ s *Store }

// Upsert creates the review for its (user, movie) pair or updates the rating
// and comment of the existing one. The bool reports whether a review was created.
func (r *Reviews) Upsert(_ context.Context, review models.Review) (models.Review, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[review.UserID]; !ok {
		return models.Review{}, false, repositories.ErrNotFound
	}
	if _, ok := r.s.movies[review.MovieID]; !ok {
		return models.Review{}, false, repositories.ErrNotFound
	}

	now := r.s.now()
	for id, existing := range r.s.reviews {
		if existing.UserID == review.UserID && existing.MovieID == review.MovieID {
			existing.Rating = review.Rating
			existing.Comment = review.Comment
			existing.UpdatedAt = now
			r.s.reviews[id] = existing
			return existing, false, nil
		}
	}

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
	}
	review.UpdatedAt = review.CreatedAt
	r.s.reviews[review.ID] = review
	return review, true, nil
}

// ListByMovie returns the reviews of a movie, oldest first.
func (r *Reviews) ListByMovie(_ context.Context, movieID string) ([]models.Review, error) {
	return r.filter(func(rv models.Review) bool { return rv.MovieID == movieID }), nil
}

// ListByUser returns the reviews written by a user, newest first.
func (r *Reviews) ListByUser(_ context.Context, userID string) ([]models.Review, error) {
	reviews := r.filter(func(rv models.Review) bool { return rv.UserID == userID })
	for i, j := 0, len(reviews)-1; i < j; i, j = i+1, j-1 {
		reviews[i], reviews[j] = reviews[j], reviews[i]
	}
	return reviews, nil
}

// RatingsForMovie returns the bare ratings of a movie.
func (r *Reviews) RatingsForMovie(ctx context.Context, movieID string) ([]models.Rating, error) {
	reviews, _ := r.ListByMovie(ctx, movieID)
	ratings := make([]models.Rating, 0, len(reviews))
	for _, rv := range reviews {
		ratings = append(ratings, models.Rating{Rating: rv.Rating})
	}
	return ratings, nil
}

// filter returns matching reviews oldest first.
func (r *Reviews) filter(keep func(models.Review) bool) []models.Review {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]models.Review, 0)
	for _, rv := range r.s.reviews {
		if keep(rv) {
			out = append(out, rv)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// Watched implements repositories.WatchedRepository.
type Watched struct{ s *Store }

// Create marks the movie as watched. An existing marker is returned unchanged
// with created set to false.
func (w *Watched) Create(_ context.Context, watched models.WatchedMovie) (models.WatchedMovie, bool, error) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()

	if _, ok := w.s.users[watched.UserID]; !ok {
		return models.WatchedMovie{}, false, repositories.ErrNotFound
	}
	if _, ok := w.s.movies[watched.MovieID]; !ok {
		return models.WatchedMovie{}, false, repositories.ErrNotFound
	}

	key := watchedKey{watched.UserID, watched.MovieID}
	if existing, ok := w.s.watched[key]; ok {
		return existing, false, nil
	}
	if watched.CreatedAt.IsZero() {
		watched.CreatedAt = w.s.now()
	}
	w.s.watched[key] = watched
	return watched, true, nil
}

// Delete removes the marker and returns it.
func (w *Watched) Delete(_ context.Context, userID, movieID string) (models.WatchedMovie, error) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	key := watchedKey{userID, movieID}
	existing, ok := w.s.watched[key]
	if !ok {
		return models.WatchedMovie{}, repositories.ErrNotFound
	}
	delete(w.s.watched, key)
	return existing, nil
}

// Exists reports whether the user has marked the movie as watched.
func (w *Watched) Exists(_ context.Context, userID, movieID string) (bool, error) {
	w.s.mu.Lock()
	defer w.s.mu.Unlock()
	_, ok := w.s.watched[watchedKey{userID, movieID}]
	return ok, nil
}

// Playlists implements repositories.PlaylistRepository.
type Playlists struct{ s *Store }

// ListForUser returns the playlists of a user with their entries, oldest first.
func (p *Playlists) ListForUser(_ context.Context, userID string) ([]models.Playlist, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	out := make([]models.Playlist, 0)
	for _, pl := range p.s.playlists {
		if pl.UserID != userID {
			continue
		}
		pl.Entries = make([]models.PlaylistEntry, 0)
		for _, entry := range p.s.entries {
			if entry.PlaylistID != pl.ID {
				continue
			}
			if movie, ok := p.s.movies[entry.MovieID]; ok {
				entry.Movie = &movie
			}
			pl.Entries = append(pl.Entries, entry)
		}
		sort.Slice(pl.Entries, func(i, j int) bool {
			if pl.Entries[i].CreatedAt.Equal(pl.Entries[j].CreatedAt) {
				return pl.Entries[i].ID < pl.Entries[j].ID
			}
			return pl.Entries[i].CreatedAt.Before(pl.Entries[j].CreatedAt)
		})
		out = append(out, pl)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// FindEntry returns the entry and the id of the user owning its playlist.
func (p *Playlists) FindEntry(_ context.Context, entryID string) (models.PlaylistEntry, string, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	entry, ok := p.s.entries[entryID]
	if !ok {
		return models.PlaylistEntry{}, "", repositories.ErrNotFound
	}
	return entry, p.s.playlists[entry.PlaylistID].UserID, nil
}

// DeleteEntry removes a playlist entry.
func (p *Playlists) DeleteEntry(_ context.Context, entryID string) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if _, ok := p.s.entries[entryID]; !ok {
		return repositories.ErrNotFound
	}
	delete(p.s.entries, entryID)
	return nil
}

// AddEntry appends the movie to the default playlist of the user, creating
// the playlist on first use. Adding a movie twice returns the existing entry.
func (p *Playlists) AddEntry(_ context.Context, userID, movieID string) (models.PlaylistEntry, bool, error) {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()

	if _, ok := p.s.users[userID]; !ok {
		return models.PlaylistEntry{}, false, repositories.ErrNotFound
	}
	if _, ok := p.s.movies[movieID]; !ok {
		return models.PlaylistEntry{}, false, repositories.ErrNotFound
	}

	now := p.s.now()
	var playlistID string
	for id, pl := range p.s.playlists {
		if pl.UserID == userID && pl.Name == models.DefaultPlaylistName {
			playlistID = id
			break
		}
	}
	if playlistID == "" {
		playlistID = uuid.NewString()
		p.s.playlists[playlistID] = models.Playlist{ID: playlistID, UserID: userID, Name: models.DefaultPlaylistName, CreatedAt: now}
	}

	for _, entry := range p.s.entries {
		if entry.PlaylistID == playlistID && entry.MovieID == movieID {
			return entry, false, nil
		}
	}

	entry := models.PlaylistEntry{ID: uuid.NewString(), PlaylistID: playlistID, MovieID: movieID, CreatedAt: now}
	p.s.entries[entry.ID] = entry
	return entry, true, nil
}

var (
	_ repositories.UserRepository     = (*Users)(nil)
	_ repositories.MovieRepository    = (*Movies)(nil)
	_ repositories.ReviewRepository   = (*Reviews)(nil)
	_ repositories.WatchedRepository  = (*Watched)(nil)
	_ repositories.PlaylistRepository = (*Playlists)(nil)
)
