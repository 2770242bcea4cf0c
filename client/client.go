// Package client is a typed Go client for the moviewatch HTTP API. Sessions are
// carried by a cookie jar, so a Client signed in with Login or SignUp acts as
// that user for subsequent calls.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// Error is returned for every non-2xx response.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("moviewatch: %d %s", e.Status, e.Message)
}

// IsStatus reports whether err is an *Error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client calls the moviewatch API rooted at a base URL.
type Client struct {
	baseURL *url.URL
	http    *http.Client
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. A cookie jar is attached
// when the supplied client has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New constructs a Client for baseURL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{baseURL: u, http: &http.Client{Timeout: 15 * time.Second}}
	for _, opt := range opts {
		opt(c)
	}
	if c.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		c.http.Jar = jar
	}
	return c, nil
}

// SignUpInput is the payload for SignUp.
type SignUpInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Image    string `json:"image,omitempty"`
}

// SignUp creates an account and signs the client in as it.
func (c *Client) SignUp(ctx context.Context, in SignUpInput) (User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/api/auth/signup", in, &user)
	return user, err
}

// Login signs the client in.
func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var user User
	body := map[string]string{"email": email, "password": password}
	err := c.do(ctx, http.MethodPost, "/api/auth/login", body, &user)
	return user, err
}

// Logout ends the current session.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// CurrentUser returns the signed-in user.
func (c *Client) CurrentUser(ctx context.Context) (User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, "/api/get-current-user", nil, &user)
	return user, err
}

// ReviewInput is the payload for CreateReview. A nil Rating is sent as absent.
type ReviewInput struct {
	UserID  string `json:"userId"`
	MovieID string `json:"movieId"`
	Rating  *int   `json:"rating,omitempty"`
	Comment string `json:"comment"`
}

// CreateReview submits or updates the caller's review. created is true when a
// new review was stored.
func (c *Client) CreateReview(ctx context.Context, in ReviewInput) (review Review, created bool, err error) {
	status, err := c.doStatus(ctx, http.MethodPost, "/api/create-review", in, &review)
	return review, status == http.StatusCreated, err
}

// MarkWatched marks a movie watched for the caller. created is false when it
// was already marked, in which case the returned marker is empty.
func (c *Client) MarkWatched(ctx context.Context, movieID string) (marker WatchedMovie, created bool, err error) {
	var raw json.RawMessage
	status, err := c.doStatus(ctx, http.MethodPost, "/api/create-watched-movie/"+url.PathEscape(movieID), nil, &raw)
	if err != nil {
		return WatchedMovie{}, false, err
	}
	if status != http.StatusCreated {
		return WatchedMovie{}, false, nil
	}
	if err := json.Unmarshal(raw, &marker); err != nil {
		return WatchedMovie{}, false, fmt.Errorf("decode watched marker: %w", err)
	}
	return marker, true, nil
}

// UnmarkWatched removes the caller's watched marker for a movie.
func (c *Client) UnmarkWatched(ctx context.Context, movieID string) (WatchedMovie, error) {
	var marker WatchedMovie
	err := c.do(ctx, http.MethodDelete, "/api/delete-watched-movie/"+url.PathEscape(movieID), nil, &marker)
	return marker, err
}

// IsWatched reports whether the caller has watched a movie.
func (c *Client) IsWatched(ctx context.Context, movieID string) (bool, error) {
	var watched bool
	err := c.do(ctx, http.MethodGet, "/api/get-watched-movie/"+url.PathEscape(movieID), nil, &watched)
	return watched, err
}

// AddToPlaylist adds a movie to the caller's default playlist.
func (c *Client) AddToPlaylist(ctx context.Context, userID, movieID string) (entry PlaylistEntry, created bool, err error) {
	body := map[string]string{"userId": userID, "movieId": movieID}
	status, err := c.doStatus(ctx, http.MethodPost, "/api/create-playlist-entry", body, &entry)
	return entry, status == http.StatusCreated, err
}

// DeletePlaylistEntry removes one of the caller's playlist entries.
func (c *Client) DeletePlaylistEntry(ctx context.Context, entryID string) error {
	return c.do(ctx, http.MethodDelete, "/api/delete-playlist-entry/"+url.PathEscape(entryID), nil, nil)
}

// UserPlaylists returns a user's playlists with their entries.
func (c *Client) UserPlaylists(ctx context.Context, userID string) ([]Playlist, error) {
	var playlists []Playlist
	err := c.do(ctx, http.MethodGet, "/api/get-user-playlist/"+url.PathEscape(userID), nil, &playlists)
	return playlists, err
}

// EditAbout replaces the caller's about text.
func (c *Client) EditAbout(ctx context.Context, userID, about string) (User, error) {
	var user User
	body := map[string]string{"about": about}
	err := c.do(ctx, http.MethodPut, "/api/edit-about-user/"+url.PathEscape(userID), body, &user)
	return user, err
}

// User fetches a user profile.
func (c *Client) User(ctx context.Context, userID string) (User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, "/api/get-user-by-id/"+url.PathEscape(userID), nil, &user)
	return user, err
}

// UserReviews lists the reviews written by a user.
func (c *Client) UserReviews(ctx context.Context, userID string) ([]Review, error) {
	var reviews []Review
	err := c.do(ctx, http.MethodGet, "/api/get-user-reviews/"+url.PathEscape(userID), nil, &reviews)
	return reviews, err
}

// Movies lists the catalog.
func (c *Client) Movies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	err := c.do(ctx, http.MethodGet, "/api/get-movies", nil, &movies)
	return movies, err
}

// Movie fetches one catalog entry.
func (c *Client) Movie(ctx context.Context, movieID string) (Movie, error) {
	var movie Movie
	err := c.do(ctx, http.MethodGet, "/api/get-movie-by-id/"+url.PathEscape(movieID), nil, &movie)
	return movie, err
}

// MovieReviews lists the reviews for a movie.
func (c *Client) MovieReviews(ctx context.Context, movieID string) ([]Review, error) {
	var reviews []Review
	err := c.do(ctx, http.MethodGet, "/api/get-movie-reviews/"+url.PathEscape(movieID), nil, &reviews)
	return reviews, err
}

// MovieRatings lists the ratings given to a movie.
func (c *Client) MovieRatings(ctx context.Context, movieID string) ([]Rating, error) {
	var ratings []Rating
	err := c.do(ctx, http.MethodGet, "/api/get-movie-rating/"+url.PathEscape(movieID), nil, &ratings)
	return ratings, err
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	_, err := c.doStatus(ctx, method, path, body, out)
	return err
}

func (c *Client) doStatus(ctx context.Context, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, decodeError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return resp.StatusCode, nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Error
		if apiErr.Message == "" {
			apiErr.Message = body.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(raw))
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
