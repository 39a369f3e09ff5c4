// Package memstore provides in-memory implementations of the service stores.
// They report the same sentinel errors as the Postgres and Redis backends and
// are used by service and handler tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cinefav/cinefav/internal/cache"
	"github.com/cinefav/cinefav/internal/model"
	"github.com/cinefav/cinefav/internal/repository"
)

// Store holds users and favorites.
type Store struct {
	mu        sync.RWMutex
	users     map[string]*model.User
	byEmail   map[string]string
	favorites map[string]*model.Favorite
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		users:     make(map[string]*model.User),
		byEmail:   make(map[string]string),
		favorites: make(map[string]*model.Favorite),
	}
}

// CreateUser stores a copy of user.
func (s *Store) CreateUser(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[user.Email]; ok {
		return repository.ErrEmailExists
	}
	u := *user
	s.users[u.ID] = &u
	s.byEmail[u.Email] = u.ID
	return nil
}

// GetUserByEmail returns a copy of the user with email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u := *s.users[id]
	return &u, nil
}

// GetUserByID returns a copy of the user with id.
func (s *Store) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

// SetUserActive toggles the active flag. Returns false for unknown ids.
func (s *Store) SetUserActive(id string, active bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if ok {
		user.IsActive = active
	}
	return ok
}

// DeleteUser removes a user and cascades to their favorites.
func (s *Store) DeleteUser(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user, ok := s.users[id]; ok {
		delete(s.byEmail, user.Email)
		delete(s.users, id)
	}
	for favID, fav := range s.favorites {
		if fav.UserID == id {
			delete(s.favorites, favID)
		}
	}
}

// CreateFavorite stores a copy of fav. The owner must exist.
func (s *Store) CreateFavorite(ctx context.Context, fav *model.Favorite) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[fav.UserID]; !ok {
		return repository.ErrOwnerMissing
	}
	f := *fav
	s.favorites[f.ID] = &f
	return nil
}

// ListFavoritesByUser returns copies ordered by created_at, then id.
func (s *Store) ListFavoritesByUser(ctx context.Context, userID string) ([]*model.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*model.Favorite, 0)
	for _, fav := range s.favorites {
		if fav.UserID == userID {
			f := *fav
			out = append(out, &f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeleteFavorite removes id when owned by userID.
func (s *Store) DeleteFavorite(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fav, ok := s.favorites[id]
	if !ok || fav.UserID != userID {
		return repository.ErrFavoriteNotFound
	}
	delete(s.favorites, id)
	return nil
}

// Cache is an in-memory trending cache with expiry.
type Cache struct {
	mu      sync.Mutex
	payload []byte
	expires time.Time
	now     func() time.Time

	// Err, when set, is returned by every call.
	Err error
	// Sets counts successful SetTrending calls.
	Sets int
}

// NewCache returns an empty Cache.
func NewCache() *Cache {
	return &Cache{now: time.Now}
}

// GetTrending returns the stored payload or cache.ErrCacheMiss.
func (c *Cache) GetTrending(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return nil, c.Err
	}
	if c.payload == nil || !c.now().Before(c.expires) {
		return nil, cache.ErrCacheMiss
	}
	return append([]byte(nil), c.payload...), nil
}

// SetTrending stores payload for ttl.
func (c *Cache) SetTrending(ctx context.Context, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.Err != nil {
		return c.Err
	}
	c.payload = append([]byte(nil), payload...)
	c.expires = c.now().Add(ttl)
	c.Sets++
	return nil
}

// Expire drops the stored payload.
func (c *Cache) Expire() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.payload = nil
}
