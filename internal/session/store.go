package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/school-portal/internal/models"
	appErrors "github.com/noah-isme/school-portal/pkg/errors"
)

// State is everything persisted for a signed-in console client.
type State struct {
	User   *models.User   `json:"user,omitempty"`
	School *models.School `json:"school,omitempty"`
}

// Authenticated reports whether a user is present.
func (s State) Authenticated() bool {
	return s.User != nil
}

// Token returns the backend bearer token, empty when signed out.
func (s State) Token() string {
	if s.User == nil {
		return ""
	}
	return s.User.Token
}

// Manager hands out per-session stores backed by one KV.
type Manager struct {
	kv  KV
	ttl time.Duration
}

// NewManager constructs a Manager. A zero ttl keeps sessions until logout.
func NewManager(kv KV, ttl time.Duration) *Manager {
	if kv == nil {
		kv = NewMemoryKV()
	}
	return &Manager{kv: kv, ttl: ttl}
}

// NewID returns a fresh session identifier.
func (m *Manager) NewID() string {
	return uuid.NewString()
}

// Open returns the store for sessionID. Stores are cheap; open one per request.
func (m *Manager) Open(sessionID string) *Store {
	return &Store{kv: m.kv, ttl: m.ttl, id: sessionID}
}

// Store reads and writes one session. The first Load or Save caches the
// state in memory; Clear drops both the persisted keys and the cache.
type Store struct {
	kv  KV
	ttl time.Duration
	id  string

	mu     sync.Mutex
	cached *State
}

// ID returns the session identifier.
func (s *Store) ID() string {
	return s.id
}

func (s *Store) userKey() string   { return "session:" + s.id + ":user" }
func (s *Store) schoolKey() string { return "session:" + s.id + ":school" }

// Load returns the persisted state. A missing session loads as the zero State.
func (s *Store) Load(ctx context.Context) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil {
		return cloneState(*s.cached), nil
	}

	var state State
	user := new(models.User)
	found, err := s.read(ctx, s.userKey(), user)
	if err != nil {
		return State{}, err
	}
	if found {
		state.User = user
	}
	school := new(models.School)
	found, err = s.read(ctx, s.schoolKey(), school)
	if err != nil {
		return State{}, err
	}
	if found {
		state.School = school
	}

	s.cached = &state
	return cloneState(state), nil
}

// Save replaces the whole state; nil parts are removed from the backend.
func (s *Store) Save(ctx context.Context, state State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.write(ctx, s.userKey(), state.User); err != nil {
		return err
	}
	if err := s.write(ctx, s.schoolKey(), state.School); err != nil {
		return err
	}
	cached := cloneState(state)
	s.cached = &cached
	return nil
}

// Clear signs the session out.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = nil
	if err := s.kv.Delete(ctx, s.userKey(), s.schoolKey()); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

// User returns the signed-in user or nil.
func (s *Store) User(ctx context.Context) (*models.User, error) {
	state, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return state.User, nil
}

// School returns the persisted school or nil.
func (s *Store) School(ctx context.Context) (*models.School, error) {
	state, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return state.School, nil
}

func (s *Store) read(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := s.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return false, nil
		}
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) write(ctx context.Context, key string, value interface{}) error {
	switch v := value.(type) {
	case *models.User:
		if v == nil {
			return s.kv.Delete(ctx, key)
		}
	case *models.School:
		if v == nil {
			return s.kv.Delete(ctx, key)
		}
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, string(payload), s.ttl); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func cloneState(s State) State {
	out := State{}
	if s.User != nil {
		u := s.User.Clone()
		out.User = &u
	}
	if s.School != nil {
		sc := s.School.Clone()
		out.School = &sc
	}
	return out
}
