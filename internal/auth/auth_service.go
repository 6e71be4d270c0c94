package auth

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/ctrl-sourav/Nexus-cart/internal/events"
	"github.com/ctrl-sourav/Nexus-cart/internal/storage"

	"go.uber.org/zap"
)

// StorageKey is the durable slot the auth state persists under.
const StorageKey = "auth-storage"

// placeholderUserID stands in for a real account id. This whole service is a
// demo mock: any non-empty email with a 6+ character password logs in. A
// production build must replace it with verification against a real identity
// provider.
const placeholderUserID = "1"

const minPasswordLen = 6

//go:generate mockgen -source=auth_service.go -destination=../mock/auth/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (bool, error)
	Signup(ctx context.Context, email, password, name string) (bool, error)
	Logout(ctx context.Context) error

	CurrentUser() (User, bool)
	IsAuthenticated() bool
}

type service struct {
	// inflight serializes transitions so two racing logins resolve one
	// after the other instead of interleaving around the simulated delay.
	inflight sync.Mutex

	mu   sync.Mutex
	user *User

	store  storage.Store
	bus    *events.Bus
	logger *zap.Logger
	delay  time.Duration
}

// NewService builds the auth store rehydrated from durable storage. delay is
// the simulated network latency applied to login and signup.
func NewService(store storage.Store, bus *events.Bus, logger *zap.Logger, delay time.Duration) Service {
	s := &service{
		store:  store,
		bus:    bus,
		logger: logger,
		delay:  delay,
	}
	s.rehydrate()
	return s
}

func (s *service) rehydrate() {
	raw, err := s.store.Get(context.Background(), StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.logger.Warn("auth rehydration failed, starting anonymous", zap.Error(err))
		}
		return
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.logger.Warn("auth snapshot corrupt, starting anonymous", zap.Error(err))
		return
	}
	s.user = snap.User
}

func (s *service) persist(ctx context.Context) error {
	raw, err := json.Marshal(snapshot{User: s.user})
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, StorageKey, raw); err != nil {
		s.logger.Error("auth persistence failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) simulateLatency(ctx context.Context) error {
	if s.delay <= 0 {
		return nil
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Login authenticates against the demo rule: non-empty email and a password
// of at least six characters. Invalid credentials return false with no state
// change; only storage or context problems surface as errors.
func (s *service) Login(ctx context.Context, email, password string) (bool, error) {
	s.inflight.Lock()
	defer s.inflight.Unlock()

	if err := s.simulateLatency(ctx); err != nil {
		return false, err
	}

	if email == "" || len(password) < minPasswordLen {
		return false, nil
	}

	name, _, _ := strings.Cut(email, "@")
	user := &User{
		ID:    placeholderUserID,
		Email: email,
		Name:  name,
	}

	if err := s.setUser(ctx, user); err != nil {
		return false, err
	}

	s.bus.Publish(events.EntityAuth, "login", user.Email)
	return true, nil
}

// Signup additionally requires a non-empty display name, taken verbatim.
func (s *service) Signup(ctx context.Context, email, password, name string) (bool, error) {
	s.inflight.Lock()
	defer s.inflight.Unlock()

	if err := s.simulateLatency(ctx); err != nil {
		return false, err
	}

	if email == "" || len(password) < minPasswordLen || name == "" {
		return false, nil
	}

	user := &User{
		ID:    placeholderUserID,
		Email: email,
		Name:  name,
	}

	if err := s.setUser(ctx, user); err != nil {
		return false, err
	}

	s.bus.Publish(events.EntityAuth, "signup", user.Email)
	return true, nil
}

// Logout always transitions to anonymous; there is no precondition. The
// durable slot is dropped rather than overwritten, and rehydration reads a
// missing key as anonymous.
func (s *service) Logout(ctx context.Context) error {
	s.inflight.Lock()
	defer s.inflight.Unlock()

	s.mu.Lock()
	previous := s.user
	s.user = nil
	if err := s.store.Delete(ctx, StorageKey); err != nil {
		s.logger.Error("auth persistence failed", zap.Error(err))
		s.user = previous
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()

	s.bus.Publish(events.EntityAuth, "logout", nil)
	return nil
}

func (s *service) setUser(ctx context.Context, user *User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.user
	s.user = user

	if err := s.persist(ctx); err != nil {
		s.user = previous
		return err
	}
	return nil
}

func (s *service) CurrentUser() (User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return User{}, false
	}
	return *s.user, true
}

func (s *service) IsAuthenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}
