package wishlist

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/ctrl-sourav/Nexus-cart/internal/events"
	"github.com/ctrl-sourav/Nexus-cart/internal/storage"

	"go.uber.org/zap"
)

// StorageKey is the durable slot the wishlist persists under, independent of
// the cart's key.
const StorageKey = "wishlist-storage"

//go:generate mockgen -source=wishlist_service.go -destination=../mock/wishlist/wishlist_service_mock.go -package=mock
type Service interface {
	AddItem(ctx context.Context, entry Entry) error
	RemoveItem(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error

	Contains(productID int64) bool
	Items() []Entry
	Count() int
}

type service struct {
	mu     sync.Mutex
	items  []Entry
	store  storage.Store
	bus    *events.Bus
	logger *zap.Logger
}

func NewService(store storage.Store, bus *events.Bus, logger *zap.Logger) Service {
	s := &service{
		store:  store,
		bus:    bus,
		logger: logger,
	}
	s.rehydrate()
	return s
}

func (s *service) rehydrate() {
	raw, err := s.store.Get(context.Background(), StorageKey)
	if err != nil {
		if !errors.Is(err, storage.ErrKeyNotFound) {
			s.logger.Warn("wishlist rehydration failed, starting empty", zap.Error(err))
		}
		return
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.logger.Warn("wishlist snapshot corrupt, starting empty", zap.Error(err))
		return
	}
	s.items = snap.Items
}

func (s *service) persist(ctx context.Context) error {
	raw, err := json.Marshal(snapshot{Items: s.items})
	if err != nil {
		return err
	}

	if err := s.store.Set(ctx, StorageKey, raw); err != nil {
		s.logger.Error("wishlist persistence failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) contains(productID int64) bool {
	for _, entry := range s.items {
		if entry.ID == productID {
			return true
		}
	}
	return false
}

// AddItem is idempotent: a duplicate id is silently ignored, never merged or
// rejected.
func (s *service) AddItem(ctx context.Context, entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.contains(entry.ID) {
		return nil
	}
	s.items = append(s.items, entry)

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.bus.Publish(events.EntityWishlist, "item_added", entry.ID)
	return nil
}

func (s *service) RemoveItem(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, entry := range s.items {
		if entry.ID != productID {
			continue
		}
		s.items = append(s.items[:i], s.items[i+1:]...)

		if err := s.persist(ctx); err != nil {
			return err
		}

		s.bus.Publish(events.EntityWishlist, "item_removed", productID)
		return nil
	}
	return nil
}

// Clear drops the durable slot rather than writing an empty snapshot;
// rehydration reads a missing key as an empty wishlist.
func (s *service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil

	if err := s.store.Delete(ctx, StorageKey); err != nil {
		s.logger.Error("wishlist persistence failed", zap.Error(err))
		return err
	}

	s.bus.Publish(events.EntityWishlist, "cleared", nil)
	return nil
}

// Contains is a pure membership test with no side effects.
func (s *service) Contains(productID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.contains(productID)
}

func (s *service) Items() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Entry, len(s.items))
	copy(out, s.items)
	return out
}

func (s *service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}
