package cart

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/ctrl-sourav/Nexus-cart/internal/events"
	"github.com/ctrl-sourav/Nexus-cart/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// StorageKey is the durable slot the cart persists under.
const StorageKey = "cart-storage"

//go:generate mockgen -source=cart_service.go -destination=../mock/cart/cart_service_mock.go -package=mock
type Service interface {
	AddItem(ctx context.Context, item LineItem) error
	UpdateQuantity(ctx context.Context, productID, quantity int64) error
	RemoveItem(ctx context.Context, productID int64) error
	Clear(ctx context.Context) error

	Items() []LineItem
	Count() int64
	TotalPrice() decimal.Decimal
}

type service struct {
	mu     sync.Mutex
	items  []LineItem
	store  storage.Store
	bus    *events.Bus
	logger *zap.Logger
}

// NewService builds a cart rehydrated from the durable store. Missing or
// corrupt data falls back to an empty cart rather than failing.
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
			s.logger.Warn("cart rehydration failed, starting empty", zap.Error(err))
		}
		return
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.logger.Warn("cart snapshot corrupt, starting empty", zap.Error(err))
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
		s.logger.Error("cart persistence failed", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) indexOf(productID int64) int {
	for i, item := range s.items {
		if item.ID == productID {
			return i
		}
	}
	return -1
}

// AddItem inserts a new line item with quantity 1, or bumps the existing
// quantity by 1. Any quantity carried on the input is ignored.
func (s *service) AddItem(ctx context.Context, item LineItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(item.ID); i >= 0 {
		s.items[i].Quantity++
	} else {
		item.Quantity = 1
		s.items = append(s.items, item)
	}

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.bus.Publish(events.EntityCart, "item_added", item.ID)
	return nil
}

// UpdateQuantity sets the quantity for a product; zero or negative removes
// the line item. Unknown ids are a harmless no-op.
func (s *service) UpdateQuantity(ctx context.Context, productID, quantity int64) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}
	s.items[i].Quantity = quantity

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.bus.Publish(events.EntityCart, "quantity_updated", productID)
	return nil
}

func (s *service) RemoveItem(ctx context.Context, productID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(productID)
	if i < 0 {
		return nil
	}
	s.items = append(s.items[:i], s.items[i+1:]...)

	if err := s.persist(ctx); err != nil {
		return err
	}

	s.bus.Publish(events.EntityCart, "item_removed", productID)
	return nil
}

// Clear drops the durable slot rather than writing an empty snapshot;
// rehydration reads a missing key as an empty cart.
func (s *service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil

	if err := s.store.Delete(ctx, StorageKey); err != nil {
		s.logger.Error("cart persistence failed", zap.Error(err))
		return err
	}

	s.bus.Publish(events.EntityCart, "cleared", nil)
	return nil
}

// Items returns the line items in insertion order. The slice is a copy.
func (s *service) Items() []LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]LineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Count is the total number of units across all line items.
func (s *service) Count() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int64
	for _, item := range s.items {
		n += item.Quantity
	}
	return n
}

// TotalPrice computes Σ(price × quantity) fresh on every call. Rounding is
// left to the presentation layer.
func (s *service) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := decimal.Zero
	for _, item := range s.items {
		total = total.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
	}
	return total
}
