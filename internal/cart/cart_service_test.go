package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ctrl-sourav/Nexus-cart/internal/cart"
	"github.com/ctrl-sourav/Nexus-cart/internal/events"
	storagemock "github.com/ctrl-sourav/Nexus-cart/internal/mock/storage"
	"github.com/ctrl-sourav/Nexus-cart/internal/storage"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func newCart(t *testing.T) (cart.Service, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	return cart.NewService(store, events.NewBus(), zap.NewNop()), store
}

func lineItem(id int64, title string, price float64) cart.LineItem {
	return cart.LineItem{
		ID:    id,
		Title: title,
		Price: decimal.NewFromFloat(price),
	}
}

func TestCartService_AddItem(t *testing.T) {
	ctx := context.Background()

	t.Run("distinct_ids_one_entry_each", func(t *testing.T) {
		svc, _ := newCart(t)

		require.NoError(t, svc.AddItem(ctx, lineItem(1, "Red Shoe", 10)))
		require.NoError(t, svc.AddItem(ctx, lineItem(2, "Blue Hat", 50)))
		require.NoError(t, svc.AddItem(ctx, lineItem(3, "Green Sock", 5)))

		items := svc.Items()
		require.Len(t, items, 3)
		for _, item := range items {
			assert.Equal(t, int64(1), item.Quantity)
		}
	})

	t.Run("repeat_add_increments_quantity", func(t *testing.T) {
		svc, _ := newCart(t)

		require.NoError(t, svc.AddItem(ctx, lineItem(1, "Red Shoe", 10)))
		require.NoError(t, svc.AddItem(ctx, lineItem(1, "Red Shoe", 10)))

		items := svc.Items()
		require.Len(t, items, 1)
		assert.Equal(t, int64(2), items[0].Quantity)
	})

	t.Run("input_quantity_is_ignored", func(t *testing.T) {
		svc, _ := newCart(t)

		item := lineItem(7, "Bulk Thing", 3)
		item.Quantity = 99
		require.NoError(t, svc.AddItem(ctx, item))

		items := svc.Items()
		require.Len(t, items, 1)
		assert.Equal(t, int64(1), items[0].Quantity)
	})

	t.Run("insertion_order_preserved", func(t *testing.T) {
		svc, _ := newCart(t)

		require.NoError(t, svc.AddItem(ctx, lineItem(3, "c", 1)))
		require.NoError(t, svc.AddItem(ctx, lineItem(1, "a", 1)))
		require.NoError(t, svc.AddItem(ctx, lineItem(2, "b", 1)))

		items := svc.Items()
		assert.Equal(t, int64(3), items[0].ID)
		assert.Equal(t, int64(1), items[1].ID)
		assert.Equal(t, int64(2), items[2].ID)
	})
}

func TestCartService_TotalPrice(t *testing.T) {
	ctx := context.Background()

	t.Run("single_entry_times_quantity", func(t *testing.T) {
		svc, _ := newCart(t)

		require.NoError(t, svc.AddItem(ctx, lineItem(5, "Widget", 20)))
		require.NoError(t, svc.UpdateQuantity(ctx, 5, 3))

		assert.True(t, svc.TotalPrice().Equal(decimal.NewFromInt(60)),
			"got %s", svc.TotalPrice())
	})

	t.Run("sum_over_entries", func(t *testing.T) {
		svc, _ := newCart(t)

		require.NoError(t, svc.AddItem(ctx, lineItem(1, "a", 10.50)))
		require.NoError(t, svc.AddItem(ctx, lineItem(2, "b", 0.99)))
		require.NoError(t, svc.AddItem(ctx, lineItem(2, "b", 0.99)))

		want := decimal.NewFromFloat(12.48)
		assert.True(t, svc.TotalPrice().Equal(want), "got %s", svc.TotalPrice())
	})

	t.Run("empty_cart_is_zero", func(t *testing.T) {
		svc, _ := newCart(t)
		assert.True(t, svc.TotalPrice().IsZero())
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()

	t.Run("sets_quantity", func(t *testing.T) {
		svc, _ := newCart(t)

		require.NoError(t, svc.AddItem(ctx, lineItem(1, "a", 10)))
		require.NoError(t, svc.UpdateQuantity(ctx, 1, 5))

		assert.Equal(t, int64(5), svc.Items()[0].Quantity)
		assert.Equal(t, int64(5), svc.Count())
	})

	t.Run("zero_is_equivalent_to_remove", func(t *testing.T) {
		viaUpdate, _ := newCart(t)
		viaRemove, _ := newCart(t)

		require.NoError(t, viaUpdate.AddItem(ctx, lineItem(1, "a", 10)))
		require.NoError(t, viaRemove.AddItem(ctx, lineItem(1, "a", 10)))

		require.NoError(t, viaUpdate.UpdateQuantity(ctx, 1, 0))
		require.NoError(t, viaRemove.RemoveItem(ctx, 1))

		assert.Equal(t, viaRemove.Items(), viaUpdate.Items())
		assert.Empty(t, viaUpdate.Items())
	})

	t.Run("negative_removes", func(t *testing.T) {
		svc, _ := newCart(t)

		require.NoError(t, svc.AddItem(ctx, lineItem(1, "a", 10)))
		require.NoError(t, svc.UpdateQuantity(ctx, 1, -3))

		assert.Empty(t, svc.Items())
	})

	t.Run("absent_id_is_noop", func(t *testing.T) {
		svc, _ := newCart(t)

		require.NoError(t, svc.AddItem(ctx, lineItem(1, "a", 10)))
		require.NoError(t, svc.UpdateQuantity(ctx, 42, 7))

		require.Len(t, svc.Items(), 1)
		assert.Equal(t, int64(1), svc.Items()[0].Quantity)
	})
}

func TestCartService_RemoveItem(t *testing.T) {
	ctx := context.Background()
	svc, _ := newCart(t)

	require.NoError(t, svc.AddItem(ctx, lineItem(1, "a", 10)))
	require.NoError(t, svc.AddItem(ctx, lineItem(2, "b", 20)))

	require.NoError(t, svc.RemoveItem(ctx, 1))
	require.Len(t, svc.Items(), 1)
	assert.Equal(t, int64(2), svc.Items()[0].ID)

	// Removing something that is not there must not error.
	require.NoError(t, svc.RemoveItem(ctx, 999))
	assert.Len(t, svc.Items(), 1)
}

func TestCartService_Clear(t *testing.T) {
	ctx := context.Background()
	svc, store := newCart(t)

	require.NoError(t, svc.AddItem(ctx, lineItem(1, "a", 10)))
	require.NoError(t, svc.AddItem(ctx, lineItem(2, "b", 20)))
	require.NoError(t, svc.Clear(ctx))

	assert.Empty(t, svc.Items())
	assert.Equal(t, int64(0), svc.Count())
	assert.True(t, svc.TotalPrice().IsZero())

	// Clear drops the durable slot; a restart stays empty.
	_, err := store.Get(ctx, cart.StorageKey)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	second := cart.NewService(store, events.NewBus(), zap.NewNop())
	assert.Empty(t, second.Items())
}

func TestCartService_Rehydrate(t *testing.T) {
	ctx := context.Background()

	t.Run("survives_restart", func(t *testing.T) {
		store := storage.NewMemoryStore()
		bus := events.NewBus()

		first := cart.NewService(store, bus, zap.NewNop())
		require.NoError(t, first.AddItem(ctx, lineItem(1, "Red Shoe", 10)))
		require.NoError(t, first.AddItem(ctx, lineItem(1, "Red Shoe", 10)))

		second := cart.NewService(store, bus, zap.NewNop())
		items := second.Items()
		require.Len(t, items, 1)
		assert.Equal(t, int64(2), items[0].Quantity)
		assert.Equal(t, "Red Shoe", items[0].Title)
	})

	t.Run("corrupt_snapshot_starts_empty", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, cart.StorageKey, []byte("{not json")))

		svc := cart.NewService(store, events.NewBus(), zap.NewNop())
		assert.Empty(t, svc.Items())
	})
}

func TestCartService_PersistsAfterEveryMutation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	store := storagemock.NewMockStore(ctrl)

	store.EXPECT().Get(gomock.Any(), cart.StorageKey).Return(nil, storage.ErrKeyNotFound)
	store.EXPECT().Set(gomock.Any(), cart.StorageKey, gomock.Any()).Return(nil).Times(3)
	store.EXPECT().Delete(gomock.Any(), cart.StorageKey).Return(nil)

	svc := cart.NewService(store, events.NewBus(), zap.NewNop())

	require.NoError(t, svc.AddItem(ctx, lineItem(1, "a", 10)))
	require.NoError(t, svc.UpdateQuantity(ctx, 1, 4))
	require.NoError(t, svc.RemoveItem(ctx, 1))
	require.NoError(t, svc.Clear(ctx))
}

func TestCartService_PersistenceFailureSurfaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := storagemock.NewMockStore(ctrl)
	store.EXPECT().Get(gomock.Any(), cart.StorageKey).Return(nil, storage.ErrKeyNotFound)
	store.EXPECT().Set(gomock.Any(), cart.StorageKey, gomock.Any()).
		Return(errors.New("disk full"))

	svc := cart.NewService(store, events.NewBus(), zap.NewNop())

	err := svc.AddItem(context.Background(), lineItem(1, "a", 10))
	assert.Error(t, err)
}
