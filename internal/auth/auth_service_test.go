package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ctrl-sourav/Nexus-cart/internal/auth"
	"github.com/ctrl-sourav/Nexus-cart/internal/events"
	"github.com/ctrl-sourav/Nexus-cart/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuth(t *testing.T) auth.Service {
	t.Helper()
	return auth.NewService(storage.NewMemoryStore(), events.NewBus(), zap.NewNop(), 0)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_credentials", func(t *testing.T) {
		svc := newAuth(t)

		ok, err := svc.Login(ctx, "a@b.com", "abcdef")
		require.NoError(t, err)
		require.True(t, ok)

		user, authed := svc.CurrentUser()
		require.True(t, authed)
		assert.Equal(t, "a", user.Name)
		assert.Equal(t, "a@b.com", user.Email)
		assert.Equal(t, "1", user.ID)
	})

	t.Run("empty_email_fails", func(t *testing.T) {
		svc := newAuth(t)

		ok, err := svc.Login(ctx, "", "abcdef")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, svc.IsAuthenticated())
	})

	t.Run("short_password_fails", func(t *testing.T) {
		svc := newAuth(t)

		ok, err := svc.Login(ctx, "a@b.com", "abcde")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, svc.IsAuthenticated())
	})

	t.Run("six_char_password_is_enough", func(t *testing.T) {
		svc := newAuth(t)

		ok, err := svc.Login(ctx, "a@b.com", "123456")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("name_truncated_at_first_at_sign", func(t *testing.T) {
		svc := newAuth(t)

		ok, err := svc.Login(ctx, "jane.doe@shop@example.com", "abcdef")
		require.NoError(t, err)
		require.True(t, ok)

		user, _ := svc.CurrentUser()
		assert.Equal(t, "jane.doe", user.Name)
	})

	t.Run("email_without_at_keeps_whole_string", func(t *testing.T) {
		svc := newAuth(t)

		ok, err := svc.Login(ctx, "not-an-email", "abcdef")
		require.NoError(t, err)
		require.True(t, ok)

		user, _ := svc.CurrentUser()
		assert.Equal(t, "not-an-email", user.Name)
	})
}

func TestAuthService_Signup(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_signup_uses_name_verbatim", func(t *testing.T) {
		svc := newAuth(t)

		ok, err := svc.Signup(ctx, "jane@example.com", "secret99", "Jane Doe")
		require.NoError(t, err)
		require.True(t, ok)

		user, authed := svc.CurrentUser()
		require.True(t, authed)
		assert.Equal(t, "Jane Doe", user.Name)
		assert.Equal(t, "jane@example.com", user.Email)
	})

	t.Run("empty_name_fails", func(t *testing.T) {
		svc := newAuth(t)

		ok, err := svc.Signup(ctx, "jane@example.com", "secret99", "")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, svc.IsAuthenticated())
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	svc := auth.NewService(store, events.NewBus(), zap.NewNop(), 0)

	ok, err := svc.Login(ctx, "a@b.com", "abcdef")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, svc.Logout(ctx))
	assert.False(t, svc.IsAuthenticated())

	// Logout drops the durable slot; a restart stays anonymous.
	_, err = store.Get(ctx, auth.StorageKey)
	assert.ErrorIs(t, err, storage.ErrKeyNotFound)

	second := auth.NewService(store, events.NewBus(), zap.NewNop(), 0)
	assert.False(t, second.IsAuthenticated())

	// Logging out while anonymous is fine too.
	require.NoError(t, svc.Logout(ctx))
	assert.False(t, svc.IsAuthenticated())
}

func TestAuthService_Rehydrate(t *testing.T) {
	ctx := context.Background()

	t.Run("session_survives_restart", func(t *testing.T) {
		store := storage.NewMemoryStore()
		bus := events.NewBus()

		first := auth.NewService(store, bus, zap.NewNop(), 0)
		ok, err := first.Login(ctx, "a@b.com", "abcdef")
		require.NoError(t, err)
		require.True(t, ok)

		second := auth.NewService(store, bus, zap.NewNop(), 0)
		user, authed := second.CurrentUser()
		require.True(t, authed)
		assert.Equal(t, "a@b.com", user.Email)
	})

	t.Run("corrupt_snapshot_starts_anonymous", func(t *testing.T) {
		store := storage.NewMemoryStore()
		require.NoError(t, store.Set(ctx, auth.StorageKey, []byte("garbage")))

		svc := auth.NewService(store, events.NewBus(), zap.NewNop(), 0)
		assert.False(t, svc.IsAuthenticated())
	})
}

func TestAuthService_SimulatedLatency(t *testing.T) {
	svc := auth.NewService(storage.NewMemoryStore(), events.NewBus(), zap.NewNop(), 30*time.Millisecond)

	start := time.Now()
	ok, err := svc.Login(context.Background(), "a@b.com", "abcdef")
	require.NoError(t, err)
	require.True(t, ok)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestAuthService_CancelledContext(t *testing.T) {
	svc := auth.NewService(storage.NewMemoryStore(), events.NewBus(), zap.NewNop(), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ok, err := svc.Login(ctx, "a@b.com", "abcdef")
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, svc.IsAuthenticated())
}

func TestAuthService_ConcurrentLoginsSerialize(t *testing.T) {
	svc := auth.NewService(storage.NewMemoryStore(), events.NewBus(), zap.NewNop(), 10*time.Millisecond)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, email := range []string{"first@example.com", "second@example.com"} {
		wg.Add(1)
		go func(email string) {
			defer wg.Done()
			ok, err := svc.Login(ctx, email, "abcdef")
			assert.NoError(t, err)
			assert.True(t, ok)
		}(email)
	}
	wg.Wait()

	// Whichever login resolved last wins, and the state is one coherent user.
	user, authed := svc.CurrentUser()
	require.True(t, authed)
	assert.Contains(t, []string{"first@example.com", "second@example.com"}, user.Email)
	assert.Equal(t, "1", user.ID)
}
