package storage

import (
	"context"

	"github.com/ctrl-sourav/Nexus-cart/internal/pkg/apperror"
)

//go:generate mockgen -source=storage.go -destination=../mock/storage/storage_mock.go -package=mock

// Store is the durable local key-value slot the state stores persist into.
// It is the desktop analog of browser localStorage: one value per string key,
// survives process restarts, no cross-device guarantees.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

var ErrKeyNotFound = apperror.New(apperror.CodeNotFound, "key not found in local storage")
