package repository

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// KeyValueStoreはカートの保存先だけを約束。
// ttl=0は無期限。
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
