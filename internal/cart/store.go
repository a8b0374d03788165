package cart

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/Jorrgejimenezm/FlickShop/internal/domain/model"
	"github.com/Jorrgejimenezm/FlickShop/internal/repository"
)

const (
	anonymousKey      = "cart"
	identityKeyPrefix = "cart-"
	identityTTL       = 7 * 24 * time.Hour
	quarantineSuffix  = "-quarantine"
)

// Storeはカートの保存・読み出し。
// ユーザーIDが解決できれば期限付きストアへ cart-<id> で保存し、
// 解決できなければ匿名ストアへ固定キーで保存する。
// 端末の共有やログイン・ログアウトで別ユーザーのカートが混ざらないよう、
// キーは呼び出しごとに選び直す。
type Store struct {
	keyed     repository.KeyValueStore // 期限付き（ログイン済み）
	anonymous repository.KeyValueStore // 無期限（匿名）
	logger    *zap.Logger
}

// DI
func NewStore(keyed, anonymous repository.KeyValueStore, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		keyed:     keyed,
		anonymous: anonymous,
		logger:    logger,
	}
}

// Saveは明細一覧をJSONで保存する。userID空は匿名。
func (s *Store) Save(ctx context.Context, lines []model.CartLine, userID string) error {
	if lines == nil {
		lines = []model.CartLine{}
	}

	payload, err := json.Marshal(lines)
	if err != nil {
		return err
	}

	backend, key, ttl := s.resolve(userID)
	return backend.Set(ctx, key, string(payload), ttl)
}

// Loadは保存済みの明細を返す。
// 未保存は空。壊れたデータは隔離キーへ退避してから空を返す（エラーにはしない）。
func (s *Store) Load(ctx context.Context, userID string) ([]model.CartLine, error) {
	backend, key, _ := s.resolve(userID)

	raw, err := backend.Get(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return []model.CartLine{}, nil
	}
	if err != nil {
		return nil, err
	}

	var lines []model.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		s.quarantine(ctx, backend, key, raw, err)
		return []model.CartLine{}, nil
	}
	if lines == nil {
		lines = []model.CartLine{}
	}
	return lines, nil
}

func (s *Store) resolve(userID string) (repository.KeyValueStore, string, time.Duration) {
	if userID == "" {
		return s.anonymous, anonymousKey, 0
	}
	return s.keyed, identityKeyPrefix + userID, identityTTL
}

// quarantineは読めなかったデータを無期限で退避する。
// 「保存されていない」と「保存されているが読めない」を区別し、
// 後者を次のSaveで黙って失わないため。
func (s *Store) quarantine(ctx context.Context, backend repository.KeyValueStore, key string, raw string, cause error) {
	s.logger.Warn("stored cart is unreadable, quarantining",
		zap.String("key", key),
		zap.Error(cause),
	)

	if err := backend.Set(ctx, key+quarantineSuffix, raw, 0); err != nil {
		s.logger.Error("failed to quarantine cart payload",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
