package cart

import (
	"go.uber.org/zap"

	"github.com/Jorrgejimenezm/FlickShop/internal/identity"
)

// Factoryはリクエストごとのマネージャ生成をまとめる
type Factory struct {
	store  *Store
	logger *zap.Logger
}

// DI
func NewFactory(store *Store, logger *zap.Logger) *Factory {
	return &Factory{store: store, logger: logger}
}

// ForTokenはbearerトークン（空なら匿名）からマネージャを作る
func (f *Factory) ForToken(raw string) *Manager {
	return NewManager(identity.FromToken(raw), f.store, f.logger)
}
