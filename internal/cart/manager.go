package cart

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Jorrgejimenezm/FlickShop/internal/domain/model"
	"github.com/Jorrgejimenezm/FlickShop/internal/identity"
)

// Managerはメモリ上のカート状態。
// 明細は挿入順を保ち、同一商品IDの明細は常に1本にまとめる。
// 在庫との突き合わせは呼び出し側の責務でここでは行わない。
//
// 保存の失敗はログに残すだけで呼び出し側へは返さない。
// メモリ上の状態がそのセッションの正とする。
type Manager struct {
	identity identity.Provider
	store    *Store
	logger   *zap.Logger

	mu          sync.Mutex
	lines       []model.CartLine
	initialized bool
}

// DI
func NewManager(provider identity.Provider, store *Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		identity: provider,
		store:    store,
		logger:   logger,
	}
}

// Loadは保存済みカートを一度だけ読み込む。2回目以降は何もしない。
// 読み込みが終わるまでは保存側が動かないので、
// 空の初期状態が保存済みデータを上書きすることはない。
func (m *Manager) Load(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return
	}
	m.hydrate(ctx)
	m.initialized = true
}

// AddToCartは明細を追加する。既存の商品は数量を加算。
func (m *Manager) AddToCart(ctx context.Context, product model.Product, quantity int64) {
	if quantity < 1 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	found := false
	for i := range m.lines {
		if m.lines[i].Product.ID == product.ID {
			m.lines[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		m.lines = append(m.lines, model.CartLine{Product: product, Quantity: quantity})
	}

	m.persist(ctx)
}

// RemoveFromCartは明細を減らす。
// quantity省略、または既存数量以下しか残らない場合は明細ごと削除する。
// 該当商品が無ければ何もしない（保存も走らない）。
func (m *Manager) RemoveFromCart(ctx context.Context, productID int64, quantity ...int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	idx := -1
	for i := range m.lines {
		if m.lines[i].Product.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}

	removeAll := len(quantity) == 0 || m.lines[idx].Quantity <= quantity[0]
	if removeAll {
		m.lines = append(m.lines[:idx], m.lines[idx+1:]...)
	} else {
		m.lines[idx].Quantity -= quantity[0]
	}

	m.persist(ctx)
}

// IncrementItemはAddToCart(product, 1)と同じ
func (m *Manager) IncrementItem(ctx context.Context, product model.Product) {
	m.AddToCart(ctx, product, 1)
}

// ClearCartは全明細を消して空の状態を保存する
func (m *Manager) ClearCart(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lines = nil
	m.persist(ctx)
}

// ReloadCartはユーザーIDを解決し直して保存先から読み直す。
// メモリ上の未保存状態は破棄される。読み込みなので保存は走らない。
func (m *Manager) ReloadCart(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hydrate(ctx)
	m.initialized = true
}

// Itemsは明細のコピーを返す
func (m *Manager) Items() []model.CartLine {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]model.CartLine, len(m.lines))
	copy(items, m.lines)
	return items
}

// TotalItemsは数量の合計。明細から毎回計算する。
func (m *Manager) TotalItems() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	var total int64
	for _, line := range m.lines {
		total += line.Quantity
	}
	return total
}

// TotalPriceは価格×数量の合計。明細から毎回計算する。
func (m *Manager) TotalPrice() decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := decimal.Zero
	for _, line := range m.lines {
		total = total.Add(line.Product.Price.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return total
}

// hydrateは保存先から読み直してメモリ状態を置き換える。
// 読み込み失敗は空として扱う。呼び出し側でロック済みであること。
func (m *Manager) hydrate(ctx context.Context) {
	userID := m.currentUserID()

	lines, err := m.store.Load(ctx, userID)
	if err != nil {
		m.logger.Error("failed to load cart", zap.Error(err))
		lines = []model.CartLine{}
	}
	m.lines = lines
}

// persistは現在の明細を保存する。初回読み込み前は何もしない。
// 呼び出し側でロック済みであること。
func (m *Manager) persist(ctx context.Context) {
	if !m.initialized {
		return
	}

	if err := m.store.Save(ctx, m.lines, m.currentUserID()); err != nil {
		m.logger.Error("failed to save cart", zap.Error(err))
	}
}

// 保存のたびにユーザーIDを解決し直す
func (m *Manager) currentUserID() string {
	if m.identity == nil {
		return ""
	}
	id, ok := m.identity.UserID()
	if !ok {
		return ""
	}
	return id
}
