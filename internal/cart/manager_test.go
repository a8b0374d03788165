package cart_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jorrgejimenezm/FlickShop/internal/cart"
	"github.com/Jorrgejimenezm/FlickShop/internal/domain/model"
	"github.com/Jorrgejimenezm/FlickShop/internal/identity"
	"github.com/Jorrgejimenezm/FlickShop/internal/repository"
)

// Setの回数を数えるラッパ
type countingStore struct {
	repository.KeyValueStore
	mu   sync.Mutex
	sets int
}

func (s *countingStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	s.sets++
	s.mu.Unlock()
	return s.KeyValueStore.Set(ctx, key, value, ttl)
}

func (s *countingStore) setCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}

// 切り替え可能なProvider（ログイン・ログアウトの再現用）
type switchableProvider struct {
	mu sync.Mutex
	id string
}

func (p *switchableProvider) UserID() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.id, p.id != ""
}

func (p *switchableProvider) set(id string) {
	p.mu.Lock()
	p.id = id
	p.mu.Unlock()
}

func userProvider(id string) identity.Provider {
	return identity.ProviderFunc(func() (string, bool) {
		return id, id != ""
	})
}

var anonymousProvider = identity.ProviderFunc(func() (string, bool) {
	return "", false
})

func newLoadedManager(t *testing.T, provider identity.Provider) (*cart.Manager, *cart.Store) {
	t.Helper()

	store, _, _ := newTestStore()
	m := cart.NewManager(provider, store, zap.NewNop())
	m.Load(context.Background())
	return m, store
}

func TestAddToCart_NewLine(t *testing.T) {
	ctx := context.Background()
	m, _ := newLoadedManager(t, userProvider("u1"))

	m.AddToCart(ctx, testProduct(1, "9.99"), 2)

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(2), items[0].Quantity)
	assert.Equal(t, int64(2), m.TotalItems())
}

func TestAddToCart_MergesSameProduct(t *testing.T) {
	ctx := context.Background()
	m, _ := newLoadedManager(t, userProvider("u1"))

	m.AddToCart(ctx, testProduct(1, "9.99"), 2)
	m.AddToCart(ctx, testProduct(1, "9.99"), 3)

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(5), items[0].Quantity)
}

// 同一商品IDの明細は常に1本だけ
func TestAddToCart_NoDuplicateLines(t *testing.T) {
	ctx := context.Background()
	m, _ := newLoadedManager(t, userProvider("u1"))

	m.AddToCart(ctx, testProduct(1, "1.00"), 1)
	m.AddToCart(ctx, testProduct(2, "2.00"), 1)
	m.AddToCart(ctx, testProduct(1, "1.00"), 1)

	seen := map[int64]bool{}
	for _, line := range m.Items() {
		assert.False(t, seen[line.Product.ID], "duplicate line for product %d", line.Product.ID)
		seen[line.Product.ID] = true
		assert.GreaterOrEqual(t, line.Quantity, int64(1))
	}
	assert.Len(t, m.Items(), 2)
}

func TestAddToCart_KeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	m, _ := newLoadedManager(t, userProvider("u1"))

	m.AddToCart(ctx, testProduct(3, "1.00"), 1)
	m.AddToCart(ctx, testProduct(1, "1.00"), 1)
	m.AddToCart(ctx, testProduct(2, "1.00"), 1)
	m.AddToCart(ctx, testProduct(1, "1.00"), 1)

	var ids []int64
	for _, line := range m.Items() {
		ids = append(ids, line.Product.ID)
	}
	assert.Equal(t, []int64{3, 1, 2}, ids)
}

func TestAddToCart_QuantityBelowOneIsIgnored(t *testing.T) {
	ctx := context.Background()
	m, _ := newLoadedManager(t, userProvider("u1"))

	m.AddToCart(ctx, testProduct(1, "1.00"), 0)
	m.AddToCart(ctx, testProduct(1, "1.00"), -3)

	assert.Empty(t, m.Items())
}

// 要求数量が残数量以上なら明細ごと消える
func TestRemoveFromCart_ExcessQuantityDeletesLine(t *testing.T) {
	ctx := context.Background()
	m, _ := newLoadedManager(t, userProvider("u1"))

	m.AddToCart(ctx, testProduct(1, "9.99"), 2)
	m.RemoveFromCart(ctx, 1, 5)

	assert.Empty(t, m.Items())
}

func TestRemoveFromCart_Decrements(t *testing.T) {
	ctx := context.Background()
	m, _ := newLoadedManager(t, userProvider("u1"))

	m.AddToCart(ctx, testProduct(1, "9.99"), 5)
	m.RemoveFromCart(ctx, 1, 2)

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].Quantity)
}

func TestRemoveFromCart_OmittedQuantityDeletesLine(t *testing.T) {
	ctx := context.Background()
	m, _ := newLoadedManager(t, userProvider("u1"))

	m.AddToCart(ctx, testProduct(1, "9.99"), 5)
	m.RemoveFromCart(ctx, 1)

	assert.Empty(t, m.Items())
}

func TestRemoveFromCart_ExactQuantityDeletesLine(t *testing.T) {
	ctx := context.Background()
	m, _ := newLoadedManager(t, userProvider("u1"))

	m.AddToCart(ctx, testProduct(1, "9.99"), 2)
	m.RemoveFromCart(ctx, 1, 2)

	//数量0の明細は残らない
	assert.Empty(t, m.Items())
}

func TestRemoveFromCart_NoMatchDoesNotPersist(t *testing.T) {
	ctx := context.Background()

	keyed := &countingStore{KeyValueStore: newMemory()}
	store := cart.NewStore(keyed, newMemory(), zap.NewNop())
	m := cart.NewManager(userProvider("u1"), store, zap.NewNop())
	m.Load(ctx)

	m.AddToCart(ctx, testProduct(1, "9.99"), 1)
	before := keyed.setCount()

	m.RemoveFromCart(ctx, 999)

	assert.Equal(t, before, keyed.setCount())
	assert.Len(t, m.Items(), 1)
}

// incrementItemはaddToCart(p,1)と同じ状態遷移
func TestIncrementItem_SameAsAddOne(t *testing.T) {
	ctx := context.Background()

	m1, _ := newLoadedManager(t, anonymousProvider)
	m2, _ := newLoadedManager(t, anonymousProvider)

	p := testProduct(1, "2.50")
	m1.IncrementItem(ctx, p)
	m1.IncrementItem(ctx, p)
	m2.AddToCart(ctx, p, 1)
	m2.AddToCart(ctx, p, 1)

	assert.Equal(t, m2.Items(), m1.Items())
	assert.Equal(t, int64(2), m1.TotalItems())
}

func TestClearCart_PersistsEmptyList(t *testing.T) {
	ctx := context.Background()

	keyed := newMemory()
	store := cart.NewStore(keyed, newMemory(), zap.NewNop())
	m := cart.NewManager(userProvider("u1"), store, zap.NewNop())
	m.Load(ctx)

	m.AddToCart(ctx, testProduct(1, "9.99"), 3)
	m.ClearCart(ctx)

	assert.Empty(t, m.Items())
	assert.Equal(t, int64(0), m.TotalItems())

	raw, err := keyed.Get(ctx, "cart-u1")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", raw)
}

// 合計は明細から毎回計算され、別で持つカウンタとずれることがない
func TestTotals_MatchRecomputation(t *testing.T) {
	ctx := context.Background()
	m, _ := newLoadedManager(t, userProvider("u1"))

	m.AddToCart(ctx, testProduct(1, "9.99"), 2)
	m.AddToCart(ctx, testProduct(2, "0.50"), 4)
	m.RemoveFromCart(ctx, 1, 1)
	m.IncrementItem(ctx, testProduct(2, "0.50"))

	var wantItems int64
	wantPrice := decimal.Zero
	for _, line := range m.Items() {
		wantItems += line.Quantity
		wantPrice = wantPrice.Add(line.Product.Price.Mul(decimal.NewFromInt(line.Quantity)))
	}

	assert.Equal(t, wantItems, m.TotalItems())
	assert.True(t, wantPrice.Equal(m.TotalPrice()), "want %s got %s", wantPrice, m.TotalPrice())
}

// 初回読み込みが終わるまで保存は走らない
func TestMutationBeforeLoadDoesNotPersist(t *testing.T) {
	ctx := context.Background()

	keyed := newMemory()
	store := cart.NewStore(keyed, newMemory(), zap.NewNop())
	m := cart.NewManager(userProvider("u1"), store, zap.NewNop())

	m.AddToCart(ctx, testProduct(1, "9.99"), 1)

	_, err := keyed.Get(ctx, "cart-u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLoad_HappensOnlyOnce(t *testing.T) {
	ctx := context.Background()

	store, _, _ := newTestStore()
	require.NoError(t, store.Save(ctx, []model.CartLine{{Product: testProduct(1, "1.00"), Quantity: 1}}, "u1"))

	m := cart.NewManager(userProvider("u1"), store, zap.NewNop())
	m.Load(ctx)
	m.AddToCart(ctx, testProduct(2, "2.00"), 1)

	//2回目のLoadは何もしないので追加分は消えない
	m.Load(ctx)
	assert.Len(t, m.Items(), 2)
}

func TestReloadCart_ReplacesStateWholesale(t *testing.T) {
	ctx := context.Background()

	store, _, _ := newTestStore()
	m := cart.NewManager(userProvider("u1"), store, zap.NewNop())
	m.Load(ctx)

	m.AddToCart(ctx, testProduct(1, "1.00"), 1)

	//外から保存内容を差し替えてからreload
	require.NoError(t, store.Save(ctx, []model.CartLine{{Product: testProduct(9, "5.00"), Quantity: 3}}, "u1"))
	m.ReloadCart(ctx)

	items := m.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int64(9), items[0].Product.ID)
	assert.Equal(t, int64(3), items[0].Quantity)
}

func TestReloadCart_EmptyStoreEmptiesCart(t *testing.T) {
	ctx := context.Background()

	store, keyed, _ := newTestStore()
	m := cart.NewManager(userProvider("u1"), store, zap.NewNop())
	m.Load(ctx)
	m.AddToCart(ctx, testProduct(1, "1.00"), 1)

	require.NoError(t, keyed.Delete(ctx, "cart-u1"))
	m.ReloadCart(ctx)

	assert.Empty(t, m.Items())
}

// ログインでidentityが変わるとreloadはそのユーザーの保存領域を読む。
// 匿名カートとは統合されない。
func TestReloadCart_AfterLoginSwitchesStorage(t *testing.T) {
	ctx := context.Background()

	store, _, anonymous := newTestStore()
	provider := &switchableProvider{}
	m := cart.NewManager(provider, store, zap.NewNop())
	m.Load(ctx)

	//匿名で1件追加
	m.AddToCart(ctx, testProduct(1, "1.00"), 1)

	//ログイン
	provider.set("42")
	m.ReloadCart(ctx)

	//そのユーザーには何も保存されていないので空になる
	assert.Empty(t, m.Items())

	//匿名側の保存はそのまま残っている
	raw, err := anonymous.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Contains(t, raw, `"quantity":1`)
}

// 保存のたびにidentityを解決し直すので、ログイン後の変更はユーザー側へ入る
func TestPersist_UsesCurrentIdentity(t *testing.T) {
	ctx := context.Background()

	store, keyed, _ := newTestStore()
	provider := &switchableProvider{}
	m := cart.NewManager(provider, store, zap.NewNop())
	m.Load(ctx)

	provider.set("42")
	m.AddToCart(ctx, testProduct(1, "1.00"), 1)

	_, err := keyed.Get(ctx, "cart-42")
	assert.NoError(t, err)
}
