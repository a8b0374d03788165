package cart_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jorrgejimenezm/FlickShop/internal/cart"
	"github.com/Jorrgejimenezm/FlickShop/internal/domain/model"
	"github.com/Jorrgejimenezm/FlickShop/internal/infra/kvstore"
	"github.com/Jorrgejimenezm/FlickShop/internal/repository"
)

func newMemory() *kvstore.MemoryStore {
	return kvstore.NewMemoryStore()
}

func newTestStore() (*cart.Store, *kvstore.MemoryStore, *kvstore.MemoryStore) {
	keyed := newMemory()
	anonymous := newMemory()
	return cart.NewStore(keyed, anonymous, zap.NewNop()), keyed, anonymous
}

func testProduct(id int64, price string) model.Product {
	return model.Product{
		ID:    id,
		Name:  "producto",
		Price: decimal.RequireFromString(price),
		Stock: 100,
	}
}

// 同じidentityで保存→読み出しで同じ明細が戻る（順序は問わない）
func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore()

	lines := []model.CartLine{
		{Product: testProduct(1, "9.99"), Quantity: 2},
		{Product: testProduct(2, "1.50"), Quantity: 5},
	}
	require.NoError(t, s.Save(ctx, lines, "u1"))

	loaded, err := s.Load(ctx, "u1")
	require.NoError(t, err)

	got := map[int64]int64{}
	for _, l := range loaded {
		got[l.Product.ID] = l.Quantity
	}
	assert.Equal(t, map[int64]int64{1: 2, 2: 5}, got)
}

func TestStore_AnonymousRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, keyed, anonymous := newTestStore()

	lines := []model.CartLine{{Product: testProduct(1, "3.00"), Quantity: 1}}
	require.NoError(t, s.Save(ctx, lines, ""))

	//匿名は固定キーで匿名ストアへ入る
	_, err := anonymous.Get(ctx, "cart")
	assert.NoError(t, err)
	_, err = keyed.Get(ctx, "cart")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	loaded, err := s.Load(ctx, "")
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, int64(1), loaded[0].Product.ID)
}

// 匿名とログイン済みは別領域。混ざらない。
func TestStore_IdentityAndAnonymousAreDisjoint(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestStore()

	require.NoError(t, s.Save(ctx, []model.CartLine{{Product: testProduct(1, "3.00"), Quantity: 1}}, ""))

	loaded, err := s.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestStore_LoadMissingIsEmpty(t *testing.T) {
	s, _, _ := newTestStore()

	loaded, err := s.Load(context.Background(), "nobody")
	require.NoError(t, err)
	assert.NotNil(t, loaded)
	assert.Empty(t, loaded)
}

func TestStore_SaveNilStoresEmptyList(t *testing.T) {
	ctx := context.Background()
	s, keyed, _ := newTestStore()

	require.NoError(t, s.Save(ctx, nil, "u1"))

	raw, err := keyed.Get(ctx, "cart-u1")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", raw)
}

// 壊れたデータは隔離キーへ退避され、読み出しは空で返る
func TestStore_CorruptPayloadIsQuarantined(t *testing.T) {
	ctx := context.Background()
	s, keyed, _ := newTestStore()

	require.NoError(t, keyed.Set(ctx, "cart-u1", "{broken json", 0))

	loaded, err := s.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, loaded)

	raw, err := keyed.Get(ctx, "cart-u1-quarantine")
	require.NoError(t, err)
	assert.Equal(t, "{broken json", raw)

	//元のキーは次のSaveまで残る
	raw, err = keyed.Get(ctx, "cart-u1")
	require.NoError(t, err)
	assert.Equal(t, "{broken json", raw)
}
