package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Jorrgejimenezm/FlickShop/internal/cart"
	"github.com/Jorrgejimenezm/FlickShop/internal/domain/model"
	"github.com/Jorrgejimenezm/FlickShop/internal/handler"
	"github.com/Jorrgejimenezm/FlickShop/internal/infra/kvstore"
	"github.com/Jorrgejimenezm/FlickShop/internal/middleware"
	"github.com/Jorrgejimenezm/FlickShop/internal/storeapi"
	"github.com/Jorrgejimenezm/FlickShop/internal/usecase"
)

// 固定カタログを返すスタブ
type stubProductGetter struct {
	products map[int64]model.Product
}

func (s *stubProductGetter) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return model.Product{}, &storeapi.APIError{Status: http.StatusNotFound, Message: "not found"}
	}
	return p, nil
}

type cartViewResponse struct {
	Items []struct {
		Product struct {
			ID int64 `json:"id"`
		} `json:"product"`
		Quantity int64 `json:"quantity"`
	} `json:"items"`
	TotalItems int64           `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func newCartApp(t *testing.T) *echo.Echo {
	t.Helper()

	store := cart.NewStore(kvstore.NewMemoryStore(), kvstore.NewMemoryStore(), zap.NewNop())
	factory := cart.NewFactory(store, zap.NewNop())

	products := &stubProductGetter{products: map[int64]model.Product{
		1: {ID: 1, Name: "Camiseta", Price: decimal.RequireFromString("19.99"), Stock: 10},
		2: {ID: 2, Name: "Taza", Price: decimal.RequireFromString("8.00"), Stock: 3},
	}}

	e := echo.New()
	e.Use(middleware.BearerToken())
	handler.NewCartHandler(usecase.NewCartUsecase(products), factory).RegisterRoutes(e)
	return e
}

func userToken(t *testing.T, userID string) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier": userID,
	})
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func doCartRequest(t *testing.T, e *echo.Echo, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeCartView(t *testing.T, rec *httptest.ResponseRecorder) cartViewResponse {
	t.Helper()

	var view cartViewResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	return view
}

// 追加→取得→削除の一連の流れ（匿名）
func TestCartHandler_AnonymousFlow(t *testing.T) {
	e := newCartApp(t)

	rec := doCartRequest(t, e, http.MethodPost, "/cart/items", "", `{"product_id":1,"quantity":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodeCartView(t, rec)
	assert.Equal(t, int64(2), view.TotalItems)
	assert.True(t, view.TotalPrice.Equal(decimal.RequireFromString("39.98")))

	// 別リクエストでも保存済みカートが見える
	rec = doCartRequest(t, e, http.MethodGet, "/cart", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	view = decodeCartView(t, rec)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(1), view.Items[0].Product.ID)

	rec = doCartRequest(t, e, http.MethodDelete, "/cart/items/1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCartView(t, rec).Items)
}

// 数量未指定は1個扱い
func TestCartHandler_AddItem_DefaultQuantity(t *testing.T) {
	e := newCartApp(t)

	rec := doCartRequest(t, e, http.MethodPost, "/cart/items", "", `{"product_id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1), decodeCartView(t, rec).TotalItems)
}

func TestCartHandler_Increment(t *testing.T) {
	e := newCartApp(t)

	doCartRequest(t, e, http.MethodPost, "/cart/items", "", `{"product_id":2,"quantity":1}`)

	rec := doCartRequest(t, e, http.MethodPatch, "/cart/items/2/increment", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2), decodeCartView(t, rec).TotalItems)
}

// ?quantity= で一部だけ減らす
func TestCartHandler_RemoveItem_PartialQuantity(t *testing.T) {
	e := newCartApp(t)

	doCartRequest(t, e, http.MethodPost, "/cart/items", "", `{"product_id":1,"quantity":5}`)

	rec := doCartRequest(t, e, http.MethodDelete, "/cart/items/1?quantity=2", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(3), decodeCartView(t, rec).TotalItems)
}

func TestCartHandler_Clear(t *testing.T) {
	e := newCartApp(t)

	doCartRequest(t, e, http.MethodPost, "/cart/items", "", `{"product_id":1,"quantity":2}`)

	rec := doCartRequest(t, e, http.MethodDelete, "/cart", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeCartView(t, rec).Items)
}

// ユーザーと匿名でカートは別
func TestCartHandler_UserCartIsSeparate(t *testing.T) {
	e := newCartApp(t)
	token := userToken(t, "42")

	doCartRequest(t, e, http.MethodPost, "/cart/items", "", `{"product_id":1,"quantity":1}`)
	doCartRequest(t, e, http.MethodPost, "/cart/items", token, `{"product_id":2,"quantity":3}`)

	view := decodeCartView(t, doCartRequest(t, e, http.MethodGet, "/cart", "", ""))
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(1), view.Items[0].Product.ID)

	view = decodeCartView(t, doCartRequest(t, e, http.MethodGet, "/cart", token, ""))
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(2), view.Items[0].Product.ID)
	assert.Equal(t, int64(3), view.TotalItems)
}

func TestCartHandler_AddItem_BadRequests(t *testing.T) {
	e := newCartApp(t)

	for name, body := range map[string]string{
		"invalid json":       `{`,
		"unknown field type": `{"product_id":"x"}`,
	} {
		rec := doCartRequest(t, e, http.MethodPost, "/cart/items", "", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
	}
}
