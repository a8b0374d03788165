package usecase

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/Jorrgejimenezm/FlickShop/internal/cart"
	"github.com/Jorrgejimenezm/FlickShop/internal/domain/model"
	"github.com/Jorrgejimenezm/FlickShop/internal/storeapi"
)

// ProductGetterはカートが必要とする商品取得だけを約束
type ProductGetter interface {
	GetProduct(ctx context.Context, id int64) (model.Product, error)
}

// CartUsecaseは/cartの業務ロジック。
// 明細の状態遷移はManagerに任せ、ここでは入力検証と
// 在庫による数量クランプ（呼び出し側の責務）を行う。
type CartUsecase struct {
	products ProductGetter
}

// DI
func NewCartUsecase(products ProductGetter) *CartUsecase {
	return &CartUsecase{products: products}
}

// CartViewはカート応答
type CartView struct {
	Items      []model.CartLine `json:"items"`
	TotalItems int64            `json:"total_items"`
	TotalPrice decimal.Decimal  `json:"total_price"`
}

type AddItemInput struct {
	ProductID int64
	Quantity  int64
}

func (u *CartUsecase) GetCart(m *cart.Manager) CartView {
	return buildView(m)
}

// AddItemはカートへ追加する。
// 要求数量が在庫を超える場合は入る分までに丸め、1個も入らなければエラー。
func (u *CartUsecase) AddItem(ctx context.Context, m *cart.Manager, in AddItemInput) (CartView, error) {
	if in.ProductID <= 0 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	p, err := u.products.GetProduct(ctx, in.ProductID)
	if err != nil {
		if ae, ok := storeapi.AsAPIError(err); ok && ae.Status == http.StatusNotFound {
			return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		return CartView{}, fromAPIError(err)
	}

	add := clampQuantity(m, p, in.Quantity)
	if add < 1 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}

	m.AddToCart(ctx, p, add)
	return buildView(m), nil
}

// Incrementは同一商品を1つ追加する
func (u *CartUsecase) Increment(ctx context.Context, m *cart.Manager, productID int64) (CartView, error) {
	if productID <= 0 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	p, err := u.products.GetProduct(ctx, productID)
	if err != nil {
		if ae, ok := storeapi.AsAPIError(err); ok && ae.Status == http.StatusNotFound {
			return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		return CartView{}, fromAPIError(err)
	}

	if clampQuantity(m, p, 1) < 1 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "stock exceeded")
	}

	m.IncrementItem(ctx, p)
	return buildView(m), nil
}

// RemoveItemは明細を減らす。quantity=nilは明細ごと削除。
func (u *CartUsecase) RemoveItem(ctx context.Context, m *cart.Manager, productID int64, quantity *int64) (CartView, error) {
	if productID <= 0 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if quantity != nil && *quantity < 1 {
		return CartView{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	if quantity == nil {
		m.RemoveFromCart(ctx, productID)
	} else {
		m.RemoveFromCart(ctx, productID, *quantity)
	}
	return buildView(m), nil
}

func (u *CartUsecase) Clear(ctx context.Context, m *cart.Manager) CartView {
	m.ClearCart(ctx)
	return buildView(m)
}

func (u *CartUsecase) Reload(ctx context.Context, m *cart.Manager) CartView {
	m.ReloadCart(ctx)
	return buildView(m)
}

// clampQuantityはカート内の既存数量も含めて在庫までに丸める
func clampQuantity(m *cart.Manager, p model.Product, requested int64) int64 {
	var current int64
	for _, line := range m.Items() {
		if line.Product.ID == p.ID {
			current = line.Quantity
			break
		}
	}

	if current+requested <= p.Stock {
		return requested
	}
	return p.Stock - current
}

func buildView(m *cart.Manager) CartView {
	return CartView{
		Items:      m.Items(),
		TotalItems: m.TotalItems(),
		TotalPrice: m.TotalPrice(),
	}
}
