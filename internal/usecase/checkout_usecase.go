package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Jorrgejimenezm/FlickShop/internal/cart"
	"github.com/Jorrgejimenezm/FlickShop/internal/domain/model"
	"github.com/Jorrgejimenezm/FlickShop/internal/identity"
)

// 送料：50未満は2.99、それ以外は無料
var (
	freeShippingThreshold = decimal.NewFromInt(50)
	shippingFee           = decimal.RequireFromString("2.99")
)

// OrderCreatorは注文作成だけを約束
type OrderCreator interface {
	CreateOrder(ctx context.Context, token string, order model.Order, idempotencyKey string) error
}

// CheckoutUsecaseはカートから注文を組み立ててリモートAPIへ送る。
// 決済そのものは外部ウィジェットの仕事で、ここは決済後の注文記録だけを行う。
type CheckoutUsecase struct {
	orders OrderCreator
	logger *zap.Logger
}

// DI
func NewCheckoutUsecase(orders OrderCreator, logger *zap.Logger) *CheckoutUsecase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CheckoutUsecase{orders: orders, logger: logger}
}

type CheckoutInput struct {
	PhoneNumber     string
	ShippingAddress string
}

type CheckoutOutput struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Checkoutは注文を作成し、成功したらカートを空にする。
// 電話番号と住所は入力優先、無ければトークンのクレームから補完する。
func (u *CheckoutUsecase) Checkout(ctx context.Context, m *cart.Manager, token string, claims identity.Claims, in CheckoutInput) (CheckoutOutput, error) {
	lines := m.Items()
	if len(lines) == 0 {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "cart is empty")
	}

	subtotal := m.TotalPrice()
	shipping := decimal.Zero
	if subtotal.IsPositive() && subtotal.LessThan(freeShippingThreshold) {
		shipping = shippingFee
	}
	total := subtotal.Add(shipping)

	phone := strings.TrimSpace(in.PhoneNumber)
	if phone == "" {
		phone = claims.Phone
	}
	address := strings.TrimSpace(in.ShippingAddress)
	if address == "" {
		address = claims.Address
	}
	if address == "" {
		return CheckoutOutput{}, NewHTTPError(http.StatusBadRequest, "shipping address is required")
	}

	products := make([]model.OrderProduct, 0, len(lines))
	for _, line := range lines {
		products = append(products, model.OrderProduct{
			ID:       line.Product.ID,
			Name:     line.Product.Name,
			Price:    line.Product.Price,
			Quantity: line.Quantity,
			ImageURL: line.Product.ImageURL,
		})
	}

	order := model.Order{
		CustomerName:    claims.FullName(),
		CustomerEmail:   claims.Email,
		PhoneNumber:     phone,
		ShippingAddress: address,
		TotalPrice:      total,
		Products:        products,
	}

	key := uuid.NewString()
	if err := u.orders.CreateOrder(ctx, token, order, key); err != nil {
		u.logger.Error("order creation failed", zap.Error(err))
		return CheckoutOutput{}, fromAPIError(err)
	}

	// 注文が通った後だけカートを空にする
	m.ClearCart(ctx)

	return CheckoutOutput{
		Subtotal:   subtotal,
		Shipping:   shipping,
		TotalPrice: total,
	}, nil
}
