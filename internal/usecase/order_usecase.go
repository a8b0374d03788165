package usecase

import (
	"context"
	"net/http"

	"github.com/Jorrgejimenezm/FlickShop/internal/domain/model"
)

// OrderAPIはリモートAPIの注文操作
type OrderAPI interface {
	ListOrders(ctx context.Context, token string) ([]model.Order, error)
	GetOrder(ctx context.Context, token string, id int64) (model.Order, error)
	ListMyOrders(ctx context.Context, token string) ([]model.Order, error)
	UpdateOrder(ctx context.Context, token string, id int64, order model.Order) error
	MarkOrderShipped(ctx context.Context, token string, id int64) error
	DeleteOrder(ctx context.Context, token string, id int64) error
}

// OrderUsecaseは注文まわりの薄い取り次ぎ。
// 権限判定（管理者かどうか）はトークンを受け取ったリモートAPIが行う。
type OrderUsecase struct {
	api OrderAPI
}

// DI
func NewOrderUsecase(api OrderAPI) *OrderUsecase {
	return &OrderUsecase{api: api}
}

func (u *OrderUsecase) ListAll(ctx context.Context, token string) ([]model.Order, error) {
	orders, err := u.api.ListOrders(ctx, token)
	if err != nil {
		return nil, fromAPIError(err)
	}
	return orders, nil
}

func (u *OrderUsecase) Get(ctx context.Context, token string, id int64) (model.Order, error) {
	if id <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	order, err := u.api.GetOrder(ctx, token, id)
	if err != nil {
		return model.Order{}, fromAPIError(err)
	}
	return order, nil
}

func (u *OrderUsecase) ListMine(ctx context.Context, token string) ([]model.Order, error) {
	orders, err := u.api.ListMyOrders(ctx, token)
	if err != nil {
		return nil, fromAPIError(err)
	}
	return orders, nil
}

func (u *OrderUsecase) Update(ctx context.Context, token string, id int64, order model.Order) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.api.UpdateOrder(ctx, token, id, order); err != nil {
		return fromAPIError(err)
	}
	return nil
}

// MarkShippedはQRスキャン発送フローの入口
func (u *OrderUsecase) MarkShipped(ctx context.Context, token string, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.api.MarkOrderShipped(ctx, token, id); err != nil {
		return fromAPIError(err)
	}
	return nil
}

func (u *OrderUsecase) Delete(ctx context.Context, token string, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.api.DeleteOrder(ctx, token, id); err != nil {
		return fromAPIError(err)
	}
	return nil
}
