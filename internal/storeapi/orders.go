package storeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Jorrgejimenezm/FlickShop/internal/domain/model"
)

const ordersPath = "/api/Orders"

// 管理者向け：全注文
func (c *Client) ListOrders(ctx context.Context, token string) ([]model.Order, error) {
	var orders []model.Order
	if err := c.doJSON(ctx, http.MethodGet, ordersPath, token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, token string, id int64) (model.Order, error) {
	var order model.Order
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", ordersPath, id), token, nil, &order)
	return order, err
}

// ログイン中ユーザーの注文履歴
func (c *Client) ListMyOrders(ctx context.Context, token string) ([]model.Order, error) {
	var orders []model.Order
	if err := c.doJSON(ctx, http.MethodGet, ordersPath+"/my-order", token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// CreateOrderは注文を作成する。
// 再送対策としてIdempotency-Keyを付ける。
func (c *Client) CreateOrder(ctx context.Context, token string, order model.Order, idempotencyKey string) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, ordersPath, token, bytes.NewReader(payload), "application/json")
	if err != nil {
		return err
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}
	return c.send(req, nil)
}

func (c *Client) UpdateOrder(ctx context.Context, token string, id int64, order model.Order) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/%d", ordersPath, id), token, order, nil)
}

// 発送済みにする（QRスキャン発送フローが叩く）
func (c *Client) MarkOrderShipped(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodPatch, fmt.Sprintf("%s/%d/ship", ordersPath, id), token, struct{}{}, nil)
}

func (c *Client) DeleteOrder(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", ordersPath, id), token, nil, nil)
}
