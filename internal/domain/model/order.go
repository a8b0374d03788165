package model

import "github.com/shopspring/decimal"

// 注文の商品明細（リモートAPIのOrderDtoに合わせる）
type OrderProduct struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int64           `json:"quantity"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

type Order struct {
	ID              int64           `json:"id,omitempty"`
	CustomerName    string          `json:"customer_name"`
	CustomerEmail   string          `json:"customer_email"`
	PhoneNumber     string          `json:"phone_number"`
	ShippingAddress string          `json:"shipping_address"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	OrderDate       string          `json:"order_date,omitempty"`
	Shipped         bool            `json:"shipped,omitempty"`
	Products        []OrderProduct  `json:"products"`
}
