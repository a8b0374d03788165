package model

// カートの明細。
// 同一商品IDの明細は1本のみ、Quantityは常に1以上。
type CartLine struct {
	Product  Product `json:"product"`
	Quantity int64   `json:"quantity"`
}
