package model

import "github.com/shopspring/decimal"

func init() {
	// リモートAPIは価格を数値で返すため文字列ではなく数値で出力する
	decimal.MarshalJSONWithoutQuotes = true
}

// リモートAPIの商品。クライアント側からは読み取り専用。
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	Weight      float64         `json:"weight"`
	CategoryID  int64           `json:"category_id"`
	Category    Category        `json:"category"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}
