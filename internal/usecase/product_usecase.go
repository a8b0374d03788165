package usecase

import (
	"context"
	"net/http"
	"strings"

	"github.com/Jorrgejimenezm/FlickShop/internal/domain/model"
	"github.com/Jorrgejimenezm/FlickShop/internal/storeapi"
)

// ProductAPIはリモートAPIの商品操作
type ProductAPI interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	CreateProduct(ctx context.Context, token string, in storeapi.ProductInput) (model.Product, error)
	UpdateProduct(ctx context.Context, token string, id int64, in storeapi.ProductInput) error
	DeleteProduct(ctx context.Context, token string, id int64) error
}

// ProductUsecaseは商品一覧の絞り込みとページングをクライアント側で行う。
// リモートAPIは全件を返すだけなので、検索語・カテゴリ・ページはここで処理する。
type ProductUsecase struct {
	api ProductAPI
}

// DI
func NewProductUsecase(api ProductAPI) *ProductUsecase {
	return &ProductUsecase{api: api}
}

type ListProductsInput struct {
	Page       int
	Limit      int
	Q          string
	CategoryID int64 // 0は全カテゴリ
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int             `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

func (u *ProductUsecase) List(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page < 1 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	products, err := u.api.ListProducts(ctx)
	if err != nil {
		return ProductListOutput{}, fromAPIError(err)
	}

	filtered := make([]model.Product, 0, len(products))
	q := strings.ToLower(strings.TrimSpace(in.Q))
	for _, p := range products {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		if in.CategoryID > 0 && p.CategoryID != in.CategoryID {
			continue
		}
		filtered = append(filtered, p)
	}

	//ページ切り出し
	start := (in.Page - 1) * in.Limit
	end := start + in.Limit
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return ProductListOutput{
		Items: filtered[start:end],
		Total: len(filtered),
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *ProductUsecase) Get(ctx context.Context, id int64) (model.Product, error) {
	if id <= 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.api.GetProduct(ctx, id)
	if err != nil {
		return model.Product{}, fromAPIError(err)
	}
	return p, nil
}

// 管理者向け。権限チェックはリモートAPIがトークンで行う。

func (u *ProductUsecase) Create(ctx context.Context, token string, in storeapi.ProductInput) (model.Product, error) {
	if err := validateProductInput(in); err != nil {
		return model.Product{}, err
	}

	created, err := u.api.CreateProduct(ctx, token, in)
	if err != nil {
		return model.Product{}, fromAPIError(err)
	}
	return created, nil
}

func (u *ProductUsecase) Update(ctx context.Context, token string, id int64, in storeapi.ProductInput) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateProductInput(in); err != nil {
		return err
	}

	if err := u.api.UpdateProduct(ctx, token, id, in); err != nil {
		return fromAPIError(err)
	}
	return nil
}

func (u *ProductUsecase) Delete(ctx context.Context, token string, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.api.DeleteProduct(ctx, token, id); err != nil {
		return fromAPIError(err)
	}
	return nil
}

func validateProductInput(in storeapi.ProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid stock")
	}
	if in.CategoryID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid category_id")
	}
	return nil
}
