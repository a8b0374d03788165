package storeapi

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Jorrgejimenezm/FlickShop/internal/domain/model"
)

const productsPath = "/api/products"

// 商品の登録・更新入力。画像は任意。
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64
	Weight      float64
	CategoryID  int64
	Image       *Upload
}

type Upload struct {
	FileName string
	Content  io.Reader
}

func (c *Client) ListProducts(ctx context.Context) ([]model.Product, error) {
	var products []model.Product
	if err := c.doJSON(ctx, http.MethodGet, productsPath, "", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", productsPath, id), "", nil, &p)
	return p, err
}

// CreateProductはmultipartで登録する（画像を含められるため）
func (c *Client) CreateProduct(ctx context.Context, token string, in ProductInput) (model.Product, error) {
	var created model.Product
	err := c.doProductForm(ctx, http.MethodPost, productsPath, token, in, &created)
	return created, err
}

func (c *Client) UpdateProduct(ctx context.Context, token string, id int64, in ProductInput) error {
	return c.doProductForm(ctx, http.MethodPut, fmt.Sprintf("%s/%d", productsPath, id), token, in, nil)
}

func (c *Client) DeleteProduct(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", productsPath, id), token, nil, nil)
}

func (c *Client) doProductForm(ctx context.Context, method, path, token string, in ProductInput, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"Name":        in.Name,
		"Description": in.Description,
		"Price":       in.Price.String(),
		"Stock":       strconv.FormatInt(in.Stock, 10),
		"Weight":      strconv.FormatFloat(in.Weight, 'f', -1, 64),
		"CategoryId":  strconv.FormatInt(in.CategoryID, 10),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return err
		}
	}

	if in.Image != nil {
		part, err := w.CreateFormFile("Image", in.Image.FileName)
		if err != nil {
			return err
		}
		if _, err := io.Copy(part, in.Image.Content); err != nil {
			return err
		}
	}

	if err := w.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, method, path, token, &buf, w.FormDataContentType())
	if err != nil {
		return err
	}
	return c.send(req, out)
}
