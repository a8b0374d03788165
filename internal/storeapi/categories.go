package storeapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Jorrgejimenezm/FlickShop/internal/domain/model"
)

const categoriesPath = "/api/Categories"

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := c.doJSON(ctx, http.MethodGet, categoriesPath, "", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *Client) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	var cat model.Category
	err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("%s/%d", categoriesPath, id), "", nil, &cat)
	return cat, err
}

func (c *Client) CreateCategory(ctx context.Context, token string, in CategoryInput) (model.Category, error) {
	var created model.Category
	err := c.doJSON(ctx, http.MethodPost, categoriesPath, token, in, &created)
	return created, err
}

func (c *Client) UpdateCategory(ctx context.Context, token string, id int64, in CategoryInput) error {
	return c.doJSON(ctx, http.MethodPut, fmt.Sprintf("%s/%d", categoriesPath, id), token, in, nil)
}

func (c *Client) DeleteCategory(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", categoriesPath, id), token, nil, nil)
}
