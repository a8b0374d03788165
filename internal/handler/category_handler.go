package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Jorrgejimenezm/FlickShop/internal/domain/model"
	"github.com/Jorrgejimenezm/FlickShop/internal/middleware"
	"github.com/Jorrgejimenezm/FlickShop/internal/storeapi"
	"github.com/Jorrgejimenezm/FlickShop/internal/usecase"
)

// CategoryAPIはリモートAPIのカテゴリ操作
type CategoryAPI interface {
	ListCategories(ctx context.Context) ([]model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	CreateCategory(ctx context.Context, token string, in storeapi.CategoryInput) (model.Category, error)
	UpdateCategory(ctx context.Context, token string, id int64, in storeapi.CategoryInput) error
	DeleteCategory(ctx context.Context, token string, id int64) error
}

// カテゴリは取り次ぎだけなのでusecase層を挟まない
type CategoryHandler struct {
	api CategoryAPI
}

// DI
func NewCategoryHandler(api CategoryAPI) *CategoryHandler {
	return &CategoryHandler{api: api}
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/categories", h.list)
	e.GET("/categories/:id", h.detail)

	g := e.Group("/admin/categories", middleware.RequireUser())
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *CategoryHandler) list(c echo.Context) error {
	categories, err := h.api.ListCategories(c.Request().Context())
	if err != nil {
		return writeAPIError(c, err)
	}
	return c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	cat, err := h.api.GetCategory(c.Request().Context(), id)
	if err != nil {
		return writeAPIError(c, err)
	}
	return c.JSON(http.StatusOK, cat)
}

func (h *CategoryHandler) create(c echo.Context) error {
	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "name is required"})
	}

	created, err := h.api.CreateCategory(c.Request().Context(), middleware.TokenFromContext(c), storeapi.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return writeAPIError(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *CategoryHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req CategoryRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.api.UpdateCategory(c.Request().Context(), middleware.TokenFromContext(c), id, storeapi.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
	}); err != nil {
		return writeAPIError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CategoryHandler) remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.api.DeleteCategory(c.Request().Context(), middleware.TokenFromContext(c), id); err != nil {
		return writeAPIError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// リモートAPIのエラーをそのままのステータスで返す
func writeAPIError(c echo.Context, err error) error {
	if ae, ok := storeapi.AsAPIError(err); ok {
		return c.JSON(ae.Status, ErrorResponse{Error: ae.Message})
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}
	return c.JSON(http.StatusBadGateway, ErrorResponse{Error: "store api unavailable"})
}
