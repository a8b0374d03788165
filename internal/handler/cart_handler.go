package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/Jorrgejimenezm/FlickShop/internal/cart"
	"github.com/Jorrgejimenezm/FlickShop/internal/middleware"
	"github.com/Jorrgejimenezm/FlickShop/internal/usecase"
)

// /cartのHTTP。
// リクエストごとにトークンからマネージャを作り、保存済みカートを読み込んでから操作する。
type CartHandler struct {
	uc    *usecase.CartUsecase
	carts *cart.Factory
}

// DI
func NewCartHandler(uc *usecase.CartUsecase, carts *cart.Factory) *CartHandler {
	return &CartHandler{uc: uc, carts: carts}
}

type AddCartRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/cart")

	g.GET("", h.getCart)
	g.POST("/items", h.addItem)
	g.PATCH("/items/:id/increment", h.incrementItem)
	g.DELETE("/items/:id", h.removeItem)
	g.DELETE("", h.clearCart)
	g.POST("/reload", h.reloadCart)
}

// トークン（匿名可）からマネージャを用意する
func (h *CartHandler) manager(c echo.Context) *cart.Manager {
	m := h.carts.ForToken(middleware.TokenFromContext(c))
	m.Load(c.Request().Context())
	return m
}

func (h *CartHandler) getCart(c echo.Context) error {
	m := h.manager(c)
	return c.JSON(http.StatusOK, h.uc.GetCart(m))
}

func (h *CartHandler) addItem(c echo.Context) error {
	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//数量未指定は1個
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	m := h.manager(c)
	out, err := h.uc.AddItem(c.Request().Context(), m, usecase.AddItemInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) incrementItem(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	m := h.manager(c)
	out, err := h.uc.Increment(c.Request().Context(), m, productID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) removeItem(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	// quantity省略は明細ごと削除
	var quantity *int64
	if v := c.QueryParam("quantity"); v != "" {
		q, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid quantity"})
		}
		quantity = &q
	}

	m := h.manager(c)
	out, err := h.uc.RemoveItem(c.Request().Context(), m, productID, quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clearCart(c echo.Context) error {
	m := h.manager(c)
	return c.JSON(http.StatusOK, h.uc.Clear(c.Request().Context(), m))
}

func (h *CartHandler) reloadCart(c echo.Context) error {
	m := h.manager(c)
	return c.JSON(http.StatusOK, h.uc.Reload(c.Request().Context(), m))
}
