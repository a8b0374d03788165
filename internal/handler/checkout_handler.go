package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Jorrgejimenezm/FlickShop/internal/cart"
	"github.com/Jorrgejimenezm/FlickShop/internal/middleware"
	"github.com/Jorrgejimenezm/FlickShop/internal/usecase"
)

type CheckoutHandler struct {
	uc    *usecase.CheckoutUsecase
	carts *cart.Factory
}

// DI
func NewCheckoutHandler(uc *usecase.CheckoutUsecase, carts *cart.Factory) *CheckoutHandler {
	return &CheckoutHandler{uc: uc, carts: carts}
}

type CheckoutRequest struct {
	PhoneNumber     string `json:"phone_number"`
	ShippingAddress string `json:"shipping_address"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/checkout", h.checkout, middleware.RequireUser())
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	token := middleware.TokenFromContext(c)
	claims := middleware.ClaimsFromContext(c)

	m := h.carts.ForToken(token)
	m.Load(c.Request().Context())

	out, err := h.uc.Checkout(c.Request().Context(), m, token, claims, usecase.CheckoutInput{
		PhoneNumber:     req.PhoneNumber,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}
