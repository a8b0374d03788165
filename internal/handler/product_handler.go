package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/Jorrgejimenezm/FlickShop/internal/middleware"
	"github.com/Jorrgejimenezm/FlickShop/internal/storeapi"
	"github.com/Jorrgejimenezm/FlickShop/internal/usecase"
)

// /productsの公開APIと/admin/productsの管理API
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/products", h.list)
	e.GET("/products/:id", h.detail)

	g := e.Group("/admin/products", middleware.RequireUser())
	g.POST("", h.create)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)
}

func (h *ProductHandler) list(c echo.Context) error {
	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	// limit（default 20）
	limit := 20
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	var categoryID int64
	if v := c.QueryParam("category_id"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid category_id"})
		}
		categoryID = x
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListProductsInput{
		Page:       page,
		Limit:      limit,
		Q:          c.QueryParam("q"),
		CategoryID: categoryID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	p, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) create(c echo.Context) error {
	in, err := bindProductForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	created, err := h.uc.Create(c.Request().Context(), middleware.TokenFromContext(c), in)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, created)
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	in, err := bindProductForm(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	}

	if err := h.uc.Update(c.Request().Context(), middleware.TokenFromContext(c), id, in); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) remove(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), middleware.TokenFromContext(c), id); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// multipartフォームを組み立て直してリモートAPIへ渡す形にする
func bindProductForm(c echo.Context) (storeapi.ProductInput, error) {
	var in storeapi.ProductInput

	in.Name = c.FormValue("name")
	in.Description = c.FormValue("description")

	price, err := decimal.NewFromString(c.FormValue("price"))
	if err != nil {
		return storeapi.ProductInput{}, errors.New("invalid price")
	}
	in.Price = price

	stock, err := strconv.ParseInt(c.FormValue("stock"), 10, 64)
	if err != nil {
		return storeapi.ProductInput{}, errors.New("invalid stock")
	}
	in.Stock = stock

	if v := c.FormValue("weight"); v != "" {
		w, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return storeapi.ProductInput{}, errors.New("invalid weight")
		}
		in.Weight = w
	}

	categoryID, err := strconv.ParseInt(c.FormValue("category_id"), 10, 64)
	if err != nil {
		return storeapi.ProductInput{}, errors.New("invalid category_id")
	}
	in.CategoryID = categoryID

	if fh, err := c.FormFile("image"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return storeapi.ProductInput{}, errors.New("invalid image")
		}
		in.Image = &storeapi.Upload{FileName: fh.Filename, Content: f}
	}

	return in, nil
}
