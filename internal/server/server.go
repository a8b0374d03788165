package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/Jorrgejimenezm/FlickShop/internal/config"
	"github.com/Jorrgejimenezm/FlickShop/internal/middleware"
)

// RouteRegistrarはハンドラ側のルート登録
type RouteRegistrar interface {
	RegisterRoutes(e *echo.Echo)
}

// Newはechoを組み立てる。ルートはハンドラごとに登録。
func New(cfg config.Config, handlers ...RouteRegistrar) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.FEURL},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	// 全ルートでbearerトークンを拾う（匿名も通す）
	e.Use(middleware.BearerToken())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	for _, h := range handlers {
		h.RegisterRoutes(e)
	}

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}
