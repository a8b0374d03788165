package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Jorrgejimenezm/FlickShop/internal/middleware"
	"github.com/Jorrgejimenezm/FlickShop/internal/storeapi"
)

// AuthAPIはリモートAPIの認証操作。トークン発行は全てAPI側。
type AuthAPI interface {
	Register(ctx context.Context, in storeapi.RegisterInput) error
	Login(ctx context.Context, email, password string) (string, error)
	UpdateProfile(ctx context.Context, token string, in storeapi.ProfileInput) (string, error)
	ConfirmEmail(ctx context.Context, userID, token string) error
}

type AuthHandler struct {
	api AuthAPI
}

// DI
func NewAuthHandler(api AuthAPI) *AuthHandler {
	return &AuthHandler{api: api}
}

type RegisterRequest struct {
	Nombre          string `json:"nombre"`
	Apellidos       string `json:"apellidos"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ProfileRequest struct {
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/auth")

	g.POST("/register", h.register)
	g.POST("/login", h.login)
	g.PUT("/profile", h.updateProfile, middleware.RequireUser())
	g.GET("/confirm-email", h.confirmEmail)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email and password are required"})
	}
	if req.Password != req.ConfirmPassword {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "passwords do not match"})
	}

	if err := h.api.Register(c.Request().Context(), storeapi.RegisterInput{
		Nombre:          req.Nombre,
		Apellidos:       req.Apellidos,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	}); err != nil {
		return writeAPIError(c, err)
	}

	return c.NoContent(http.StatusCreated)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	token, err := h.api.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeAPIError(c, err)
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// プロフィール更新。クレームが変わるので新しいトークンが返ることがある。
func (h *AuthHandler) updateProfile(c echo.Context) error {
	var req ProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	newToken, err := h.api.UpdateProfile(c.Request().Context(), middleware.TokenFromContext(c), storeapi.ProfileInput{
		Nombre:    req.Nombre,
		Apellidos: req.Apellidos,
		Direccion: req.Direccion,
		Telefono:  req.Telefono,
	})
	if err != nil {
		return writeAPIError(c, err)
	}

	return c.JSON(http.StatusOK, TokenResponse{Token: newToken})
}

func (h *AuthHandler) confirmEmail(c echo.Context) error {
	userID := c.QueryParam("userId")
	token := c.QueryParam("token")
	if userID == "" || token == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "userId and token are required"})
	}

	if err := h.api.ConfirmEmail(c.Request().Context(), userID, token); err != nil {
		return writeAPIError(c, err)
	}
	return c.NoContent(http.StatusOK)
}
