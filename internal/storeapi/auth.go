package storeapi

import (
	"context"
	"net/http"
	"net/url"
)

const authPath = "/api/auth"

// 登録フォーム（フィールド名はAPI仕様に合わせる）
type RegisterInput struct {
	Nombre          string `json:"nombre"`
	Apellidos       string `json:"apellidos"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type ProfileInput struct {
	Nombre    string `json:"nombre"`
	Apellidos string `json:"apellidos"`
	Direccion string `json:"direccion"`
	Telefono  string `json:"telefono"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	return c.doJSON(ctx, http.MethodPost, authPath+"/register", "", in, nil)
}

// Loginは成功するとbearerトークンを返す
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	in := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var out tokenResponse
	if err := c.doJSON(ctx, http.MethodPost, authPath+"/login", "", in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// UpdateProfileはプロフィール更新。クレームが変わるので新しいトークンが返ることがある。
func (c *Client) UpdateProfile(ctx context.Context, token string, in ProfileInput) (string, error) {
	var out tokenResponse
	if err := c.doJSON(ctx, http.MethodPut, authPath+"/update-profile", token, in, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (c *Client) ConfirmEmail(ctx context.Context, userID, token string) error {
	q := url.Values{}
	q.Set("userId", userID)
	q.Set("token", token)
	return c.doJSON(ctx, http.MethodGet, authPath+"/confirmemail?"+q.Encode(), "", nil, nil)
}
