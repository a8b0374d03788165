package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Jorrgejimenezm/FlickShop/internal/identity"
)

const (
	CtxTokenKey  = "auth_token"  // string
	CtxClaimsKey = "auth_claims" // identity.Claims
)

// BearerTokenはAuthorizationヘッダのトークンを取り出してcontextへ置く。
// 検証はリモートAPI側の責務なのでデコードのみ。トークン無しは匿名として通す。
func BearerToken() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := extractBearer(c.Request().Header.Get("Authorization"))

			c.Set(CtxTokenKey, raw)
			c.Set(CtxClaimsKey, identity.Decode(raw))

			return next(c)
		}
	}
}

// RequireUserはユーザーIDが解決できないリクエストを401で弾く
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ClaimsFromContext(c).UserID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}

func TokenFromContext(c echo.Context) string {
	token, _ := c.Get(CtxTokenKey).(string)
	return token
}

func ClaimsFromContext(c echo.Context) identity.Claims {
	claims, _ := c.Get(CtxClaimsKey).(identity.Claims)
	return claims
}

func extractBearer(authz string) string {
	if authz == "" {
		return ""
	}

	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
