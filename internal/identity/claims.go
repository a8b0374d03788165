package identity

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// リモートAPIが発行するトークンのクレームキー（WS-*名前空間）
const (
	claimNameID   = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier"
	claimEmail    = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress"
	claimName     = "http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name"
	claimRole     = "http://schemas.microsoft.com/ws/2008/06/identity/claims/role"
	claimLastName = "Apellido"
	claimPhone    = "Telefono"
	claimAddress  = "Direccion"
)

// Claimsはデコード時に一度だけ詰める型付きクレーム。
// 見つからないクレームは空文字のまま。
type Claims struct {
	UserID   string
	Role     string
	Email    string
	Name     string
	LastName string
	Phone    string
	Address  string
}

// FullNameは名と姓を連結して返す
func (c Claims) FullName() string {
	return strings.TrimSpace(c.Name + " " + c.LastName)
}

// Decodeはトークンをデコードして型付きクレームを返す。
// 署名検証はリモートAPI側の責務なのでここでは行わない。
// トークンが無い・壊れている場合は空のClaimsを返し、エラーは外へ出さない。
func Decode(raw string) Claims {
	if raw == "" {
		return Claims{}
	}

	token, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return Claims{}
	}

	mc, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}
	}

	return Claims{
		UserID:   stringClaim(mc, claimNameID),
		Role:     stringClaim(mc, claimRole),
		Email:    stringClaim(mc, claimEmail),
		Name:     stringClaim(mc, claimName),
		LastName: stringClaim(mc, claimLastName),
		Phone:    stringClaim(mc, claimPhone),
		Address:  stringClaim(mc, claimAddress),
	}
}

func stringClaim(mc jwt.MapClaims, key string) string {
	s, _ := mc[key].(string)
	return s
}
